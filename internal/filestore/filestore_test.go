package filestore

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "skillchain/pkg/domain-errors"
)

func TestPinReturnsContentAddress(t *testing.T) {
	svc := New(NewInMemoryStore(), "https://files.skillchain.example/")
	ctx := context.Background()

	res, err := svc.Pin(ctx, []byte("diploma pdf bytes"))
	require.NoError(t, err)
	assert.Len(t, res.CID, 64, "sha3-256 hex digest")
	assert.Equal(t, "https://files.skillchain.example/"+res.CID, res.URL)

	data, err := svc.Fetch(ctx, res.CID)
	require.NoError(t, err)
	assert.Equal(t, []byte("diploma pdf bytes"), data)
}

func TestPinIsIdempotent(t *testing.T) {
	svc := New(NewInMemoryStore(), "https://files.example")
	ctx := context.Background()

	first, err := svc.Pin(ctx, []byte("same bytes"))
	require.NoError(t, err)
	second, err := svc.Pin(ctx, []byte("same bytes"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := svc.Pin(ctx, []byte("different bytes"))
	require.NoError(t, err)
	assert.NotEqual(t, first.CID, other.CID)
}

func TestPinValidation(t *testing.T) {
	svc := New(NewInMemoryStore(), "https://files.example")

	_, err := svc.Pin(context.Background(), nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = svc.Pin(context.Background(), bytes.Repeat([]byte("x"), MaxDocumentSize+1))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestFetchUnknownCID(t *testing.T) {
	svc := New(NewInMemoryStore(), "https://files.example")

	_, err := svc.Fetch(context.Background(), "deadbeef")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
