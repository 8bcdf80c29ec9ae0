package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "skillchain/pkg/domain-errors"
)

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "alice"},
		{name: "did style", input: "did:example:alice-01"},
		{name: "address style", input: "0x9DaD9F0ee786457aF112E39f01BA304CE53e1951"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace", input: "alice bob", wantErr: true},
		{name: "too long", input: strings.Repeat("a", MaxIdentityLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentity(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestParseTokenID(t *testing.T) {
	id, err := ParseTokenID("42")
	require.NoError(t, err)
	assert.Equal(t, TokenID(42), id)

	for _, bad := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := ParseTokenID(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestIsNil(t *testing.T) {
	assert.True(t, Identity("").IsNil())
	assert.False(t, Identity("alice").IsNil())
	assert.True(t, TokenID(0).IsNil())
	assert.False(t, TokenID(1).IsNil())
}
