package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Notifier

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skillchain/internal/certification/models"
	"skillchain/internal/certification/store"
	"skillchain/internal/notification"
	id "skillchain/pkg/domain"
	"skillchain/pkg/requestcontext"
)

const (
	testAdmin    = id.Identity("registrar")
	testQuota    = 3
	testLock     = 5 * time.Minute
	testCooldown = time.Minute
)

// fixture wires a ledger service against in-memory stores with a
// deterministic clock. Operation time is driven through the context, never
// the wall clock, so every guard window is exact.
type fixture struct {
	svc   *Service
	store *store.InMemory
	notes *notification.InMemoryStore
	base  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ledger := store.NewInMemory()
	notes := notification.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := New(ledger, testAdmin, Config{
		MaxCertificatesPerOwner: testQuota,
		LockDuration:            testLock,
		CooldownDuration:        testCooldown,
	},
		WithLogger(logger),
		WithNotifier(notification.NewPublisher(notes, notification.WithPublisherLogger(logger))),
	)
	require.NoError(t, err)

	return &fixture{
		svc:   svc,
		store: ledger,
		notes: notes,
		base:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

// at returns a context whose request time is base+offset.
func (f *fixture) at(offset time.Duration) context.Context {
	return requestcontext.WithTime(context.Background(), f.base.Add(offset))
}

func passedCommand(holder id.Identity) IssueCommand {
	return IssueCommand{
		Holder:       holder,
		MetadataURI:  "ipfs://metadata",
		Name:         "Licence Informatique",
		ResourceType: "diploma",
		Status:       models.StatusPassed,
		Grade:        models.GradeBien,
		DocumentRef:  "bafyhash",
	}
}

// issueAt mints a certification as the admin at the given time offset.
func (f *fixture) issueAt(t *testing.T, offset time.Duration, holder id.Identity) id.TokenID {
	t.Helper()
	tokenID, err := f.svc.Issue(f.at(offset), testAdmin, passedCommand(holder))
	require.NoError(t, err)
	return tokenID
}

// handToAt transfers a token out of admin custody so tests can give other
// identities ownership. The offset must clear the mint lock and any admin
// cooldown accumulated by earlier calls.
func (f *fixture) handToAt(t *testing.T, offset time.Duration, tokenID id.TokenID, to id.Identity) {
	t.Helper()
	require.NoError(t, f.svc.Transfer(f.at(offset), testAdmin, testAdmin, to, tokenID))
}

func (f *fixture) read(t *testing.T, tokenID id.TokenID) *models.Certification {
	t.Helper()
	cert, err := f.svc.GetCertification(context.Background(), tokenID)
	require.NoError(t, err)
	return cert
}
