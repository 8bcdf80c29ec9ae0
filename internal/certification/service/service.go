package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	certmetrics "skillchain/internal/certification/metrics"
	"skillchain/internal/certification/models"
	"skillchain/internal/notification"
	id "skillchain/pkg/domain"
	dErrors "skillchain/pkg/domain-errors"
)

// Store defines the persistence contract for the ledger.
type Store interface {
	Create(ctx context.Context, cert *models.Certification) (id.TokenID, error)
	FindByID(ctx context.Context, tokenID id.TokenID) (*models.Certification, error)
	Update(ctx context.Context, cert *models.Certification) error
	UpdatePair(ctx context.Context, a, b *models.Certification) error
	CountByIssuer(ctx context.Context, issuer id.Identity) (int, error)
	LastActionAt(ctx context.Context, identity id.Identity) (time.Time, error)
	SetLastAction(ctx context.Context, now time.Time, identities ...id.Identity) error
}

// Notifier receives ledger notifications. Delivery is best-effort and never
// part of an operation's commit.
type Notifier interface {
	Emit(ctx context.Context, event notification.Event) error
}

// Config carries the anti-abuse guard settings.
type Config struct {
	// MaxCertificatesPerOwner caps how many certifications one issuer may mint.
	MaxCertificatesPerOwner int
	// LockDuration is the window after any custody change during which the
	// token cannot move again.
	LockDuration time.Duration
	// CooldownDuration is the minimum spacing between successive transfer or
	// swap legs by the same identity.
	CooldownDuration time.Duration
}

// Service is the certification ledger state machine: issuance, custody
// transfer, atomic bilateral swap, and the guards protecting them. Mutating
// operations run one at a time under opMu, so every operation observes a
// fully-applied prior state and commits as a single step.
type Service struct {
	store   Store
	cfg     Config
	logger  *slog.Logger
	metrics *certmetrics.Metrics
	obs     *observer

	opMu sync.Mutex

	adminMu sync.RWMutex
	admin   id.Identity
}

// New creates the ledger service. The admin identity is the only identity
// allowed to issue certifications until the role is transferred.
func New(store Store, admin id.Identity, cfg Config, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "store is required")
	}
	if admin.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "admin identity is required")
	}
	if cfg.MaxCertificatesPerOwner <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "max certificates per owner must be positive")
	}
	if cfg.LockDuration < 0 || cfg.CooldownDuration < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "guard durations cannot be negative")
	}

	c := &serviceConfig{}
	for _, opt := range opts {
		opt(c)
	}
	s := &Service{
		store:   store,
		cfg:     cfg,
		logger:  c.logger,
		metrics: c.metrics,
		admin:   admin,
	}
	s.obs = newObserver(c.logger, c.notifier, c.tracer)
	return s, nil
}
