package service

import (
	"context"
	"time"

	"skillchain/internal/certification/models"
	id "skillchain/pkg/domain"
	dErrors "skillchain/pkg/domain-errors"
)

// Guard checks. Every check is a pure read of committed state; mutating
// operations run all of their checks before touching anything, so a failing
// guard always leaves the ledger untouched.

// checkIssuanceQuota enforces the per-issuer mint cap.
func (s *Service) checkIssuanceQuota(ctx context.Context, issuer id.Identity) error {
	count, err := s.store.CountByIssuer(ctx, issuer)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count issued certifications")
	}
	if count >= s.cfg.MaxCertificatesPerOwner {
		return dErrors.New(dErrors.CodeQuotaExceeded, "issuer has reached the certification quota")
	}
	return nil
}

// authorizeTransfer verifies that caller may move the token and that the
// stated sender actually holds custody.
func (s *Service) authorizeTransfer(caller, from id.Identity, cert *models.Certification) error {
	if caller != cert.Owner && !cert.HasApprovalFor(caller) {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is neither owner nor approved for this token")
	}
	if from != cert.Owner {
		return dErrors.New(dErrors.CodeUnauthorized, "sender does not hold custody of this token")
	}
	return nil
}

// checkLock rejects movement inside the post-transfer lock window.
func (s *Service) checkLock(cert *models.Certification, now time.Time) error {
	if cert.Locked(now, s.cfg.LockDuration) {
		return dErrors.New(dErrors.CodeTokenLocked, "token is locked until "+cert.LockedUntil(s.cfg.LockDuration).Format(time.RFC3339))
	}
	return nil
}

// checkCooldown rejects an identity acting again before its cooldown elapsed.
func (s *Service) checkCooldown(ctx context.Context, identity id.Identity, now time.Time) error {
	last, err := s.store.LastActionAt(ctx, identity)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read identity activity")
	}
	if last.IsZero() {
		return nil
	}
	if now.Before(last.Add(s.cfg.CooldownDuration)) {
		return dErrors.New(dErrors.CodeCooldownActive, "identity is in cooldown until "+last.Add(s.cfg.CooldownDuration).Format(time.RFC3339))
	}
	return nil
}
