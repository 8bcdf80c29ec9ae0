package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"skillchain/internal/notification"
	id "skillchain/pkg/domain"
	dErrors "skillchain/pkg/domain-errors"
	"skillchain/pkg/requestcontext"
)

// Swap exchanges two tokens between their owners in one atomic step. The
// caller must own tokenA, the counterparty must own tokenB, and the
// counterparty must have granted the caller the single-use approval on
// tokenB beforehand; that capability stands in for third-party escrow. Both
// tokens must be outside their lock windows. The caller's cooldown is
// checked once (the swap is one action by the caller); on commit both
// participants' cooldowns advance, keeping the anti-spam guard symmetric.
// A failure on either leg aborts the whole operation with zero mutation.
func (s *Service) Swap(ctx context.Context, caller, otherParty id.Identity, tokenA, tokenB id.TokenID) error {
	start := time.Now()
	ctx, span := s.obs.start(ctx, "ledger.swap",
		attribute.String("caller", caller.String()),
		attribute.String("token_a", tokenA.String()),
		attribute.String("token_b", tokenB.String()),
	)
	var err error
	defer func() { s.obs.end(span, err) }()
	defer s.observeOp("swap", start)

	if otherParty.IsNil() {
		err = dErrors.New(dErrors.CodeInvalidInput, "counterparty identity is required")
		return err
	}
	if tokenA == tokenB {
		err = dErrors.New(dErrors.CodeInvalidInput, "cannot swap a token with itself")
		return err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	certA, findErr := s.store.FindByID(ctx, tokenA)
	if findErr != nil {
		err = s.rejected(wrapRecordErr(findErr, "failed to load certification"))
		return err
	}
	certB, findErr := s.store.FindByID(ctx, tokenB)
	if findErr != nil {
		err = s.rejected(wrapRecordErr(findErr, "failed to load certification"))
		return err
	}

	if certA.Owner != caller {
		err = s.rejected(dErrors.New(dErrors.CodeUnauthorized, "caller does not own the offered token"))
		return err
	}
	if certB.Owner != otherParty {
		err = s.rejected(dErrors.New(dErrors.CodeUnauthorized, "counterparty does not own the requested token"))
		return err
	}
	if !certB.HasApprovalFor(caller) {
		err = s.rejected(dErrors.New(dErrors.CodeInvalidApproval, "counterparty has not approved the caller for this token"))
		return err
	}

	now := requestcontext.Now(ctx)
	if err = s.checkLock(certA, now); err != nil {
		err = s.rejected(err)
		return err
	}
	if err = s.checkLock(certB, now); err != nil {
		err = s.rejected(err)
		return err
	}
	if err = s.checkCooldown(ctx, caller, now); err != nil {
		err = s.rejected(err)
		return err
	}

	// All guards passed on both legs; commit both as one step.
	certA.ApplyTransfer(otherParty, now)
	certB.ApplyTransfer(caller, now)
	if updateErr := s.store.UpdatePair(ctx, certA, certB); updateErr != nil {
		err = dErrors.Wrap(updateErr, dErrors.CodeInternal, "failed to persist swap")
		return err
	}
	if actErr := s.store.SetLastAction(ctx, now, caller, otherParty); actErr != nil {
		err = dErrors.Wrap(actErr, dErrors.CodeInternal, "failed to stamp identity activity")
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementTransfers(2)
		s.metrics.IncrementSwaps()
	}
	s.obs.notify(ctx, notification.Event{
		Kind:         notification.KindSwapCompleted,
		TokenID:      tokenA,
		CounterToken: tokenB,
		Actor:        caller,
		Counterparty: otherParty,
	}, "token_a", tokenA, "token_b", tokenB, "party_a", caller, "party_b", otherParty)

	return nil
}
