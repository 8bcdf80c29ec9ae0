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

// Transfer moves custody of a token from its current owner to the
// recipient. The caller must be the owner or hold the token's single-use
// approval. Check order: existence, authorization, lock window, caller
// cooldown; the first failure aborts with zero mutation. The commit is one
// step: provenance append, owner and holder converge on the recipient, the
// lock window restarts, the approval is consumed, and the caller's cooldown
// advances.
func (s *Service) Transfer(ctx context.Context, caller, from, to id.Identity, tokenID id.TokenID) error {
	start := time.Now()
	ctx, span := s.obs.start(ctx, "ledger.transfer",
		attribute.String("caller", caller.String()),
		attribute.String("token_id", tokenID.String()),
	)
	var err error
	defer func() { s.obs.end(span, err) }()
	defer s.observeOp("transfer", start)

	if to.IsNil() {
		err = dErrors.New(dErrors.CodeInvalidInput, "recipient identity is required")
		return err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	cert, findErr := s.store.FindByID(ctx, tokenID)
	if findErr != nil {
		err = s.rejected(wrapRecordErr(findErr, "failed to load certification"))
		return err
	}

	now := requestcontext.Now(ctx)
	if err = s.authorizeTransfer(caller, from, cert); err != nil {
		err = s.rejected(err)
		return err
	}
	if err = s.checkLock(cert, now); err != nil {
		err = s.rejected(err)
		return err
	}
	if err = s.checkCooldown(ctx, caller, now); err != nil {
		err = s.rejected(err)
		return err
	}

	// All guards passed; commit.
	cert.ApplyTransfer(to, now)
	if updateErr := s.store.Update(ctx, cert); updateErr != nil {
		err = dErrors.Wrap(updateErr, dErrors.CodeInternal, "failed to persist transfer")
		return err
	}
	if actErr := s.store.SetLastAction(ctx, now, caller); actErr != nil {
		err = dErrors.Wrap(actErr, dErrors.CodeInternal, "failed to stamp identity activity")
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementTransfers(1)
	}
	s.obs.notify(ctx, notification.Event{
		Kind:         notification.KindTransferred,
		TokenID:      tokenID,
		Actor:        from,
		Counterparty: to,
	}, "token_id", tokenID, "from", from, "to", to, "caller", caller)

	return nil
}
