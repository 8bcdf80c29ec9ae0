package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"skillchain/internal/notification"
	id "skillchain/pkg/domain"
	dErrors "skillchain/pkg/domain-errors"
)

// Approve grants grantee a single-use capability to move the token on the
// owner's behalf. Only the current owner may grant it; a later grant
// replaces the previous one, and any committed transfer consumes it.
func (s *Service) Approve(ctx context.Context, caller id.Identity, tokenID id.TokenID, grantee id.Identity) error {
	start := time.Now()
	ctx, span := s.obs.start(ctx, "ledger.approve",
		attribute.String("caller", caller.String()),
		attribute.String("token_id", tokenID.String()),
	)
	var err error
	defer func() { s.obs.end(span, err) }()
	defer s.observeOp("approve", start)

	if grantee.IsNil() {
		err = dErrors.New(dErrors.CodeInvalidInput, "grantee identity is required")
		return err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	cert, findErr := s.store.FindByID(ctx, tokenID)
	if findErr != nil {
		err = s.rejected(wrapRecordErr(findErr, "failed to load certification"))
		return err
	}
	if cert.Owner != caller {
		err = s.rejected(dErrors.New(dErrors.CodeUnauthorized, "only the owner may grant an approval"))
		return err
	}
	if grantee == caller {
		err = dErrors.New(dErrors.CodeInvalidInput, "owner cannot approve itself")
		return err
	}

	cert.Grant(grantee)
	if updateErr := s.store.Update(ctx, cert); updateErr != nil {
		err = dErrors.Wrap(updateErr, dErrors.CodeInternal, "failed to persist approval")
		return err
	}

	s.obs.notify(ctx, notification.Event{
		Kind:         notification.KindApprovalGranted,
		TokenID:      tokenID,
		Actor:        caller,
		Counterparty: grantee,
	}, "token_id", tokenID, "owner", caller, "grantee", grantee)

	return nil
}
