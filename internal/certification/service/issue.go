package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"skillchain/internal/certification/models"
	"skillchain/internal/notification"
	id "skillchain/pkg/domain"
	dErrors "skillchain/pkg/domain-errors"
	"skillchain/pkg/requestcontext"
)

// IssueCommand carries the immutable payload of a new certification.
type IssueCommand struct {
	Holder       id.Identity
	MetadataURI  string
	Name         string
	ResourceType string
	Status       models.Status
	Grade        models.Grade
	DocumentRef  string
}

func (c *IssueCommand) validate() error {
	if c.Holder.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "holder identity is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "certification name is required")
	}
	if !c.Status.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown status value")
	}
	if !c.Grade.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown grade value")
	}
	return nil
}

// Issue mints a new certification. Only the admin identity may issue, and
// only while under its quota. The issuer keeps custody; the holder is the
// designated recipient. The fresh record starts inside its lock window
// (createdAt == lastTransferAt), so it cannot move again immediately.
func (s *Service) Issue(ctx context.Context, caller id.Identity, cmd IssueCommand) (id.TokenID, error) {
	start := time.Now()
	ctx, span := s.obs.start(ctx, "ledger.issue", attribute.String("caller", caller.String()))
	var err error
	defer func() { s.obs.end(span, err) }()
	defer s.observeOp("issue", start)

	if err = cmd.validate(); err != nil {
		return 0, err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if caller != s.Admin() {
		err = s.rejected(dErrors.New(dErrors.CodeUnauthorized, "only the admin identity may issue certifications"))
		return 0, err
	}
	if err = s.checkIssuanceQuota(ctx, caller); err != nil {
		err = s.rejected(err)
		return 0, err
	}

	now := requestcontext.Now(ctx)
	cert := models.NewCertification(0, caller, cmd.Holder, cmd.MetadataURI, cmd.Name, cmd.ResourceType, cmd.Status, cmd.Grade, cmd.DocumentRef, now)

	tokenID, createErr := s.store.Create(ctx, cert)
	if createErr != nil {
		err = dErrors.Wrap(createErr, dErrors.CodeInternal, "failed to persist certification")
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.IncrementIssued()
	}
	s.obs.notify(ctx, notification.Event{
		Kind:         notification.KindIssued,
		TokenID:      tokenID,
		Actor:        caller,
		Counterparty: cmd.Holder,
	}, "token_id", tokenID, "issuer", caller, "holder", cmd.Holder)

	return tokenID, nil
}
