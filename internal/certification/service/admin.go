package service

import (
	"context"

	"skillchain/internal/notification"
	id "skillchain/pkg/domain"
	dErrors "skillchain/pkg/domain-errors"
)

// Admin returns the identity currently holding the issuing role. The role
// is explicit configuration state, not an ambient global, and changes only
// through TransferAdminRole.
func (s *Service) Admin() id.Identity {
	s.adminMu.RLock()
	defer s.adminMu.RUnlock()
	return s.admin
}

// TransferAdminRole hands the issuing role to another identity. Only the
// current admin may do so. The per-issuer quota keys on the issuer recorded
// in each certification, so a new admin starts with a fresh allowance.
func (s *Service) TransferAdminRole(ctx context.Context, caller, next id.Identity) error {
	if next.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "new admin identity is required")
	}

	s.adminMu.Lock()
	if caller != s.admin {
		s.adminMu.Unlock()
		return s.rejected(dErrors.New(dErrors.CodeUnauthorized, "only the current admin may transfer the role"))
	}
	previous := s.admin
	s.admin = next
	s.adminMu.Unlock()

	s.obs.notify(ctx, notification.Event{
		Kind:         notification.KindAdminRoleTransferred,
		Actor:        previous,
		Counterparty: next,
	}, "previous", previous, "next", next)

	return nil
}
