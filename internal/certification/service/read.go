package service

import (
	"context"

	"skillchain/internal/certification/models"
	id "skillchain/pkg/domain"
)

// GetCertification returns a snapshot of the latest committed state of a
// record. Callable by anyone; partial or in-flight state is never
// observable because the store only ever holds fully-applied records.
func (s *Service) GetCertification(ctx context.Context, tokenID id.TokenID) (*models.Certification, error) {
	cert, err := s.store.FindByID(ctx, tokenID)
	if err != nil {
		return nil, wrapRecordErr(err, "failed to load certification")
	}
	return cert, nil
}
