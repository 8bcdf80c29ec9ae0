package service

import (
	"errors"
	"time"

	"skillchain/internal/sentinel"
	dErrors "skillchain/pkg/domain-errors"
)

// Error wrapping helpers translate sentinel errors to domain errors.

func wrapRecordErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "certification not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

// rejected counts a guard rejection before handing the error back.
func (s *Service) rejected(err error) error {
	if s.metrics != nil {
		s.metrics.IncrementGuardRejection(string(dErrors.CodeOf(err)))
	}
	return err
}

func (s *Service) observeOp(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, start)
	}
}
