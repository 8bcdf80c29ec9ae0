package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// These are core error primitives used at every trust boundary. Unit tests
// ensure invariants like "wrapped domain errors preserve original code" and
// "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "certification not found"}
		s.Equal("certification not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeTokenLocked}
		s.Equal("token_locked", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("store failure")
		err := &Error{Code: CodeInternal, Message: "service error", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeNotFound, Message: "not found"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeCooldownActive, Message: "alice is cooling down"}
		err2 := &Error{Code: CodeCooldownActive, Message: "bob is cooling down"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeTokenLocked}
		err2 := &Error{Code: CodeCooldownActive}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err := &Error{Code: CodeNotFound}
		s.False(err.Is(errors.New("not found")))
	})
}

func (s *DomainErrorsSuite) TestWrapPreservesCode() {
	inner := New(CodeQuotaExceeded, "issuer at cap")
	wrapped := Wrap(inner, CodeInternal, "issue failed")
	s.True(HasCode(wrapped, CodeQuotaExceeded))
	s.False(HasCode(wrapped, CodeInternal))
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.True(HasCode(New(CodeInvalidApproval, "no approval"), CodeInvalidApproval))
	s.False(HasCode(errors.New("plain"), CodeInvalidApproval))
	s.False(HasCode(nil, CodeInvalidApproval))
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Equal(CodeUnauthorized, CodeOf(New(CodeUnauthorized, "not admin")))
	s.Equal(CodeInternal, CodeOf(errors.New("plain")))
}
