// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"regexp"
	"strconv"

	dErrors "skillchain/pkg/domain-errors"
)

// Identity names an authenticated principal (issuer, owner, holder). The
// authentication layer resolves it before an operation reaches the ledger;
// the core treats it as an opaque, already-verified name.
type Identity string

// TokenID identifies one certification record. Ids are dense, sequential,
// assigned starting at 1 and never reused.
type TokenID uint64

// MaxIdentityLength bounds identity names to keep logs and store keys sane.
const MaxIdentityLength = 128

// validIdentity matches alphanumerics, dashes, underscores, periods, and
// colons so DID-style and address-style identities both pass.
var validIdentity = regexp.MustCompile(`^[a-zA-Z0-9:._-]+$`)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseIdentity(s string) (Identity, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity cannot be empty")
	}
	if len(s) > MaxIdentityLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity exceeds maximum length")
	}
	if !validIdentity.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity contains invalid characters")
	}
	return Identity(s), nil
}

func ParseTokenID(s string) (TokenID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "token ID must be a positive integer")
	}
	return TokenID(n), nil
}

// String methods - for logging and debugging.

func (id Identity) String() string { return string(id) }
func (id TokenID) String() string  { return strconv.FormatUint(uint64(id), 10) }

// IsNil checks - used for service-layer validation.

func (id Identity) IsNil() bool { return id == "" }
func (id TokenID) IsNil() bool  { return id == 0 }
