package models

import (
	"time"

	id "skillchain/pkg/domain"
)

// Status is the academic outcome recorded at issuance. It is immutable
// afterwards: no status-update operation exists on the ledger.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusFailed
	StatusPassed
)

// Valid reports whether the status is one of the defined values.
func (s Status) Valid() bool { return s <= StatusPassed }

// Label returns the display label used by the read projection.
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "En cours"
	case StatusFailed:
		return "Echec"
	case StatusPassed:
		return "Réussi"
	default:
		return "Inconnu"
	}
}

// Grade is the French mention scale attached to a certification.
type Grade uint8

const (
	GradeNone Grade = iota
	GradePassable
	GradeAssezBien
	GradeBien
	GradeTresBien
	GradeExcellent
)

func (g Grade) Valid() bool { return g <= GradeExcellent }

func (g Grade) Label() string {
	switch g {
	case GradeNone:
		return "None"
	case GradePassable:
		return "Passable"
	case GradeAssezBien:
		return "Assez bien"
	case GradeBien:
		return "Bien"
	case GradeTresBien:
		return "Très bien"
	case GradeExcellent:
		return "Excellent"
	default:
		return "Inconnu"
	}
}

// Approval is a single-use capability granted by the current owner allowing
// one future transfer or swap leg by somebody else. It is cleared whenever
// the token changes hands.
type Approval struct {
	Grantee id.Identity
}

// Certification is one ledger record. Everything except owner, holder,
// previousOwners, lastTransferAt, and the approval is immutable after
// issuance.
type Certification struct {
	ID             id.TokenID
	Name           string
	ResourceType   string
	Status         Status
	Grade          Grade
	DocumentRef    string
	MetadataURI    string
	Issuer         id.Identity
	Owner          id.Identity
	Holder         id.Identity
	PreviousOwners []id.Identity
	CreatedAt      time.Time
	LastTransferAt time.Time
	Approval       *Approval
}

// NewCertification builds a freshly issued record. The issuer keeps custody
// until the first transfer; the holder is the designated recipient.
func NewCertification(tokenID id.TokenID, issuer, holder id.Identity, metadataURI, name, resourceType string, status Status, grade Grade, documentRef string, now time.Time) *Certification {
	return &Certification{
		ID:             tokenID,
		Name:           name,
		ResourceType:   resourceType,
		Status:         status,
		Grade:          grade,
		DocumentRef:    documentRef,
		MetadataURI:    metadataURI,
		Issuer:         issuer,
		Owner:          issuer,
		Holder:         holder,
		CreatedAt:      now,
		LastTransferAt: now,
	}
}

// LockedUntil returns the instant at which the post-transfer lock expires.
func (c *Certification) LockedUntil(lockDuration time.Duration) time.Time {
	return c.LastTransferAt.Add(lockDuration)
}

// Locked reports whether the token is still inside its lock window.
func (c *Certification) Locked(now time.Time, lockDuration time.Duration) bool {
	return now.Before(c.LockedUntil(lockDuration))
}

// HasApprovalFor reports whether grantee holds the current single-use
// capability on this token.
func (c *Certification) HasApprovalFor(grantee id.Identity) bool {
	return c.Approval != nil && c.Approval.Grantee == grantee
}

// Grant installs the single-use capability, replacing any previous one.
func (c *Certification) Grant(grantee id.Identity) {
	c.Approval = &Approval{Grantee: grantee}
}

// ApplyTransfer records one committed ownership change: the outgoing owner
// joins the provenance log, custody and holder converge on the recipient,
// the transfer timestamp advances, and any approval is consumed. Guard
// checks happen before this is called; ApplyTransfer itself cannot fail.
func (c *Certification) ApplyTransfer(to id.Identity, now time.Time) {
	c.PreviousOwners = append(c.PreviousOwners, c.Owner)
	c.Owner = to
	c.Holder = to
	c.LastTransferAt = now
	c.Approval = nil
}

// Clone returns a deep copy so read paths never observe in-flight mutation.
func (c *Certification) Clone() *Certification {
	cp := *c
	cp.PreviousOwners = append([]id.Identity(nil), c.PreviousOwners...)
	if c.Approval != nil {
		a := *c.Approval
		cp.Approval = &a
	}
	return &cp
}

// IdentityState tracks per-identity activity used for cooldown enforcement.
type IdentityState struct {
	LastActionAt time.Time
}
