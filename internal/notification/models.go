package notification

import (
	"time"

	id "skillchain/pkg/domain"
)

// Event is one entry in the append-only notification log. The ledger writes
// these as part of its observability path; delivery to observers is
// asynchronous and never a condition for an operation to commit.
type Event struct {
	Timestamp    time.Time
	Kind         Kind
	TokenID      id.TokenID
	CounterToken id.TokenID
	Actor        id.Identity
	Counterparty id.Identity
	RequestID    string
	ClientIP     string
	Device       string
}

type Kind string

const (
	KindIssued               Kind = "certification_issued"
	KindTransferred          Kind = "certification_transferred"
	KindSwapCompleted        Kind = "certifications_swapped"
	KindApprovalGranted      Kind = "approval_granted"
	KindAdminRoleTransferred Kind = "admin_role_transferred"
)
