package handler

import (
	"time"

	"skillchain/internal/certification/models"
)

// CertificationResponse is the read projection of a ledger record. Enum
// values travel as integers alongside their display labels so clients can
// render without their own lookup tables.
type CertificationResponse struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	ResourceType   string    `json:"resource_type"`
	Status         uint8     `json:"status"`
	StatusLabel    string    `json:"status_label"`
	Grade          uint8     `json:"grade"`
	GradeLabel     string    `json:"grade_label"`
	DocumentRef    string    `json:"document_ref"`
	MetadataURI    string    `json:"metadata_uri,omitempty"`
	Issuer         string    `json:"issuer"`
	Owner          string    `json:"owner"`
	Holder         string    `json:"holder"`
	PreviousOwners []string  `json:"previous_owners"`
	CreatedAt      time.Time `json:"created_at"`
	LastTransferAt time.Time `json:"last_transfer_at"`
}

func toCertificationResponse(c *models.Certification) CertificationResponse {
	previous := make([]string, len(c.PreviousOwners))
	for i, owner := range c.PreviousOwners {
		previous[i] = owner.String()
	}
	return CertificationResponse{
		ID:             uint64(c.ID),
		Name:           c.Name,
		ResourceType:   c.ResourceType,
		Status:         uint8(c.Status),
		StatusLabel:    c.Status.Label(),
		Grade:          uint8(c.Grade),
		GradeLabel:     c.Grade.Label(),
		DocumentRef:    c.DocumentRef,
		MetadataURI:    c.MetadataURI,
		Issuer:         c.Issuer.String(),
		Owner:          c.Owner.String(),
		Holder:         c.Holder.String(),
		PreviousOwners: previous,
		CreatedAt:      c.CreatedAt,
		LastTransferAt: c.LastTransferAt,
	}
}

type IssueResponse struct {
	ID uint64 `json:"id"`
}
