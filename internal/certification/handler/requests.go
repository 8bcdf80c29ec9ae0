package handler

import (
	"strings"

	"skillchain/internal/certification/models"
	"skillchain/internal/certification/service"
	id "skillchain/pkg/domain"
	dErrors "skillchain/pkg/domain-errors"
)

// Request DTOs. Validation happens here at the trust boundary; the service
// receives typed identities and commands.

type IssueRequest struct {
	Holder       string `json:"holder"`
	MetadataURI  string `json:"metadata_uri"`
	Name         string `json:"name"`
	ResourceType string `json:"resource_type"`
	Status       uint8  `json:"status"`
	Grade        uint8  `json:"grade"`
	DocumentRef  string `json:"document_ref"`
}

func (r *IssueRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ResourceType = strings.TrimSpace(r.ResourceType)
}

func (r *IssueRequest) Validate() error {
	if _, err := id.ParseIdentity(r.Holder); err != nil {
		return err
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if !models.Status(r.Status).Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "status must be 0, 1, or 2")
	}
	if !models.Grade(r.Grade).Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "grade must be between 0 and 5")
	}
	return nil
}

func (r *IssueRequest) toCommand() service.IssueCommand {
	return service.IssueCommand{
		Holder:       id.Identity(r.Holder),
		MetadataURI:  r.MetadataURI,
		Name:         r.Name,
		ResourceType: r.ResourceType,
		Status:       models.Status(r.Status),
		Grade:        models.Grade(r.Grade),
		DocumentRef:  r.DocumentRef,
	}
}

type TransferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r *TransferRequest) Validate() error {
	if _, err := id.ParseIdentity(r.From); err != nil {
		return err
	}
	if _, err := id.ParseIdentity(r.To); err != nil {
		return err
	}
	return nil
}

type SwapRequest struct {
	OtherParty string `json:"other_party"`
	TokenA     uint64 `json:"token_a"`
	TokenB     uint64 `json:"token_b"`
}

func (r *SwapRequest) Validate() error {
	if _, err := id.ParseIdentity(r.OtherParty); err != nil {
		return err
	}
	if r.TokenA == 0 || r.TokenB == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "both token ids are required")
	}
	return nil
}

type ApproveRequest struct {
	Grantee string `json:"grantee"`
}

func (r *ApproveRequest) Validate() error {
	_, err := id.ParseIdentity(r.Grantee)
	return err
}

type TransferRoleRequest struct {
	NewAdmin string `json:"new_admin"`
}

func (r *TransferRoleRequest) Validate() error {
	_, err := id.ParseIdentity(r.NewAdmin)
	return err
}
