package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillchain/internal/certification/models"
	"skillchain/internal/certification/service"
	id "skillchain/pkg/domain"
	dErrors "skillchain/pkg/domain-errors"
	"skillchain/pkg/platform/httputil"
	"skillchain/pkg/platform/middleware/auth"
	"skillchain/pkg/requestcontext"
)

// Service defines the interface for ledger operations.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	Issue(ctx context.Context, caller id.Identity, cmd service.IssueCommand) (id.TokenID, error)
	GetCertification(ctx context.Context, tokenID id.TokenID) (*models.Certification, error)
	Transfer(ctx context.Context, caller, from, to id.Identity, tokenID id.TokenID) error
	Swap(ctx context.Context, caller, otherParty id.Identity, tokenA, tokenB id.TokenID) error
	Approve(ctx context.Context, caller id.Identity, tokenID id.TokenID, grantee id.Identity) error
	TransferAdminRole(ctx context.Context, caller, next id.Identity) error
}

// Handler is the thin HTTP layer over the ledger. It delegates to the
// service without embedding business logic so transport concerns stay
// isolated.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the certification endpoints. The read path is public; the
// mutating endpoints sit behind the auth middleware, applied by the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/certifications/{id}", h.HandleGetCertification)
}

// RegisterProtected wires the endpoints that need an authenticated caller.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/certifications", h.HandleIssue)
	r.Post("/certifications/{id}/approve", h.HandleApprove)
	r.Post("/certifications/{id}/transfer", h.HandleTransfer)
	r.Post("/certifications/swap", h.HandleSwap)
	r.Post("/admin/transfer-role", h.HandleTransferRole)
}

// HandleGetCertification serves the read projection of a record.
func (h *Handler) HandleGetCertification(w http.ResponseWriter, r *http.Request) {
	tokenID, err := id.ParseTokenID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cert, err := h.service.GetCertification(r.Context(), tokenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCertificationResponse(cert))
}

// HandleIssue mints a certification on behalf of the authenticated caller.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[IssueRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	tokenID, err := h.service.Issue(ctx, caller, req.toCommand())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, IssueResponse{ID: uint64(tokenID)})
}

// HandleApprove grants the single-use transfer capability.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	tokenID, err := id.ParseTokenID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[ApproveRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.Approve(ctx, caller, tokenID, id.Identity(req.Grantee)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTransfer moves custody of one token.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	tokenID, err := id.ParseTokenID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.Transfer(ctx, caller, id.Identity(req.From), id.Identity(req.To), tokenID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSwap executes an atomic bilateral exchange.
func (h *Handler) HandleSwap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[SwapRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	err := h.service.Swap(ctx, caller, id.Identity(req.OtherParty), id.TokenID(req.TokenA), id.TokenID(req.TokenB))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTransferRole rotates the issuing admin identity.
func (h *Handler) HandleTransferRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[TransferRoleRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.TransferAdminRole(ctx, caller, id.Identity(req.NewAdmin)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) caller(w http.ResponseWriter, ctx context.Context) (id.Identity, bool) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "caller identity missing"))
		return "", false
	}
	return caller, true
}
