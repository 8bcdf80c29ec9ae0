package filestore

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "skillchain/pkg/domain-errors"
	"skillchain/pkg/platform/httputil"
)

// Handler exposes the document store over HTTP. Upload is protected; the
// read path is public because a CID is only obtainable by someone who
// already saw the certification record.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/documents/{cid}", h.HandleFetch)
}

func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/documents", h.HandlePin)
}

// PinResponse mirrors PinResult on the wire.
type PinResponse struct {
	URL string `json:"url"`
	CID string `json:"cid"`
}

// HandlePin accepts raw document bytes and returns the pinned location.
func (h *Handler) HandlePin(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxDocumentSize+1))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "failed to read document body"))
		return
	}

	result, err := h.service.Pin(r.Context(), data)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, PinResponse{URL: result.URL, CID: result.CID})
}

// HandleFetch streams a pinned document back by content hash.
func (h *Handler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Fetch(r.Context(), chi.URLParam(r, "cid"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
