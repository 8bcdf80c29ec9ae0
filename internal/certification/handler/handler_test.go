package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillchain/internal/certification/service"
	"skillchain/internal/certification/store"
	"skillchain/pkg/platform/middleware/auth"
)

const (
	signingKey = "test-signing-key"
	adminName  = "registrar"
)

// newRouter builds the handler behind the real auth middleware so tests
// exercise the full request path: bearer token, identity resolution, guard
// errors mapped to HTTP statuses.
func newRouter(t *testing.T, cfg service.Config) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New(store.NewInMemory(), adminName, cfg, service.WithLogger(logger))
	require.NoError(t, err)

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	r.Group(func(r chi.Router) {
		r.Use(auth.NewVerifier(signingKey).Middleware)
		h.RegisterProtected(r)
	})
	return r
}

func openConfig() service.Config {
	return service.Config{MaxCertificatesPerOwner: 100, LockDuration: 0, CooldownDuration: 0}
}

func bearer(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(signingKey))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func issueBody() IssueRequest {
	return IssueRequest{
		Holder:       "student",
		MetadataURI:  "ipfs://meta",
		Name:         "Licence Informatique",
		ResourceType: "diploma",
		Status:       2,
		Grade:        3,
		DocumentRef:  "bafyhash",
	}
}

func TestIssueEndpoint(t *testing.T) {
	router := newRouter(t, openConfig())

	rec := doJSON(t, router, http.MethodPost, "/certifications", bearer(t, adminName), issueBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp IssueResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.ID)
}

func TestIssueRejectsNonAdmin(t *testing.T) {
	router := newRouter(t, openConfig())

	rec := doJSON(t, router, http.MethodPost, "/certifications", bearer(t, "mallory"), issueBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestIssueRequiresToken(t *testing.T) {
	router := newRouter(t, openConfig())

	rec := doJSON(t, router, http.MethodPost, "/certifications", "", issueBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIssueValidatesBody(t *testing.T) {
	router := newRouter(t, openConfig())

	body := issueBody()
	body.Grade = 9
	rec := doJSON(t, router, http.MethodPost, "/certifications", bearer(t, adminName), body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCertification(t *testing.T) {
	router := newRouter(t, openConfig())
	doJSON(t, router, http.MethodPost, "/certifications", bearer(t, adminName), issueBody())

	rec := doJSON(t, router, http.MethodGet, "/certifications/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CertificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Réussi", resp.StatusLabel)
	assert.Equal(t, "Bien", resp.GradeLabel)
	assert.Equal(t, adminName, resp.Owner)
	assert.Equal(t, "student", resp.Holder)
	assert.Empty(t, resp.PreviousOwners)
}

func TestGetCertificationNotFound(t *testing.T) {
	router := newRouter(t, openConfig())

	rec := doJSON(t, router, http.MethodGet, "/certifications/99", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")

	rec = doJSON(t, router, http.MethodGet, "/certifications/zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransferEndpoint(t *testing.T) {
	router := newRouter(t, openConfig())
	doJSON(t, router, http.MethodPost, "/certifications", bearer(t, adminName), issueBody())

	rec := doJSON(t, router, http.MethodPost, "/certifications/1/transfer", bearer(t, adminName),
		TransferRequest{From: adminName, To: "student"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/certifications/1", "", nil)
	var resp CertificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "student", resp.Owner)
	assert.Equal(t, []string{adminName}, resp.PreviousOwners)
}

func TestTransferLockedMapsTo423(t *testing.T) {
	cfg := openConfig()
	cfg.LockDuration = time.Hour
	router := newRouter(t, cfg)
	doJSON(t, router, http.MethodPost, "/certifications", bearer(t, adminName), issueBody())

	rec := doJSON(t, router, http.MethodPost, "/certifications/1/transfer", bearer(t, adminName),
		TransferRequest{From: adminName, To: "student"})
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Contains(t, rec.Body.String(), "token_locked")
}

func TestCooldownMapsTo429(t *testing.T) {
	cfg := openConfig()
	cfg.CooldownDuration = time.Hour
	router := newRouter(t, cfg)
	for i := 0; i < 2; i++ {
		doJSON(t, router, http.MethodPost, "/certifications", bearer(t, adminName), issueBody())
	}

	rec := doJSON(t, router, http.MethodPost, "/certifications/1/transfer", bearer(t, adminName),
		TransferRequest{From: adminName, To: "student"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/certifications/2/transfer", bearer(t, adminName),
		TransferRequest{From: adminName, To: "student"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "cooldown_active")
}

func TestSwapEndpoint(t *testing.T) {
	router := newRouter(t, openConfig())

	// Mint two tokens and hand them to alice and bob.
	for i, owner := range []string{"alice", "bob"} {
		doJSON(t, router, http.MethodPost, "/certifications", bearer(t, adminName), issueBody())
		path := fmt.Sprintf("/certifications/%d/transfer", i+1)
		rec := doJSON(t, router, http.MethodPost, path, bearer(t, adminName), TransferRequest{From: adminName, To: owner})
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	// Without bob's approval the swap is refused.
	rec := doJSON(t, router, http.MethodPost, "/certifications/swap", bearer(t, "alice"),
		SwapRequest{OtherParty: "bob", TokenA: 1, TokenB: 2})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_approval")

	rec = doJSON(t, router, http.MethodPost, "/certifications/2/approve", bearer(t, "bob"),
		ApproveRequest{Grantee: "alice"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/certifications/swap", bearer(t, "alice"),
		SwapRequest{OtherParty: "bob", TokenA: 1, TokenB: 2})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/certifications/1", "", nil)
	var resp CertificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bob", resp.Owner)
}

func TestTransferRoleEndpoint(t *testing.T) {
	router := newRouter(t, openConfig())

	rec := doJSON(t, router, http.MethodPost, "/admin/transfer-role", bearer(t, "mallory"),
		TransferRoleRequest{NewAdmin: "mallory"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/admin/transfer-role", bearer(t, adminName),
		TransferRoleRequest{NewAdmin: "successor"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/certifications", bearer(t, "successor"), issueBody())
	assert.Equal(t, http.StatusCreated, rec.Code)
}
