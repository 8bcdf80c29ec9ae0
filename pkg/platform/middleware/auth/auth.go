// Package auth resolves the calling identity at the transport edge. The
// ledger core never sees credentials: by the time an operation reaches it,
// the caller is an already-authenticated Identity.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	id "skillchain/pkg/domain"
)

type contextKeyCaller struct{}

// Verifier validates bearer tokens and injects the caller identity into the
// request context. Tokens are HS256-signed with the subject claim carrying
// the identity name.
type Verifier struct {
	signingKey []byte
}

func NewVerifier(signingKey string) *Verifier {
	return &Verifier{signingKey: []byte(signingKey)}
}

// Middleware rejects requests without a valid bearer token.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := v.callerFromRequest(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		ctx := context.WithValue(r.Context(), contextKeyCaller{}, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (v *Verifier) callerFromRequest(r *http.Request) (id.Identity, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return "", jwt.ErrTokenMalformed
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	return id.ParseIdentity(claims.Subject)
}

// CallerFromContext returns the authenticated identity, if any.
func CallerFromContext(ctx context.Context) (id.Identity, bool) {
	caller, ok := ctx.Value(contextKeyCaller{}).(id.Identity)
	return caller, ok && !caller.IsNil()
}
