// Package httptransport assembles the HTTP surface: middleware stack,
// public read routes, and the authenticated mutation routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	certhandler "skillchain/internal/certification/handler"
	"skillchain/internal/filestore"
	"skillchain/internal/platform/health"
	"skillchain/pkg/platform/middleware/auth"
	"skillchain/pkg/platform/middleware/metadata"
	"skillchain/pkg/platform/middleware/request"
)

// Config carries the transport-level knobs NewRouter needs.
type Config struct {
	JWTSigningKey  string
	TrustedProxies []string
	RequestTimeout time.Duration
}

// NewRouter wires all endpoints with the middleware stack. The read paths
// (certifications, documents, health, metrics) are public; everything that
// mutates the ledger requires a bearer token.
func NewRouter(cfg Config, certs *certhandler.Handler, docs *filestore.Handler, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(metadata.NewMiddleware(&metadata.Config{TrustedProxies: parsePrefixes(cfg.TrustedProxies, logger)}).Handler)
	r.Use(request.Logger(logger))
	r.Use(request.Timeout(timeout))

	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	certs.Register(r)
	docs.Register(r)

	verifier := auth.NewVerifier(cfg.JWTSigningKey)
	r.Group(func(r chi.Router) {
		r.Use(verifier.Middleware)
		r.With(request.ContentTypeJSON).Group(certs.RegisterProtected)
		docs.RegisterProtected(r)
	})

	return r
}

// parsePrefixes converts CIDR strings to prefixes, logging and skipping
// anything malformed rather than refusing to boot.
func parsePrefixes(raw []string, logger *slog.Logger) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(raw))
	for _, s := range raw {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			logger.Warn("skipping invalid trusted proxy prefix", "prefix", s, "error", err)
			continue
		}
		prefixes = append(prefixes, prefix)
	}
	return prefixes
}
