package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults for the guard windows. Both are overridable per deployment; the
// lock window is deliberately longer than the cooldown so a fresh transfer
// settles before either party can move the token again.
const (
	DefaultLockDuration     = 5 * time.Minute
	DefaultCooldownDuration = time.Minute
	DefaultMaxCertsPerOwner = 10
)

// Server captures everything main needs to boot the service.
type Server struct {
	Addr             string
	AdminIdentity    string
	JWTSigningKey    string
	MaxCertsPerOwner int
	LockDuration     time.Duration
	CooldownDuration time.Duration
	FilestoreBaseURL string
	TrustedProxies   []string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:             envOr("SKILLCHAIN_ADDR", ":8080"),
		AdminIdentity:    envOr("SKILLCHAIN_ADMIN", "registrar"),
		JWTSigningKey:    os.Getenv("SKILLCHAIN_JWT_SIGNING_KEY"),
		MaxCertsPerOwner: DefaultMaxCertsPerOwner,
		LockDuration:     durationOr("SKILLCHAIN_LOCK_DURATION", DefaultLockDuration),
		CooldownDuration: durationOr("SKILLCHAIN_COOLDOWN_DURATION", DefaultCooldownDuration),
		FilestoreBaseURL: envOr("SKILLCHAIN_FILESTORE_BASE_URL", "http://localhost:8080/documents"),
	}

	if raw := os.Getenv("SKILLCHAIN_TRUSTED_PROXIES"); raw != "" {
		for _, proxy := range strings.Split(raw, ",") {
			if proxy = strings.TrimSpace(proxy); proxy != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, proxy)
			}
		}
	}

	if cfg.JWTSigningKey == "" {
		// Development fallback; deployments must set their own key.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	if raw := os.Getenv("SKILLCHAIN_MAX_CERTS_PER_OWNER"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.MaxCertsPerOwner = n
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}
