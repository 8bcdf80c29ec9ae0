package service

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	certmetrics "skillchain/internal/certification/metrics"
)

// serviceConfig holds optional dependencies for the service.
type serviceConfig struct {
	logger   *slog.Logger
	notifier Notifier
	metrics  *certmetrics.Metrics
	tracer   trace.Tracer
}

// Option configures the service.
type Option func(c *serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *serviceConfig) {
		c.notifier = n
	}
}

func WithMetrics(m *certmetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

// WithTracer injects a pre-configured OpenTelemetry tracer.
// Useful for testing or when a custom tracer provider is in use.
func WithTracer(t trace.Tracer) Option {
	return func(c *serviceConfig) {
		c.tracer = t
	}
}
