package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"skillchain/internal/notification"
	"skillchain/pkg/requestcontext"
)

// observer bundles the logging, tracing, and notification side channels so
// the operation files stay focused on guard checks and state transitions.
type observer struct {
	logger   *slog.Logger
	notifier Notifier
	tracer   trace.Tracer
}

func newObserver(logger *slog.Logger, notifier Notifier, tracer trace.Tracer) *observer {
	if tracer == nil {
		tracer = otel.Tracer("skillchain/certification")
	}
	return &observer{logger: logger, notifier: notifier, tracer: tracer}
}

// start opens a span for a ledger operation.
func (o *observer) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// end completes the span, recording any error.
func (o *observer) end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// notify logs a committed event and appends it to the notification log,
// enriched with request-scoped metadata. Failures are logged, never
// propagated: the operation has already committed.
func (o *observer) notify(ctx context.Context, event notification.Event, attrs ...any) {
	requestID := requestcontext.RequestID(ctx)
	if o.logger != nil {
		args := append(attrs, "event", event.Kind, "request_id", requestID, "log_type", "notification")
		o.logger.InfoContext(ctx, string(event.Kind), args...)
	}
	if o.notifier == nil {
		return
	}
	md := requestcontext.GetClientMetadata(ctx)
	event.Timestamp = requestcontext.Now(ctx)
	event.RequestID = requestID
	event.ClientIP = md.IP
	event.Device = md.Device
	if err := o.notifier.Emit(ctx, event); err != nil && o.logger != nil {
		o.logger.ErrorContext(ctx, "failed to emit notification", "error", err, "event", event.Kind)
	}
}
