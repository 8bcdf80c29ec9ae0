// Package requestcontext carries request-scoped values through context:
// the request id, the request time, and client metadata. Services read
// these instead of sampling globals so behavior stays deterministic and
// testable.
package requestcontext

import (
	"context"
	"time"
)

type (
	contextKeyRequestTime    struct{}
	contextKeyRequestID      struct{}
	contextKeyClientMetadata struct{}
)

// ClientMetadata describes the calling client as seen at the transport edge.
type ClientMetadata struct {
	IP        string
	UserAgent string
	Device    string
}

// WithTime injects a specific time into a context. All operations within a
// single request observe the same "now", which is also how tests drive the
// clock without the HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyRequestTime{}, t)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts like workers and CLIs.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyRequestTime{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithRequestID stores the request id in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, id)
}

// RequestID returns the request id, or "" when none was set.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyRequestID{}).(string); ok {
		return id
	}
	return ""
}

// WithClientMetadata stores client metadata in the context.
func WithClientMetadata(ctx context.Context, md ClientMetadata) context.Context {
	return context.WithValue(ctx, contextKeyClientMetadata{}, md)
}

// GetClientMetadata returns the client metadata, zero-valued when unset.
func GetClientMetadata(ctx context.Context) ClientMetadata {
	if md, ok := ctx.Value(contextKeyClientMetadata{}).(ClientMetadata); ok {
		return md
	}
	return ClientMetadata{}
}
