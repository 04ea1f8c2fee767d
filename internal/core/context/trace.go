package context

import (
	"context"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// TraceContext carries per-request correlation identifiers.
type TraceContext struct {
	TraceID   string
	SpanID    string
	RequestID string
}

type traceContextKey struct{}

// WithTrace attaches a TraceContext to the context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns the TraceContext, or nil outside a traced request.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// GetRequestID returns the request id or empty string.
func GetRequestID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.RequestID
	}
	return ""
}

// NewTraceContext creates a TraceContext with generated identifiers.
func NewTraceContext() *TraceContext {
	traceID := id.New().String()
	return &TraceContext{
		TraceID:   traceID,
		SpanID:    traceID[:16],
		RequestID: id.New().String(),
	}
}
