// Package appctx carries request-scoped values through context.
package appctx

import "context"

// TraceContext holds request tracing identifiers.
type TraceContext struct {
	TraceID   string
	SpanID    string
	RequestID string
}

type traceKey struct{}

// WithTrace stores trace context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceKey{}, trace)
}

// GetTrace retrieves trace context or nil.
func GetTrace(ctx context.Context) *TraceContext {
	t, _ := ctx.Value(traceKey{}).(*TraceContext)
	return t
}

// GetRequestID returns the request id or empty string.
func GetRequestID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.RequestID
	}
	return ""
}
