package tenant

import "context"

type ctxKey struct{}

// WithTenant stores the resolved tenant in context so downstream components
// receive a scoped tenant without re-resolving.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext retrieves the tenant from context or nil.
func FromContext(ctx context.Context) *Tenant {
	t, _ := ctx.Value(ctxKey{}).(*Tenant)
	return t
}

// IDFromContext returns the tenant id or 0 when no tenant is attached.
func IDFromContext(ctx context.Context) int64 {
	if t := FromContext(ctx); t != nil {
		return t.ID
	}
	return 0
}
