package tenant

import (
	"context"
	"strings"
	"time"
)

// pathPrefix is the route prefix that may embed a tenant slug,
// e.g. /api/v1/tenant/acme/trips.
const pathPrefix = "/api/v1/tenant/"

// Identify picks the tenant slug candidate from the request metadata.
// Precedence is fixed: explicit header beats subdomain beats path segment
// beats the configured default. It always produces some candidate; whether
// that candidate exists is the resolver's job.
func Identify(header, host, path, defaultSlug string) string {
	if header != "" {
		return header
	}
	if sub := subdomain(host); sub != "" {
		return sub
	}
	if seg := pathSegment(path); seg != "" {
		return seg
	}
	return defaultSlug
}

// subdomain extracts the first host label, e.g. acme.fretor.io -> acme.
// A bare host or an IP-like host yields nothing.
func subdomain(host string) string {
	if host == "" {
		return ""
	}
	// Strip port if present.
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return ""
	}
	for _, p := range parts {
		if p == "" {
			return ""
		}
	}
	// Reject numeric hosts (IPv4).
	if strings.Trim(parts[len(parts)-1], "0123456789") == "" {
		return ""
	}
	return parts[0]
}

// pathSegment extracts the slug from /api/v1/tenant/<slug>/... paths.
func pathSegment(path string) string {
	if !strings.HasPrefix(path, pathPrefix) {
		return ""
	}
	rest := strings.TrimPrefix(path, pathPrefix)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// Resolver looks up tenant candidates against the registry and enforces
// the active / trial-expiry gates.
type Resolver struct {
	registry Registry
	now      func() time.Time
}

// NewResolver creates a resolver. The clock is injectable so trial expiry
// can be pinned in tests; production passes time.Now.
func NewResolver(registry Registry, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{registry: registry, now: now}
}

// Resolve looks up the slug and gates access. The trial check is evaluated
// against the wall clock on every call, never cached: a tenant whose trial
// lapsed one second ago is rejected even if its previous request succeeded.
func (r *Resolver) Resolve(ctx context.Context, slug string) (*Tenant, error) {
	t, err := r.registry.GetActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if t.TrialExpired(r.now()) {
		return nil, ErrTrialExpired
	}
	return t, nil
}
