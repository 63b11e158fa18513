package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentify_Precedence(t *testing.T) {
	tests := []struct {
		name   string
		header string
		host   string
		path   string
		want   string
	}{
		{
			name:   "header wins over everything",
			header: "acme",
			host:   "globex.fretor.io",
			path:   "/api/v1/tenant/initech/trips",
			want:   "acme",
		},
		{
			name: "subdomain when no header",
			host: "globex.fretor.io",
			path: "/api/v1/tenant/initech/trips",
			want: "globex",
		},
		{
			name: "path segment when no header or subdomain",
			host: "localhost:8080",
			path: "/api/v1/tenant/initech/trips",
			want: "initech",
		},
		{
			name: "default when nothing matches",
			host: "localhost:8080",
			path: "/api/v1/analytics/comprehensive",
			want: "default",
		},
		{
			name: "bare two-label host has no subdomain",
			host: "fretor.io",
			want: "default",
		},
		{
			name: "ip host has no subdomain",
			host: "10.0.0.1:8080",
			want: "default",
		},
		{
			name: "path segment without trailing slash",
			host: "localhost",
			path: "/api/v1/tenant/acme",
			want: "acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Identify(tt.header, tt.host, tt.path, "default")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_ActiveTenant(t *testing.T) {
	reg := NewMemoryRegistry(&Tenant{ID: 1, Slug: "acme", IsActive: true})
	r := NewResolver(reg, nil)

	got, err := r.Resolve(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestResolve_UnknownOrInactive(t *testing.T) {
	reg := NewMemoryRegistry(&Tenant{ID: 2, Slug: "globex", IsActive: false})
	r := NewResolver(reg, nil)

	_, err := r.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrTenantNotFound)

	_, err = r.Resolve(context.Background(), "globex")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestResolve_TrialGating(t *testing.T) {
	expiry := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	trial := &Tenant{ID: 3, Slug: "trialco", IsActive: true, IsTrial: true, TrialEndsAt: &expiry}
	reg := NewMemoryRegistry(trial)

	// One second before expiry the request succeeds.
	clock := expiry.Add(-time.Second)
	r := NewResolver(reg, func() time.Time { return clock })
	_, err := r.Resolve(context.Background(), "trialco")
	require.NoError(t, err)

	// One second after, the same tenant is cut off mid-session.
	clock = expiry.Add(time.Second)
	_, err = r.Resolve(context.Background(), "trialco")
	assert.ErrorIs(t, err, ErrTrialExpired)

	// Extending the trial restores access immediately; nothing is cached.
	later := expiry.Add(24 * time.Hour)
	trial.TrialEndsAt = &later
	_, err = r.Resolve(context.Background(), "trialco")
	assert.NoError(t, err)
}

func TestResolve_TrialWithoutExpiryNeverExpires(t *testing.T) {
	reg := NewMemoryRegistry(&Tenant{ID: 4, Slug: "forever", IsActive: true, IsTrial: true})
	r := NewResolver(reg, func() time.Time { return time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC) })

	_, err := r.Resolve(context.Background(), "forever")
	assert.NoError(t, err)
}
