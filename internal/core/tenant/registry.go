package tenant

import (
	"context"
	"fmt"
	"sync"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Registry provides access to tenant records.
type Registry interface {
	// GetActiveBySlug retrieves a tenant by slug where is_active is true.
	// Returns ErrTenantNotFound for unknown or deactivated slugs.
	GetActiveBySlug(ctx context.Context, slug string) (*Tenant, error)
}

// PostgresRegistry implements Registry backed by the shared tenants table.
type PostgresRegistry struct {
	pool *pgxpool.Pool
}

func NewPostgresRegistry(pool *pgxpool.Pool) *PostgresRegistry {
	return &PostgresRegistry{pool: pool}
}

func (r *PostgresRegistry) GetActiveBySlug(ctx context.Context, slug string) (*Tenant, error) {
	var t Tenant
	err := pgxscan.Get(ctx, r.pool, &t, `
		SELECT id, name, slug, company_name, document, email, phone,
		       max_users, max_vehicles, is_active, is_trial, trial_ends_at,
		       created_at, updated_at
		FROM tenants
		WHERE slug = $1 AND is_active = true
	`, slug)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant by slug: %w", err)
	}
	return &t, nil
}

var _ Registry = (*PostgresRegistry)(nil)

// MemoryRegistry is an in-memory Registry for tests and seeding tools.
type MemoryRegistry struct {
	mu     sync.RWMutex
	bySlug map[string]*Tenant
}

func NewMemoryRegistry(tenants ...*Tenant) *MemoryRegistry {
	r := &MemoryRegistry{bySlug: make(map[string]*Tenant)}
	for _, t := range tenants {
		r.Put(t)
	}
	return r
}

// Put adds or replaces a tenant record.
func (r *MemoryRegistry) Put(t *Tenant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySlug[t.Slug] = t
}

func (r *MemoryRegistry) GetActiveBySlug(_ context.Context, slug string) (*Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.bySlug[slug]
	if !ok || !t.IsActive {
		return nil, ErrTenantNotFound
	}
	return t, nil
}

var _ Registry = (*MemoryRegistry)(nil)
