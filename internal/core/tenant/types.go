// Package tenant provides tenant identification, lookup and access gating.
// All business data is scoped to exactly one tenant; the resolver binds every
// request to a live tenant record before any data access happens.
package tenant

import "time"

// Tenant represents a tenant record from the tenants table.
// Slug is the URL-safe identifier used on the wire; it is immutable after
// provisioning.
type Tenant struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Slug string `db:"slug"`

	// Company details
	CompanyName string `db:"company_name"`
	Document    string `db:"document"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`

	// Advisory quotas, enforced by provisioning, not by the core
	MaxUsers    int `db:"max_users"`
	MaxVehicles int `db:"max_vehicles"`

	// Access state
	IsActive    bool       `db:"is_active"`
	IsTrial     bool       `db:"is_trial"`
	TrialEndsAt *time.Time `db:"trial_ends_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TrialExpired reports whether the tenant is in trial and past its expiry
// at the given instant. A nil expiry means the trial never expires.
func (t *Tenant) TrialExpired(now time.Time) bool {
	return t.IsTrial && t.TrialEndsAt != nil && now.After(*t.TrialEndsAt)
}
