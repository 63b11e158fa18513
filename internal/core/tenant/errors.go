package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no active tenant matches the slug.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTrialExpired is returned when the tenant's trial period is over.
	// The check runs on every request, so an extended trial takes effect
	// immediately without any session reset.
	ErrTrialExpired = errors.New("tenant trial expired")
)
