package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fretor/internal/core/apperror"
	"fretor/internal/core/tenant"
)

// HeaderTenantID carries the explicit tenant slug. It wins over subdomain
// and path identification.
const HeaderTenantID = "X-Tenant-ID"

// Tenant resolves the request's tenant and attaches it to the context.
// Every data-facing route must run behind this middleware; handlers read the
// tenant id from the request context only.
func Tenant(resolver *tenant.Resolver, defaultSlug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := tenant.Identify(
			c.GetHeader(HeaderTenantID),
			c.Request.Host,
			c.Request.URL.Path,
			defaultSlug,
		)

		t, err := resolver.Resolve(c.Request.Context(), slug)
		if err != nil {
			switch {
			case errors.Is(err, tenant.ErrTenantNotFound):
				_ = c.Error(apperror.NewTenantNotFound(slug))
			case errors.Is(err, tenant.ErrTrialExpired):
				_ = c.Error(apperror.NewTrialExpired(slug))
			default:
				_ = c.Error(apperror.NewInternal(err))
			}
			c.Abort()
			return
		}

		ctx := tenant.WithTenant(c.Request.Context(), t)
		c.Request = c.Request.WithContext(ctx)
		c.Set("tenant_slug", t.Slug)

		c.Next()
	}
}
