// Package handlers provides HTTP request handlers.
package handlers

import (
	"github.com/gin-gonic/gin"

	"fretor/internal/core/apperror"
	"fretor/internal/core/tenant"
)

// requestTenantID reads the tenant id the middleware attached. A missing
// tenant means the route was wired outside the tenant group, which is a
// programming error surfaced as 500.
func requestTenantID(c *gin.Context) (int64, bool) {
	id := tenant.IDFromContext(c.Request.Context())
	if id == 0 {
		_ = c.Error(apperror.NewInternal(errMissingTenant))
		c.Abort()
		return 0, false
	}
	return id, true
}

var errMissingTenant = &missingTenantError{}

type missingTenantError struct{}

func (*missingTenantError) Error() string {
	return "no tenant in request context; route registered outside tenant group"
}
