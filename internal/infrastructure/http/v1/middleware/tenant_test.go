package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fretor/internal/core/tenant"
)

var mwNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testRouter(registry *tenant.MemoryRegistry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := tenant.NewResolver(registry, func() time.Time { return mwNow })

	r := gin.New()
	r.Use(ErrorHandler())

	api := r.Group("/api/v1")
	api.Use(Tenant(resolver, "default"))
	probe := func(c *gin.Context) {
		t := tenant.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"tenant_id": t.ID, "slug": t.Slug})
	}
	api.GET("/probe", probe)
	api.GET("/tenant/:tenant_slug/probe", probe)
	return r
}

func seededRegistry() *tenant.MemoryRegistry {
	return tenant.NewMemoryRegistry(
		&tenant.Tenant{ID: 1, Slug: "default", IsActive: true},
		&tenant.Tenant{ID: 2, Slug: "acme", IsActive: true},
		&tenant.Tenant{ID: 3, Slug: "dormant", IsActive: false},
		&tenant.Tenant{ID: 4, Slug: "trial", IsActive: true, IsTrial: true,
			TrialEndsAt: timePtr(mwNow.Add(-time.Hour))},
	)
}

func timePtr(t time.Time) *time.Time { return &t }

func doRequest(r *gin.Engine, host, header, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if host != "" {
		req.Host = host
	}
	if header != "" {
		req.Header.Set(HeaderTenantID, header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTenant_HeaderIdentification(t *testing.T) {
	r := testRouter(seededRegistry())

	w := doRequest(r, "", "acme", "/api/v1/probe")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["tenant_id"])
}

func TestTenant_SubdomainIdentification(t *testing.T) {
	r := testRouter(seededRegistry())

	w := doRequest(r, "acme.fretor.io", "", "/api/v1/probe")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "acme", body["slug"])
}

func TestTenant_PathIdentification(t *testing.T) {
	r := testRouter(seededRegistry())

	w := doRequest(r, "", "", "/api/v1/tenant/acme/probe")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "acme", body["slug"])
}

func TestTenant_HeaderBeatsSubdomainAndPath(t *testing.T) {
	r := testRouter(seededRegistry())

	w := doRequest(r, "default.fretor.io", "acme", "/api/v1/tenant/default/probe")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "acme", body["slug"])
}

func TestTenant_FallsBackToDefault(t *testing.T) {
	r := testRouter(seededRegistry())

	w := doRequest(r, "localhost:8080", "", "/api/v1/probe")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "default", body["slug"])
}

func TestTenant_UnknownSlugIs404(t *testing.T) {
	r := testRouter(seededRegistry())

	w := doRequest(r, "", "ghost", "/api/v1/probe")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "TENANT_NOT_FOUND", body["code"])
}

func TestTenant_InactiveSlugIs404(t *testing.T) {
	r := testRouter(seededRegistry())

	w := doRequest(r, "", "dormant", "/api/v1/probe")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTenant_ExpiredTrialIs402(t *testing.T) {
	r := testRouter(seededRegistry())

	w := doRequest(r, "", "trial", "/api/v1/probe")
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "TRIAL_EXPIRED", body["code"])
}

func TestTenant_TrialExtensionRestoresAccess(t *testing.T) {
	registry := seededRegistry()
	r := testRouter(registry)

	require.Equal(t, http.StatusPaymentRequired, doRequest(r, "", "trial", "/api/v1/probe").Code)

	// Extend the trial; the next request re-evaluates and succeeds.
	registry.Put(&tenant.Tenant{ID: 4, Slug: "trial", IsActive: true, IsTrial: true,
		TrialEndsAt: timePtr(mwNow.Add(time.Hour))})
	assert.Equal(t, http.StatusOK, doRequest(r, "", "trial", "/api/v1/probe").Code)
}
