package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/monitoring"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/tenant"
)

func newSysopRouter(t *testing.T, password string) (*gin.Engine, *monitoring.TenantMonitor) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.NewNopLogger()
	cache := manager.NewManager(time.Hour, logger)
	tenants, err := tenant.NewManager(t.TempDir(), false, cache, logger)
	require.NoError(t, err)
	monitor := monitoring.NewTenantMonitor(monitoring.DefaultHealthThresholds())

	h := NewSysOpHandlers(tenants, cache, monitor, password, logger)
	r := gin.New()
	g := r.Group("/api/sysop", h.SysOpAuthMiddleware())
	g.GET("/tenants", h.GetTenants)
	g.GET("/health", h.GetHealth)
	g.POST("/tenants/:id/reload", h.PostReloadTenant)
	return r, monitor
}

func sysopRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSysopDisabledWithoutPassword(t *testing.T) {
	r, _ := newSysopRouter(t, "")
	assert.Equal(t, http.StatusNotFound, sysopRequest(r, http.MethodGet, "/api/sysop/tenants", "anything").Code)
}

func TestSysopRequiresPassword(t *testing.T) {
	r, _ := newSysopRouter(t, "op-secret")
	assert.Equal(t, http.StatusUnauthorized, sysopRequest(r, http.MethodGet, "/api/sysop/tenants", "wrong").Code)

	w := sysopRequest(r, http.MethodGet, "/api/sysop/tenants", "op-secret")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Tenants []map[string]any `json:"tenants"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tenants, 1)
	assert.Equal(t, tenant.DefaultTenantID, body.Tenants[0]["id"])
}

func TestSysopReloadResetsHealth(t *testing.T) {
	r, monitor := newSysopRouter(t, "op-secret")
	monitor.RecordRequest(tenant.DefaultTenantID, time.Millisecond, true)

	w := sysopRequest(r, http.MethodPost, "/api/sysop/tenants/"+tenant.DefaultTenantID+"/reload", "op-secret")
	require.Equal(t, http.StatusOK, w.Code)
	_, ok := monitor.GetMetrics(tenant.DefaultTenantID)
	assert.False(t, ok)

	w = sysopRequest(r, http.MethodPost, "/api/sysop/tenants/nobody/reload", "op-secret")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = sysopRequest(r, http.MethodGet, "/api/sysop/health", "op-secret")
	assert.Equal(t, http.StatusOK, w.Code)
}
