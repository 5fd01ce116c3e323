// Package middleware provides HTTP middleware for the presentation layer.
package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/monitoring"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/tenant"
	"github.com/gin-gonic/gin"
)

// TenantContextKey is the gin context key holding the resolved tenant.
const TenantContextKey = "tenant"

// TenantMiddleware resolves the tenant from the X-Tenant-ID header, the
// tenantId query parameter, a :slug route parameter or the host, and stores
// the tenant context for handlers. Completed requests are recorded on
// monitor, which may be nil.
func TenantMiddleware(tenantManager *tenant.Manager, perfTracker *performance.Tracker, monitor *monitoring.TenantMonitor) gin.HandlerFunc {
	logger := tenantManager.GetLogger()
	detector := tenantManager.GetDetector()

	return func(c *gin.Context) {
		start := time.Now()
		marker := perfTracker.StartOperation("middleware_tenant_resolution", "unknown")
		defer marker.Complete()

		marker.AddMetadata("path", c.Request.URL.Path)
		marker.AddMetadata("method", c.Request.Method)

		explicit := c.Query("tenantId")
		if explicit == "" {
			explicit = c.Param("slug")
		}

		tenantID, err := detector.Detect(c.GetHeader(tenant.TenantHeader), explicit, c.Request.Host)
		if err != nil {
			logger.Tenant().Warn("Tenant detection failed", "path", c.Request.URL.Path, "host", c.Request.Host, "error", err)
			marker.SetError(err)
			status := http.StatusBadRequest
			if errors.Is(err, tenant.ErrUnknownTenant) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": "tenant not found"})
			c.Abort()
			return
		}
		if marker != nil {
			marker.TenantID = tenantID
		}

		tenantCtx, err := tenantManager.GetContextByID(tenantID)
		if err != nil {
			logger.Tenant().Error("Tenant failed to initialize", "error", err, "tenantId", tenantID)
			marker.SetError(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "tenant unavailable"})
			c.Abort()
			return
		}

		logger.Tenant().Debug("Tenant context resolved successfully",
			"tenantId", tenantCtx.TenantID,
			"duration", time.Since(start),
			"database", tenantCtx.GetDatabaseInfo(),
		)
		marker.SetSuccess(true)

		c.Set(TenantContextKey, tenantCtx)

		c.Next()

		monitor.RecordRequest(tenantID, time.Since(start), c.Writer.Status() < http.StatusInternalServerError)
	}
}
