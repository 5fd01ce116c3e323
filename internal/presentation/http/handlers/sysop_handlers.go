package handlers

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/monitoring"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/tenant"
)

// SysOpHandlers are the operator endpoints: registered tenants, cache
// state, request health and runtime log levels.
type SysOpHandlers struct {
	tenantManager *tenant.Manager
	cache         interfaces.Cache
	monitor       *monitoring.TenantMonitor
	password      string
	logger        *logging.ChanneledLogger
}

// NewSysOpHandlers creates new SysOp handlers
func NewSysOpHandlers(tenantManager *tenant.Manager, cache interfaces.Cache, monitor *monitoring.TenantMonitor,
	password string, logger *logging.ChanneledLogger) *SysOpHandlers {
	return &SysOpHandlers{
		tenantManager: tenantManager,
		cache:         cache,
		monitor:       monitor,
		password:      password,
		logger:        logger,
	}
}

// SysOpAuthMiddleware protects SysOp-specific endpoints. Without a
// configured password they are disabled entirely.
func (h *SysOpHandlers) SysOpAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.password == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "operator endpoints are disabled"})
			return
		}

		token := ""
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = auth[len("Bearer "):]
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.password)) != 1 {
			h.logger.LogAuthOperation("sysop", "", "", false)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// GetTenants returns registered tenants with their cache state
func (h *SysOpHandlers) GetTenants(c *gin.Context) {
	ids := h.tenantManager.GetDetector().TenantIDs()
	sort.Strings(ids)

	tenants := make([]gin.H, 0, len(ids))
	for _, id := range ids {
		entry := gin.H{"id": id, "status": h.tenantManager.GetDetector().GetTenantStatus(id)}
		if h.cache != nil {
			entry["cache"] = h.cache.Stats(id)
		}
		if metrics, ok := h.monitor.GetMetrics(id); ok {
			entry["health"] = metrics
		}
		tenants = append(tenants, entry)
	}
	c.JSON(http.StatusOK, gin.H{"tenants": tenants})
}

// GetCacheStats returns the cache state of every cached tenant
func (h *SysOpHandlers) GetCacheStats(c *gin.Context) {
	stats := make([]types.CacheStats, 0)
	if h.cache != nil {
		for _, id := range h.cache.TenantIDs() {
			stats = append(stats, h.cache.Stats(id))
		}
	}
	c.JSON(http.StatusOK, gin.H{"cache": stats})
}

// GetHealth returns request and page-cache metrics for every tenant that
// has served traffic since startup.
func (h *SysOpHandlers) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tenants": h.monitor.GetAllMetrics()})
}

// PostReloadTenant drops a tenant's cached context, site record, rendered
// pages and health counters so the next request reloads everything.
func (h *SysOpHandlers) PostReloadTenant(c *gin.Context) {
	id := c.Param("id")
	if h.tenantManager.GetDetector().GetTenantStatus(id) == "unknown" {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}
	h.tenantManager.Forget(id)
	if h.cache != nil {
		h.cache.InvalidateSite(id)
	}
	h.monitor.Reset(id)
	h.logger.Tenant().Info("Tenant reloaded by operator", "tenantId", id)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "tenantId": id})
}

// GetDatabases returns the shared connection pools and their health.
func (h *SysOpHandlers) GetDatabases(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pools": tenant.GetConnectionPoolInfo()})
}

// GetLogLevels returns current log levels for all channels.
func (h *SysOpHandlers) GetLogLevels(c *gin.Context) {
	c.JSON(http.StatusOK, h.logger.GetChannelLevels())
}

// SetLogLevel sets the log level for a specific channel.
func (h *SysOpHandlers) SetLogLevel(c *gin.Context) {
	var req struct {
		Channel string `json:"channel" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var level slog.Level
	switch strings.ToUpper(req.Level) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log level specified"})
		return
	}

	if err := h.logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to set log level", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": fmt.Sprintf("Log level for channel '%s' set to '%s'", req.Channel, req.Level)})
}
