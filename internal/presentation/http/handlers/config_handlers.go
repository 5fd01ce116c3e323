package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
)

// ConfigHandlers contains the admin configuration endpoints
type ConfigHandlers struct {
	configService  *services.ConfigService
	contactService *services.ContactService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewConfigHandlers creates config handlers with injected dependencies
func NewConfigHandlers(configService *services.ConfigService, contactService *services.ContactService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ConfigHandlers {
	return &ConfigHandlers{
		configService:  configService,
		contactService: contactService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetConfig handles GET /api/v1/admin/config - the raw record plus its
// decoded view
func (h *ConfigHandlers) GetConfig(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	start := time.Now()
	marker := h.perfTracker.StartOperation("get_config_request", t.ID())
	defer marker.Complete()
	h.logger.Site().Debug("Received get config request", "method", c.Request.Method, "path", c.Request.URL.Path, "tenantId", t.ID())

	site, cfg, err := h.configService.GetConfig(t)
	if err != nil {
		marker.SetError(err)
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}

	h.logger.Site().Info("Get config request completed", "tenantId", t.ID(), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"organization": site.Organization,
		"record":       site.Record,
		"config":       cfg,
		"updatedAt":    site.UpdatedAt,
	})
}

// PatchConfig handles PATCH /api/v1/admin/config - partial record merge
func (h *ConfigHandlers) PatchConfig(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	marker := h.perfTracker.StartOperation("patch_config_request", t.ID())
	defer marker.Complete()
	h.logger.Site().Debug("Received patch config request", "method", c.Request.Method, "path", c.Request.URL.Path, "tenantId", t.ID())

	var patch website.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	site, err := h.configService.Update(t, patch)
	if err != nil {
		marker.SetError(err)
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"record": site.Record, "updatedAt": site.UpdatedAt})
}

// PutEnabled handles PUT /api/v1/admin/enabled
func (h *ConfigHandlers) PutEnabled(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled is required"})
		return
	}

	if _, err := h.configService.SetEnabled(t, *req.Enabled); err != nil {
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}

	h.logger.Site().Info("Site publication changed", "tenantId", t.ID(), "enabled", *req.Enabled)
	c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled})
}

// PutOrganization handles PUT /api/v1/admin/organization
func (h *ConfigHandlers) PutOrganization(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	var org website.Organization
	if err := c.ShouldBindJSON(&org); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	site, err := h.configService.UpdateOrganization(t, org)
	if err != nil {
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}
	c.JSON(http.StatusOK, site.Organization)
}

// GetContacts handles GET /api/v1/admin/contacts - newest submissions first
func (h *ConfigHandlers) GetContacts(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, 500)
	}

	submissions, err := h.contactService.Recent(t, limit)
	if err != nil {
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions, "count": len(submissions)})
}
