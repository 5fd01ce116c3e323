package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
)

// SectionHandlers exposes the custom section editor
type SectionHandlers struct {
	sectionService *services.CustomSectionService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

func NewSectionHandlers(sectionService *services.CustomSectionService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SectionHandlers {
	return &SectionHandlers{
		sectionService: sectionService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetSections handles GET /api/v1/admin/sections
func (h *SectionHandlers) GetSections(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}
	sections, err := h.sectionService.List(t)
	if err != nil {
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// PostSection handles POST /api/v1/admin/sections - appends a section with
// editor defaults
func (h *SectionHandlers) PostSection(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	marker := h.perfTracker.StartOperation("post_section_request", t.ID())
	defer marker.Complete()

	section, err := h.sectionService.Add(t)
	if err != nil {
		marker.SetError(err)
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}

	h.logger.Site().Info("Custom section added", "tenantId", t.ID(), "sectionId", section.ID)
	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, section)
}

// PatchSection handles PATCH /api/v1/admin/sections/:id - {field, value}
func (h *SectionHandlers) PatchSection(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	var req struct {
		Field string `json:"field" binding:"required"`
		Value any    `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field is required"})
		return
	}

	section, err := h.sectionService.UpdateField(t, c.Param("id"), req.Field, req.Value)
	if err != nil {
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// DeleteSection handles DELETE /api/v1/admin/sections/:id
func (h *SectionHandlers) DeleteSection(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.sectionService.Remove(t, id); err != nil {
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}
	h.logger.Site().Info("Custom section removed", "tenantId", t.ID(), "sectionId", id)
	c.Status(http.StatusNoContent)
}

// PostMove handles POST /api/v1/admin/sections/:id/move - {direction: up|down}
func (h *SectionHandlers) PostMove(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	var req struct {
		Direction website.MoveDirection `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.Direction != website.MoveUp && req.Direction != website.MoveDown) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be up or down"})
		return
	}

	sections, err := h.sectionService.Move(t, c.Param("id"), req.Direction)
	if err != nil {
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}
