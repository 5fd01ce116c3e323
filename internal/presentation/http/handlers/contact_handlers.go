package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
)

// ContactHandlers receives the public contact form
type ContactHandlers struct {
	contactService *services.ContactService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

func NewContactHandlers(contactService *services.ContactService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ContactHandlers {
	return &ContactHandlers{
		contactService: contactService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// PostContact handles POST /api/v1/contact
func (h *ContactHandlers) PostContact(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	start := time.Now()
	marker := h.perfTracker.StartOperation("post_contact_request", t.ID())
	defer marker.Complete()
	h.logger.Site().Debug("Received contact request", "method", c.Request.Method, "path", c.Request.URL.Path, "tenantId", t.ID())

	var req services.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	message, err := h.contactService.Submit(t, req)
	if err != nil {
		marker.SetError(err)
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}

	h.logger.Site().Info("Contact request completed", "tenantId", t.ID(), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
