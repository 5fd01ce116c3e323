package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/storage"
)

// ConsentHandlers drive the cookie banner. Decisions live in the visitor's
// own cookies.
type ConsentHandlers struct {
	consentService *services.ConsentService
	logger         *logging.ChanneledLogger
}

func NewConsentHandlers(consentService *services.ConsentService, logger *logging.ChanneledLogger) *ConsentHandlers {
	return &ConsentHandlers{consentService: consentService, logger: logger}
}

func (h *ConsentHandlers) storage(c *gin.Context) *storage.CookieStorage {
	return storage.NewCookieStorage(c.Writer, c.Request, ConsentCookieMaxAge)
}

// GetConsent handles GET /api/v1/consent
func (h *ConsentHandlers) GetConsent(c *gin.Context) {
	c.JSON(http.StatusOK, h.consentService.Current(h.storage(c)))
}

// PostAction returns the handler of one banner button.
func (h *ConsentHandlers) PostAction(action services.ConsentAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		var desired website.ConsentRecord
		if action == services.ConsentPreferences {
			if err := c.ShouldBindJSON(&desired); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
				return
			}
		}

		snapshot, err := h.consentService.Apply(h.storage(c), action, desired)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snapshot)
	}
}

// PostToggle handles POST /api/v1/consent/toggle/:category. The result is
// not persisted until preferences are saved.
func (h *ConsentHandlers) PostToggle(c *gin.Context) {
	category := website.ConsentCategory(c.Param("category"))
	switch category {
	case website.ConsentNecessary, website.ConsentAnalytics, website.ConsentMarketing, website.ConsentPreferences:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown consent category"})
		return
	}
	c.JSON(http.StatusOK, h.consentService.Toggle(h.storage(c), category))
}
