package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
)

const (
	adminCookieName = "admin_auth"
	// AdminClaimsKey holds the validated claims on admin requests.
	AdminClaimsKey = "adminClaims"
)

// AuthHandlers contains all authentication-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostLogin handles POST /api/v1/auth/login - admin authentication
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	start := time.Now()
	marker := h.perfTracker.StartOperation("post_login_request", t.ID())
	defer marker.Complete()
	h.logger.Auth().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path, "tenantId", t.ID())

	var loginReq struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.authService.AuthenticateAdmin(t, loginReq.Password)
	if err != nil {
		h.logger.Auth().Warn("Login attempt failed", "tenantId", t.ID(), "error", err, "duration", time.Since(start))
		marker.SetError(err)
		respondError(c, h.logger.Auth(), t.ID(), err)
		return
	}

	c.SetCookie(adminCookieName, result.Token, int(time.Until(result.ExpiresAt).Seconds()), "/", "", c.Request.TLS != nil, true)

	h.logger.Auth().Info("Login successful", "tenantId", t.ID(), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, result)
}

// PostLogout clears the admin cookie.
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	c.SetCookie(adminCookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AuthMiddleware admits requests carrying a valid admin token for the
// resolved tenant. The token is read from the Authorization header, the
// admin cookie, or the token query parameter used by websocket clients.
func (h *AuthHandlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := tenantFrom(c)
		if !ok {
			c.Abort()
			return
		}

		token := bearerToken(c)
		if token == "" {
			h.logger.LogAuthOperation("admin_token", t.ID(), "", false)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := h.authService.ValidateAdminToken(t, token)
		if err != nil {
			h.logger.Auth().Debug("Admin token rejected", "tenantId", t.ID(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}

// isAdmin reports whether the request carries a valid admin token, without
// rejecting it.
func (h *AuthHandlers) isAdmin(c *gin.Context, t services.TenantScope) bool {
	token := bearerToken(c)
	if token == "" {
		return false
	}
	_, err := h.authService.ValidateAdminToken(t, token)
	return err == nil
}

func bearerToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}
	if cookie, err := c.Cookie(adminCookieName); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("token")
}
