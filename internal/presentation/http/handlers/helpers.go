// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/http/middleware"
)

// tenantFrom reads the tenant stored by the tenant middleware. Handlers only
// need the service-facing view of it.
func tenantFrom(c *gin.Context) (services.TenantScope, bool) {
	v, exists := c.Get(middleware.TenantContextKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return nil, false
	}
	t, ok := v.(services.TenantScope)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return nil, false
	}
	return t, true
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyPatch),
		errors.Is(err, services.ErrMissingOrganization),
		errors.Is(err, services.ErrForeignField),
		errors.Is(err, services.ErrInvalidContact),
		errors.Is(err, website.ErrUnknownField),
		errors.Is(err, website.ErrFieldNotAssignable),
		errors.Is(err, repositories.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrContactFormDisabled),
		errors.Is(err, services.ErrAuthNotConfigured):
		return http.StatusForbidden
	case errors.Is(err, website.ErrSectionNotFound),
		errors.Is(err, services.ErrSiteDisabled),
		errors.Is(err, repositories.ErrSiteNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes err as JSON. Server errors are logged and their
// detail is not exposed.
func respondError(c *gin.Context, logger *slog.Logger, tenantID string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "tenantId", tenantID, "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
