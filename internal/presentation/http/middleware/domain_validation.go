package middleware

import (
	"net"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

// DomainChecker reports whether a host may act on behalf of a tenant.
type DomainChecker interface {
	ValidateDomain(tenantID, domain string) bool
}

// DomainValidationMiddleware rejects API calls whose Origin, or Host when
// no Origin is sent, is not registered for the resolved tenant. Loopback
// hosts and CORS preflights pass through.
func DomainValidationMiddleware(checker DomainChecker, logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || isLoopback(c.Request.Host) {
			c.Next()
			return
		}

		value, ok := c.Get(TenantContextKey)
		scope, isScope := value.(services.TenantScope)
		if !ok || !isScope {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "tenant context required"})
			return
		}

		domain := hostOnly(c.Request.Host)
		if origin := c.GetHeader("Origin"); origin != "" {
			if u, err := url.Parse(origin); err == nil && u.Hostname() != "" {
				domain = u.Hostname()
			}
		}

		if !checker.ValidateDomain(scope.ID(), domain) {
			logger.Tenant().Warn("Rejected request from unregistered domain",
				"tenantId", scope.ID(), "domain", domain, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "domain not allowed for tenant"})
			return
		}
		c.Next()
	}
}

func hostOnly(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return hostport
}

func isLoopback(hostport string) bool {
	host := hostOnly(hostport)
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
