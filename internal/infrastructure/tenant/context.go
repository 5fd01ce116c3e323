// Package tenant provides tenant context management for multi-tenant support.
package tenant

import (
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/persistence/site"
)

// Context holds tenant-specific request context
type Context struct {
	TenantID     string
	Config       *Config
	Database     *Database
	Status       string
	CacheManager *manager.Manager
	Logger       *logging.ChanneledLogger
}

// Close cleans up the tenant context
func (ctx *Context) Close() error {
	if ctx.Database != nil {
		return ctx.Database.Close()
	}
	return nil
}

// IsActive returns true if the tenant is active
func (ctx *Context) IsActive() bool {
	return ctx.Status == StatusActive
}

// GetDatabaseInfo returns database connection information for logging
func (ctx *Context) GetDatabaseInfo() string {
	if ctx.Database != nil {
		return ctx.Database.GetConnectionInfo()
	}
	return "no database connection"
}

// SiteRepo returns the tenant's configuration record store.
func (ctx *Context) SiteRepo() repositories.SiteRepository {
	return site.NewSiteRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// ContactRepo returns the tenant's contact submission store.
func (ctx *Context) ContactRepo() repositories.ContactSubmissionRepository {
	return site.NewContactRepository(ctx.Database.Conn, ctx.Logger)
}

// ID returns the tenant identifier.
func (ctx *Context) ID() string {
	return ctx.TenantID
}

// PublicURL is the site's canonical URL from env.json, possibly empty.
func (ctx *Context) PublicURL() string {
	if ctx.Config == nil {
		return ""
	}
	return ctx.Config.SiteURL
}

// EmailSettings returns the tenant's Resend API key and sender address.
func (ctx *Context) EmailSettings() (apiKey, from string) {
	if ctx.Config == nil {
		return "", ""
	}
	return ctx.Config.ResendAPIKey, ctx.Config.EmailFrom
}

// AdminCredentials returns the bcrypt hash and JWT secret for admin login.
func (ctx *Context) AdminCredentials() (passwordHash, jwtSecret string) {
	if ctx.Config == nil {
		return "", ""
	}
	return ctx.Config.AdminPasswordHash, ctx.Config.JWTSecret
}
