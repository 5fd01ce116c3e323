// Package interfaces defines cache operation contracts for multi-tenant site data.
package interfaces

import (
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/types"
)

// SiteCache defines operations for site record caching
type SiteCache interface {
	GetSite(tenantID string) (*website.Site, bool)
	SetSite(tenantID string, site *website.Site)
	InvalidateSite(tenantID string)
}

// PageCache defines operations for rendered page caching
type PageCache interface {
	GetPage(tenantID, variant string) (string, bool)
	SetPage(tenantID, variant, html string)
	InvalidatePages(tenantID string)
}

// Cache is the full contract the cleanup worker and tenant layer use.
type Cache interface {
	SiteCache
	PageCache
	InitializeTenant(tenantID string)
	TenantIDs() []string
	PurgeExpired(tenantID string) int
	Stats(tenantID string) types.CacheStats
}
