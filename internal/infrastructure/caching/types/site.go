// Package types defines cache data structures for multi-tenant site data.
package types

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

// TenantSiteCache stores the loaded site record for a tenant
type TenantSiteCache struct {
	Site            *website.Site `json:"site"`
	SiteLastUpdated time.Time     `json:"siteLastUpdated"`

	// Cache metadata
	LastUpdated time.Time    `json:"lastUpdated"`
	Mu          sync.RWMutex `json:"-"`
}

// TenantPageCache holds rendered page HTML for a single tenant
type TenantPageCache struct {
	Pages map[string]*PageFragment // variant key -> page
	Mu    sync.RWMutex
}

// PageFragment is one rendered page variant. Variants differ by the consent
// categories that gate analytics snippets.
type PageFragment struct {
	HTML        string    `json:"html"`
	Variant     string    `json:"variant"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// CacheStats summarises one tenant's cache for logging.
type CacheStats struct {
	TenantID    string    `json:"tenantId"`
	SiteCached  bool      `json:"siteCached"`
	Pages       int       `json:"pages"`
	LastAccess  time.Time `json:"lastAccess"`
	SiteUpdated time.Time `json:"siteUpdated"`
}
