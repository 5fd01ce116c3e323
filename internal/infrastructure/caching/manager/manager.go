// Package manager provides centralized cache operations with proper tenant isolation
package manager

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

var _ interfaces.Cache = (*Manager)(nil)

// Manager provides centralized cache operations with proper tenant isolation by delegating to specialized stores.
type Manager struct {
	Mu           sync.RWMutex
	LastAccessed map[string]time.Time
	siteStore    *stores.SiteStore
	pagesStore   *stores.PagesStore
	logger       *logging.ChanneledLogger
}

func NewManager(ttl time.Duration, logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager", "stores", []string{"site", "pages"}, "ttl", ttl)
	}
	return &Manager{
		LastAccessed: make(map[string]time.Time),
		siteStore:    stores.NewSiteStore(ttl, logger),
		pagesStore:   stores.NewPagesStore(ttl),
		logger:       logger,
	}
}

func (m *Manager) updateTenantAccessTime(tenantID string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.LastAccessed[tenantID] = time.Now().UTC()
}

func (m *Manager) InitializeTenant(tenantID string) {
	start := time.Now()
	m.siteStore.InitializeTenant(tenantID)
	m.pagesStore.InitializeTenant(tenantID)
	m.updateTenantAccessTime(tenantID)

	if m.logger != nil {
		m.logger.Cache().Info("Tenant cache initialized", "tenantId", tenantID, "duration", time.Since(start))
	}
}

func (m *Manager) GetSite(tenantID string) (*website.Site, bool) {
	m.updateTenantAccessTime(tenantID)
	return m.siteStore.GetSite(tenantID)
}

func (m *Manager) SetSite(tenantID string, site *website.Site) {
	m.siteStore.SetSite(tenantID, site)
	m.updateTenantAccessTime(tenantID)
}

// InvalidateSite drops the site and every page rendered from it.
func (m *Manager) InvalidateSite(tenantID string) {
	m.siteStore.InvalidateSite(tenantID)
	m.pagesStore.InvalidatePages(tenantID)
}

func (m *Manager) GetPage(tenantID, variant string) (string, bool) {
	m.updateTenantAccessTime(tenantID)
	return m.pagesStore.GetPage(tenantID, variant)
}

func (m *Manager) SetPage(tenantID, variant, html string) {
	m.pagesStore.SetPage(tenantID, variant, html)
}

func (m *Manager) InvalidatePages(tenantID string) {
	m.pagesStore.InvalidatePages(tenantID)
}

// TenantIDs lists every tenant with initialized caches.
func (m *Manager) TenantIDs() []string {
	return m.siteStore.TenantIDs()
}

// PurgeExpired evicts expired entries for one tenant and returns the count.
func (m *Manager) PurgeExpired(tenantID string) int {
	purged := m.pagesStore.PurgeExpired(tenantID)
	if m.siteStore.PurgeExpired(tenantID) {
		purged++
	}
	return purged
}

func (m *Manager) Stats(tenantID string) types.CacheStats {
	stats := types.CacheStats{TenantID: tenantID, Pages: m.pagesStore.Count(tenantID)}
	if cache, ok := m.siteStore.GetTenantCache(tenantID); ok {
		cache.Mu.RLock()
		stats.SiteCached = cache.Site != nil
		stats.SiteUpdated = cache.SiteLastUpdated
		cache.Mu.RUnlock()
	}
	m.Mu.RLock()
	stats.LastAccess = m.LastAccessed[tenantID]
	m.Mu.RUnlock()
	return stats
}
