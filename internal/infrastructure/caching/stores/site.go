// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

// SiteStore caches loaded site records with tenant isolation
type SiteStore struct {
	tenantCaches map[string]*types.TenantSiteCache
	mu           sync.RWMutex
	ttl          time.Duration
	now          func() time.Time
	logger       *logging.ChanneledLogger
}

// NewSiteStore creates a site cache store. Entries older than ttl are misses.
func NewSiteStore(ttl time.Duration, logger *logging.ChanneledLogger) *SiteStore {
	if logger != nil {
		logger.Cache().Info("Initializing site cache store", "ttl", ttl)
	}
	return &SiteStore{
		tenantCaches: make(map[string]*types.TenantSiteCache),
		ttl:          ttl,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
}

// InitializeTenant creates cache structures for a tenant
func (ss *SiteStore) InitializeTenant(tenantID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.tenantCaches[tenantID] == nil {
		ss.tenantCaches[tenantID] = &types.TenantSiteCache{LastUpdated: ss.now()}
		if ss.logger != nil {
			ss.logger.Cache().Debug("Tenant site cache initialized", "tenantId", tenantID)
		}
	}
}

// GetTenantCache safely retrieves a tenant's site cache
func (ss *SiteStore) GetTenantCache(tenantID string) (*types.TenantSiteCache, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	cache, exists := ss.tenantCaches[tenantID]
	return cache, exists
}

// GetSite returns a copy of the cached site unless it has expired.
func (ss *SiteStore) GetSite(tenantID string) (*website.Site, bool) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		ss.logOperation("get", tenantID, false, "tenant_not_initialized")
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if cache.Site == nil {
		ss.logOperation("get", tenantID, false, "nil")
		return nil, false
	}
	if ss.ttl > 0 && ss.now().Sub(cache.SiteLastUpdated) > ss.ttl {
		ss.logOperation("get", tenantID, false, "expired")
		return nil, false
	}

	ss.logOperation("get", tenantID, true, "")
	return copySite(cache.Site), true
}

// SetSite stores a copy of site.
func (ss *SiteStore) SetSite(tenantID string, site *website.Site) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		ss.InitializeTenant(tenantID)
		cache, _ = ss.GetTenantCache(tenantID)
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	now := ss.now()
	cache.Site = copySite(site)
	cache.SiteLastUpdated = now
	cache.LastUpdated = now
	ss.logOperation("set", tenantID, true, "")
}

// InvalidateSite drops the cached site.
func (ss *SiteStore) InvalidateSite(tenantID string) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Site = nil
	cache.SiteLastUpdated = time.Time{}
	cache.LastUpdated = ss.now()
	if ss.logger != nil {
		ss.logger.Cache().Info("Site cache invalidated", "tenantId", tenantID)
	}
}

// PurgeExpired drops the site when it is older than the store TTL and
// reports whether anything was removed.
func (ss *SiteStore) PurgeExpired(tenantID string) bool {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists || ss.ttl <= 0 {
		return false
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	if cache.Site == nil || ss.now().Sub(cache.SiteLastUpdated) <= ss.ttl {
		return false
	}
	cache.Site = nil
	cache.SiteLastUpdated = time.Time{}
	cache.LastUpdated = ss.now()
	return true
}

// TenantIDs lists initialized tenants.
func (ss *SiteStore) TenantIDs() []string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	ids := make([]string, 0, len(ss.tenantCaches))
	for id := range ss.tenantCaches {
		ids = append(ids, id)
	}
	return ids
}

func (ss *SiteStore) logOperation(op, tenantID string, hit bool, reason string) {
	if ss.logger == nil {
		return
	}
	if reason != "" {
		ss.logger.Cache().Debug("Cache operation", "operation", op, "type", "site", "tenantId", tenantID, "hit", hit, "reason", reason)
		return
	}
	ss.logger.LogCacheOperation(op, "site", hit, tenantID)
}

// copySite detaches the record map so callers cannot mutate cached state.
func copySite(site *website.Site) *website.Site {
	if site == nil {
		return nil
	}
	out := *site
	out.Record = site.Record.Clone()
	if site.Organization.Social != nil {
		social := make(map[string]string, len(site.Organization.Social))
		for k, v := range site.Organization.Social {
			social[k] = v
		}
		out.Organization.Social = social
	}
	return &out
}
