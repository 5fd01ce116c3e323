package stores

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/types"
)

// PagesStore caches rendered page HTML per tenant and variant
type PagesStore struct {
	tenantCaches map[string]*types.TenantPageCache
	mu           sync.RWMutex
	ttl          time.Duration
	now          func() time.Time
}

func NewPagesStore(ttl time.Duration) *PagesStore {
	return &PagesStore{
		tenantCaches: make(map[string]*types.TenantPageCache),
		ttl:          ttl,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// InitializeTenant creates cache structures for a tenant
func (ps *PagesStore) InitializeTenant(tenantID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.tenantCaches[tenantID] == nil {
		ps.tenantCaches[tenantID] = &types.TenantPageCache{
			Pages: make(map[string]*types.PageFragment),
		}
	}
}

func (ps *PagesStore) GetTenantCache(tenantID string) (*types.TenantPageCache, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	cache, exists := ps.tenantCaches[tenantID]
	return cache, exists
}

// GetPage returns cached HTML for variant.
func (ps *PagesStore) GetPage(tenantID, variant string) (string, bool) {
	cache, exists := ps.GetTenantCache(tenantID)
	if !exists {
		return "", false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	page, ok := cache.Pages[variant]
	if !ok {
		return "", false
	}
	if ps.ttl > 0 && ps.now().Sub(page.LastUpdated) > ps.ttl {
		return "", false
	}
	return page.HTML, true
}

// SetPage stores rendered HTML for variant.
func (ps *PagesStore) SetPage(tenantID, variant, html string) {
	cache, exists := ps.GetTenantCache(tenantID)
	if !exists {
		ps.InitializeTenant(tenantID)
		cache, _ = ps.GetTenantCache(tenantID)
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Pages[variant] = &types.PageFragment{HTML: html, Variant: variant, LastUpdated: ps.now()}
}

// InvalidatePages drops every variant for a tenant.
func (ps *PagesStore) InvalidatePages(tenantID string) {
	cache, exists := ps.GetTenantCache(tenantID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.Pages = make(map[string]*types.PageFragment)
}

// PurgeExpired removes expired variants and returns how many were dropped.
func (ps *PagesStore) PurgeExpired(tenantID string) int {
	cache, exists := ps.GetTenantCache(tenantID)
	if !exists || ps.ttl <= 0 {
		return 0
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	purged := 0
	now := ps.now()
	for key, page := range cache.Pages {
		if now.Sub(page.LastUpdated) > ps.ttl {
			delete(cache.Pages, key)
			purged++
		}
	}
	return purged
}

// Count returns the number of cached variants.
func (ps *PagesStore) Count(tenantID string) int {
	cache, exists := ps.GetTenantCache(tenantID)
	if !exists {
		return 0
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	return len(cache.Pages)
}
