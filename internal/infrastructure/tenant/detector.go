// Package tenant provides tenant detection and validation.
package tenant

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

// TenantHeader carries the tenant id in multi-tenant mode.
const TenantHeader = "X-Tenant-ID"

var ErrUnknownTenant = errors.New("unknown tenant")

// Detector handles tenant detection from HTTP requests
type Detector struct {
	mu          sync.RWMutex
	baseDir     string
	registry    *TenantRegistry
	multiTenant bool
	logger      *logging.ChanneledLogger
}

func NewDetector(baseDir string, multiTenant bool, logger *logging.ChanneledLogger) (*Detector, error) {
	registry, err := LoadTenantRegistry(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant registry: %w", err)
	}

	return &Detector{
		baseDir:     baseDir,
		registry:    registry,
		multiTenant: multiTenant,
		logger:      logger,
	}, nil
}

// Detect resolves a tenant from, in order: the explicit header, the tenantId
// query parameter (websocket clients cannot set headers), a registered domain
// and finally the first label of the host. Single-tenant mode always answers
// the default tenant.
func (d *Detector) Detect(header, query, host string) (string, error) {
	if !d.multiTenant {
		return DefaultTenantID, nil
	}

	if id := strings.TrimSpace(header); id != "" {
		return d.ensureKnown(id)
	}
	if id := strings.TrimSpace(query); id != "" {
		return d.ensureKnown(id)
	}

	hostname := stripPort(host)
	if id, ok := d.matchDomain(hostname); ok {
		return id, nil
	}
	if label, _, found := strings.Cut(hostname, "."); found && label != "" && label != "www" {
		if id, err := d.ensureKnown(label); err == nil {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no tenant for host %q", ErrUnknownTenant, hostname)
}

func (d *Detector) ensureKnown(tenantID string) (string, error) {
	d.mu.RLock()
	_, exists := d.registry.Tenants[tenantID]
	d.mu.RUnlock()
	if exists {
		return tenantID, nil
	}

	if !d.hasConfigDirectory(tenantID) {
		return "", fmt.Errorf("%w: %s", ErrUnknownTenant, tenantID)
	}
	if err := RegisterTenant(d.baseDir, tenantID, nil); err != nil {
		return "", fmt.Errorf("failed to auto-register tenant %s: %w", tenantID, err)
	}
	if err := d.RefreshRegistry(); err != nil {
		return "", fmt.Errorf("failed to reload registry after auto-registration: %w", err)
	}
	d.logger.Tenant().Info("Auto-registered tenant", "tenantId", tenantID)
	return tenantID, nil
}

func (d *Detector) matchDomain(hostname string) (string, bool) {
	if hostname == "" {
		return "", false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for id, info := range d.registry.Tenants {
		for _, domain := range info.Domains {
			if domain != "*" && strings.EqualFold(domain, hostname) {
				return id, true
			}
		}
	}
	return "", false
}

func (d *Detector) hasConfigDirectory(tenantID string) bool {
	if !validTenantID(tenantID) {
		return false
	}
	info, err := os.Stat(filepath.Join(d.baseDir, tenantID))
	return err == nil && info.IsDir()
}

// ValidateDomain checks if the request domain is allowed for the tenant
func (d *Detector) ValidateDomain(tenantID, domain string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tenantInfo, exists := d.registry.Tenants[tenantID]
	if !exists {
		return false
	}
	domain = stripPort(domain)
	for _, allowedDomain := range tenantInfo.Domains {
		if allowedDomain == "*" || strings.EqualFold(allowedDomain, domain) {
			return true
		}
	}
	return false
}

// GetTenantStatus returns the current status of a tenant
func (d *Detector) GetTenantStatus(tenantID string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if tenantInfo, exists := d.registry.Tenants[tenantID]; exists {
		return tenantInfo.Status
	}
	return "unknown"
}

// UpdateTenantStatus updates the cached registry status
func (d *Detector) UpdateTenantStatus(tenantID, status, dbType string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if tenantInfo, exists := d.registry.Tenants[tenantID]; exists {
		tenantInfo.Status = status
		if dbType != "" {
			tenantInfo.DatabaseType = dbType
		}
		d.registry.Tenants[tenantID] = tenantInfo
	}
}

// RefreshRegistry reloads the tenant registry from disk, keeping the
// in-memory activation status of tenants that are still listed.
func (d *Detector) RefreshRegistry() error {
	registry, err := LoadTenantRegistry(d.baseDir)
	if err != nil {
		return fmt.Errorf("failed to refresh tenant registry: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for id, info := range registry.Tenants {
		if old, ok := d.registry.Tenants[id]; ok && old.Status == StatusActive && info.Status != StatusDisabled {
			info.Status = StatusActive
			info.DatabaseType = old.DatabaseType
			registry.Tenants[id] = info
		}
	}
	d.registry = registry
	return nil
}

// TenantIDs returns a snapshot of registered tenant ids.
func (d *Detector) TenantIDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.registry.Tenants))
	for id := range d.registry.Tenants {
		ids = append(ids, id)
	}
	return ids
}

// Snapshot returns a copy of the registry.
func (d *Detector) Snapshot() map[string]TenantInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]TenantInfo, len(d.registry.Tenants))
	for id, info := range d.registry.Tenants {
		out[id] = info
	}
	return out
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return strings.ToLower(h)
	}
	return strings.ToLower(host)
}
