// Package tenant handles loading and providing tenant-specific configurations.
package tenant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	registryFileName = "tenants.json"
	envFileName      = "env.json"
	sqliteFileName   = "site.db"

	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusReserved = "reserved"
	StatusDisabled = "disabled"

	DefaultTenantID = "default"
)

// Config represents the structure of a single tenant's env.json
type Config struct {
	TenantID          string   `json:"-"`
	Domains           []string `json:"-"`
	SiteURL           string   `json:"siteURL"`
	AdminPasswordHash string   `json:"adminPasswordHash"`
	JWTSecret         string   `json:"jwtSecret"`
	TursoEnabled      bool     `json:"tursoEnabled"`
	TursoDatabase     string   `json:"tursoDatabaseURL"`
	TursoToken        string   `json:"tursoAuthToken"`
	ResendAPIKey      string   `json:"resendApiKey"`
	EmailFrom         string   `json:"emailFrom"`
	SQLitePath        string   `json:"-"`
}

// UseTurso reports whether the tenant is configured for a remote database.
func (c *Config) UseTurso() bool {
	return c.TursoEnabled && c.TursoDatabase != "" && c.TursoToken != ""
}

// LoadTenantConfig loads configuration for a specific tenant from its env.json file.
// A missing env.json yields a local-only configuration.
func LoadTenantConfig(baseDir, tenantID string) (*Config, error) {
	if !validTenantID(tenantID) {
		return nil, fmt.Errorf("invalid tenant id %q", tenantID)
	}

	tenantConfig := Config{}
	configPath := filepath.Join(baseDir, tenantID, envFileName)
	configFile, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("could not read tenant config file: %w", err)
	default:
		if err := json.Unmarshal(configFile, &tenantConfig); err != nil {
			return nil, fmt.Errorf("could not parse tenant config json: %w", err)
		}
	}

	tenantConfig.TenantID = tenantID
	tenantConfig.SQLitePath = filepath.Join(baseDir, tenantID, sqliteFileName)
	return &tenantConfig, nil
}

// SaveTenantConfig writes env.json for a tenant, creating its directory.
func SaveTenantConfig(baseDir string, cfg *Config) error {
	dir := filepath.Join(baseDir, cfg.TenantID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create tenant directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tenant config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, envFileName), data, 0o600); err != nil {
		return fmt.Errorf("failed to write tenant config: %w", err)
	}
	return nil
}

// TenantRegistry holds the global tenant configuration
type TenantRegistry struct {
	Tenants map[string]TenantInfo `json:"tenants"`
}

// TenantInfo holds tenant metadata
type TenantInfo struct {
	TenantID     string   `json:"tenantId"`
	Domains      []string `json:"domains"`
	Status       string   `json:"status"`       // "inactive", "active", "reserved", "disabled"
	DatabaseType string   `json:"databaseType"` // "turso", "sqlite3"
}

// LoadTenantRegistry loads the global tenant registry. A missing file yields
// a registry holding only the default tenant.
func LoadTenantRegistry(baseDir string) (*TenantRegistry, error) {
	registryPath := filepath.Join(baseDir, registryFileName)

	data, err := os.ReadFile(registryPath)
	if os.IsNotExist(err) {
		return &TenantRegistry{
			Tenants: map[string]TenantInfo{
				DefaultTenantID: {
					TenantID: DefaultTenantID,
					Domains:  []string{"*"},
					Status:   StatusInactive,
				},
			},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant registry: %w", err)
	}

	var registry TenantRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse tenant registry: %w", err)
	}
	if registry.Tenants == nil {
		registry.Tenants = map[string]TenantInfo{}
	}
	for id, info := range registry.Tenants {
		if info.TenantID == "" {
			info.TenantID = id
			registry.Tenants[id] = info
		}
	}
	return &registry, nil
}

// RegisterTenant adds a tenant to the registry on disk if absent.
func RegisterTenant(baseDir, tenantID string, domains []string) error {
	if !validTenantID(tenantID) {
		return fmt.Errorf("invalid tenant id %q", tenantID)
	}
	registry, err := LoadTenantRegistry(baseDir)
	if err != nil {
		return err
	}
	if _, exists := registry.Tenants[tenantID]; exists {
		return nil
	}
	if len(domains) == 0 {
		domains = []string{"*"}
	}
	registry.Tenants[tenantID] = TenantInfo{
		TenantID: tenantID,
		Domains:  domains,
		Status:   StatusInactive,
	}
	return saveTenantRegistry(baseDir, registry)
}

func saveTenantRegistry(baseDir string, registry *TenantRegistry) error {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}
	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.WriteFile(filepath.Join(baseDir, registryFileName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// validTenantID keeps ids usable as directory names.
func validTenantID(id string) bool {
	if id == "" || len(id) > 64 || strings.HasPrefix(id, ".") {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
