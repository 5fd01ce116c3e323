// Package site provides the site record and contact submission repositories
package site

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
)

var _ repositories.SiteRepository = (*SiteRepository)(nil)

type SiteRepository struct {
	db     *sql.DB
	cache  interfaces.SiteCache
	logger *logging.ChanneledLogger
}

func NewSiteRepository(db *sql.DB, cache interfaces.SiteCache, logger *logging.ChanneledLogger) *SiteRepository {
	return &SiteRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// Load returns the tenant's site, cache first.
func (r *SiteRepository) Load(tenantID string) (*website.Site, error) {
	if site, found := r.cache.GetSite(tenantID); found {
		return site, nil
	}

	site, err := r.loadFromDB(tenantID)
	if err != nil {
		return nil, err
	}

	r.cache.SetSite(tenantID, site)
	return site, nil
}

// Save upserts the whole record and refreshes the cache.
func (r *SiteRepository) Save(tenantID string, site *website.Site) error {
	orgJSON, err := json.Marshal(site.Organization)
	if err != nil {
		return fmt.Errorf("failed to marshal organization: %w", err)
	}
	record := site.Record
	if record == nil {
		record = website.Record{}
	}
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal site record: %w", err)
	}

	site.UpdatedAt = time.Now().UTC()
	query := `INSERT INTO sites (id, organization_json, record_json, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET organization_json = excluded.organization_json,
		record_json = excluded.record_json, updated_at = excluded.updated_at`

	start := time.Now()
	r.logger.Database().Debug("Executing site upsert", "tenantId", tenantID)

	if _, err := r.db.Exec(query, tenantID, string(orgJSON), string(recordJSON), site.UpdatedAt.Format(time.RFC3339Nano)); err != nil {
		r.logger.Database().Error("Site upsert failed", "error", err.Error(), "tenantId", tenantID)
		return fmt.Errorf("failed to save site: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Site upsert completed", "tenantId", tenantID, "keys", len(record), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}

	r.cache.InvalidateSite(tenantID)
	r.cache.SetSite(tenantID, site)
	return nil
}

func (r *SiteRepository) loadFromDB(tenantID string) (*website.Site, error) {
	query := `SELECT organization_json, record_json, updated_at FROM sites WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing site query", "tenantId", tenantID)

	var orgJSON, recordJSON, updatedAt string
	err := r.db.QueryRow(query, tenantID).Scan(&orgJSON, &recordJSON, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrSiteNotFound
	}
	if err != nil {
		r.logger.Database().Error("Site query failed", "error", err.Error(), "tenantId", tenantID)
		return nil, fmt.Errorf("failed to load site: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Site query completed", "tenantId", tenantID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}

	site := &website.Site{Record: website.Record{}}
	if err := json.Unmarshal([]byte(orgJSON), &site.Organization); err != nil {
		return nil, fmt.Errorf("failed to parse organization: %w", err)
	}
	if recordJSON != "" {
		if err := json.Unmarshal([]byte(recordJSON), &site.Record); err != nil {
			return nil, fmt.Errorf("failed to parse site record: %w", err)
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		site.UpdatedAt = t
	}
	site.Organization = site.Organization.WithDefaults()
	return site, nil
}
