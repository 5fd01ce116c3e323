// Package database provides tenant schema creation and seeding
package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS sites (
		id TEXT PRIMARY KEY,
		organization_json TEXT NOT NULL,
		record_json TEXT NOT NULL DEFAULT '{}',
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contact_submissions (
		id TEXT PRIMARY KEY,
		site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		message TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_contact_submissions_site ON contact_submissions(site_id, id)`,
}

// TableCreator handles the creation of the database schema for a tenant.
type TableCreator struct{}

func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the tenant's database tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedSite writes site for tenantID. Without overwrite an existing row is
// left untouched and false is returned.
func (tc *TableCreator) SeedSite(db *sql.DB, tenantID string, site *website.Site, overwrite bool) (bool, error) {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM sites WHERE id = ?)", tenantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for site existence: %w", err)
	}
	if exists && !overwrite {
		return false, nil
	}

	org := site.Organization
	if org.ID == "" {
		org.ID = tenantID
	}
	orgJSON, err := json.Marshal(org)
	if err != nil {
		return false, fmt.Errorf("failed to marshal organization: %w", err)
	}
	record := site.Record
	if record == nil {
		record = website.Record{}
	}
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return false, fmt.Errorf("failed to marshal site record: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = db.Exec(`INSERT INTO sites (id, organization_json, record_json, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET organization_json = excluded.organization_json,
		record_json = excluded.record_json, updated_at = excluded.updated_at`,
		tenantID, string(orgJSON), string(recordJSON), now)
	if err != nil {
		return false, fmt.Errorf("failed to insert site: %w", err)
	}
	return true, nil
}

var errEmptySeed = errors.New("seed file has no organization name")
