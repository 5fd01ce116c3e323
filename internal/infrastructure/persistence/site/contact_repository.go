package site

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
)

var _ repositories.ContactSubmissionRepository = (*ContactRepository)(nil)

type ContactRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewContactRepository(db *sql.DB, logger *logging.ChanneledLogger) *ContactRepository {
	return &ContactRepository{db: db, logger: logger}
}

// Store inserts a submission, assigning a ULID and timestamp when missing.
func (r *ContactRepository) Store(tenantID string, s *website.ContactSubmission) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.ID == "" {
		s.ID = security.GenerateULIDAt(s.CreatedAt)
	}
	if s.SiteID == "" {
		s.SiteID = tenantID
	}

	query := `INSERT INTO contact_submissions (id, site_id, name, email, phone, message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	if _, err := r.db.Exec(query, s.ID, s.SiteID, s.Name, s.Email, s.Phone, s.Message, s.CreatedAt.Format(time.RFC3339Nano)); err != nil {
		r.logger.Database().Error("Contact submission insert failed", "error", err.Error(), "tenantId", tenantID)
		return fmt.Errorf("failed to insert contact submission: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Contact submission stored", "id", s.ID, "tenantId", tenantID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return nil
}

// FindRecent returns up to limit submissions, newest first.
func (r *ContactRepository) FindRecent(tenantID string, limit int) ([]*website.ContactSubmission, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, site_id, name, email, phone, message, created_at FROM contact_submissions
		WHERE site_id = ? ORDER BY id DESC LIMIT ?`

	start := time.Now()
	rows, err := r.db.Query(query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact submissions: %w", err)
	}
	defer rows.Close()

	var out []*website.ContactSubmission
	for rows.Next() {
		var s website.ContactSubmission
		var phone sql.NullString
		var createdAt string
		if err := rows.Scan(&s.ID, &s.SiteID, &s.Name, &s.Email, &phone, &s.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact submission: %w", err)
		}
		s.Phone = phone.String
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			s.CreatedAt = t
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact submissions: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, tenantID)
	}
	return out, nil
}
