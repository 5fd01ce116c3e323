// Package repositories defines the persistence and collaborator interfaces
// the site builder depends on. Implementations live under infrastructure.
package repositories

import (
	"context"
	"errors"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

var (
	// ErrSiteNotFound is returned when a tenant has no stored site record.
	ErrSiteNotFound = errors.New("site not found")
	// ErrInvalidImage is returned by an Uploader for payloads that are not
	// a supported image.
	ErrInvalidImage = errors.New("invalid image")
)

// SiteRepository is the configuration record store.
type SiteRepository interface {
	Load(tenantID string) (*website.Site, error)
	Save(tenantID string, site *website.Site) error
}

type ContactSubmissionRepository interface {
	Store(tenantID string, submission *website.ContactSubmission) error
	FindRecent(tenantID string, limit int) ([]*website.ContactSubmission, error)
}

// KeyValueStorage is durable client-side storage. Set may fail when the
// backing store is unavailable; callers decide whether that matters.
type KeyValueStorage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// UploadFile is a binary payload handed to an Uploader.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, tenantID string, file UploadFile, folder string) (string, error)
}
