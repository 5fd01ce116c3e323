package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
)

// ErrForeignField rejects upload targets outside the site configuration.
var ErrForeignField = errors.New("field is not a site configuration key")

// UploadService stores media and optionally points a configuration field
// at the result.
type UploadService struct {
	uploader    repositories.Uploader
	config      *ConfigService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewUploadService(uploader repositories.Uploader, config *ConfigService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *UploadService {
	return &UploadService{
		uploader:    uploader,
		config:      config,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Upload stores file under folder. When field is set, the configuration key
// is updated with the public URL, and only after the upload succeeded.
// Gallery uploads append to the image list instead of replacing it.
func (s *UploadService) Upload(ctx context.Context, t TenantScope, file repositories.UploadFile, folder, field string) (string, error) {
	if field != "" && !strings.HasPrefix(field, "website_") {
		return "", fmt.Errorf("%w: %q", ErrForeignField, field)
	}

	marker := s.perfTracker.StartOperation("media_upload", t.ID())
	defer marker.Complete()

	url, err := s.uploader.Upload(ctx, t.ID(), file, folder)
	if err != nil {
		marker.SetError(err)
		s.logger.Media().Warn("Upload rejected", "tenantId", t.ID(), "folder", folder, "error", err)
		return "", err
	}

	if field == "" {
		marker.SetSuccess(true)
		return url, nil
	}

	var value any = url
	if field == website.KeyGallery {
		_, cfg, err := s.config.GetConfig(t)
		if err != nil {
			marker.SetError(err)
			return "", err
		}
		images := make([]any, 0, len(cfg.GalleryImages)+1)
		for _, img := range cfg.GalleryImages {
			images = append(images, img)
		}
		value = append(images, url)
	}

	if _, err := s.config.Update(t, website.Record{field: value}); err != nil {
		marker.SetError(err)
		return "", fmt.Errorf("failed to set %s after upload: %w", field, err)
	}

	marker.SetSuccess(true)
	return url, nil
}
