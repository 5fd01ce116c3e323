package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
)

// ErrEmptyPatch is returned when an update carries no keys.
var (
	ErrEmptyPatch          = errors.New("configuration patch is empty")
	ErrMissingOrganization = errors.New("organization name cannot be empty")
)

// ConfigService reads and writes a tenant's site configuration record.
type ConfigService struct {
	broadcaster messaging.Broadcaster
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	now         func() time.Time
}

// NewConfigService creates a new configuration service. broadcaster may be
// nil when no live preview is attached.
func NewConfigService(broadcaster messaging.Broadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ConfigService {
	return &ConfigService{
		broadcaster: broadcaster,
		logger:      logger,
		perfTracker: perfTracker,
		now:         time.Now,
	}
}

// Get loads the stored site (cache-first).
func (s *ConfigService) Get(t TenantScope) (*website.Site, error) {
	site, err := t.SiteRepo().Load(t.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load site configuration: %w", err)
	}
	return site, nil
}

// GetConfig loads the site and decodes its record.
func (s *ConfigService) GetConfig(t TenantScope) (*website.Site, website.Config, error) {
	site, err := s.Get(t)
	if err != nil {
		return nil, website.Config{}, err
	}
	return site, site.Config(), nil
}

// Update merges patch over the stored record. Keys absent from patch are
// kept untouched, including ones this service does not know; a nil value
// deletes its key. A tenant without a stored site gets one created.
func (s *ConfigService) Update(t TenantScope, patch website.Record) (*website.Site, error) {
	if len(patch) == 0 {
		return nil, ErrEmptyPatch
	}
	for key := range patch {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("configuration key cannot be empty")
		}
	}

	marker := s.perfTracker.StartOperation("site_config_update", t.ID())
	defer marker.Complete()

	site, err := t.SiteRepo().Load(t.ID())
	switch {
	case errors.Is(err, repositories.ErrSiteNotFound):
		site = &website.Site{
			Organization: website.Organization{ID: t.ID(), Name: t.ID(), Slug: t.ID()}.WithDefaults(),
			Record:       website.Record{},
		}
	case err != nil:
		marker.SetError(err)
		return nil, fmt.Errorf("failed to load site configuration: %w", err)
	}

	site.Record = site.Record.Merge(patch)
	if err := s.save(t, site, keysOf(patch)); err != nil {
		marker.SetError(err)
		return nil, err
	}

	marker.SetSuccess(true)
	return site, nil
}

// SetEnabled publishes or unpublishes the site.
func (s *ConfigService) SetEnabled(t TenantScope, enabled bool) (*website.Site, error) {
	return s.Update(t, website.Record{website.KeyEnabled: enabled})
}

// UpdateOrganization replaces the organization identity, keeping its id.
func (s *ConfigService) UpdateOrganization(t TenantScope, org website.Organization) (*website.Site, error) {
	if strings.TrimSpace(org.Name) == "" {
		return nil, ErrMissingOrganization
	}
	site, err := t.SiteRepo().Load(t.ID())
	switch {
	case errors.Is(err, repositories.ErrSiteNotFound):
		site = &website.Site{Record: website.Record{}}
	case err != nil:
		return nil, fmt.Errorf("failed to load site configuration: %w", err)
	}

	org.ID = t.ID()
	site.Organization = org.WithDefaults()
	if err := s.save(t, site, []string{"organization"}); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *ConfigService) save(t TenantScope, site *website.Site, keys []string) error {
	start := s.now()
	if err := t.SiteRepo().Save(t.ID(), site); err != nil {
		return fmt.Errorf("failed to save site configuration: %w", err)
	}

	s.logger.Site().Info("Site configuration saved", "tenantId", t.ID(), "keys", len(keys), "duration", s.now().Sub(start))

	if s.broadcaster != nil {
		s.broadcaster.Publish(t.ID(), messaging.Event{
			Type:      messaging.EventConfigUpdated,
			TenantID:  t.ID(),
			Keys:      keys,
			UpdatedAt: site.UpdatedAt,
		})
	}
	return nil
}

func keysOf(r website.Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
