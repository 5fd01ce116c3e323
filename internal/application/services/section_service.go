package services

import (
	"fmt"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

// CustomSectionService edits the operator-authored section list. Every
// mutation is persisted through the configuration service.
type CustomSectionService struct {
	config *ConfigService
	now    func() time.Time
}

func NewCustomSectionService(config *ConfigService) *CustomSectionService {
	return &CustomSectionService{config: config, now: time.Now}
}

// List returns the well-formed sections in stored order.
func (s *CustomSectionService) List(t TenantScope) ([]website.CustomSection, error) {
	sections, err := s.load(t)
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// Add appends a section with the editor defaults.
func (s *CustomSectionService) Add(t TenantScope) (website.CustomSection, error) {
	sections, err := s.load(t)
	if err != nil {
		return website.CustomSection{}, err
	}

	now := s.now()
	for sections.IndexOf(website.NewCustomSection(now, 0).ID) >= 0 {
		now = now.Add(time.Millisecond)
	}

	updated, added := sections.Add(now)
	if err := s.store(t, updated); err != nil {
		return website.CustomSection{}, err
	}
	return added, nil
}

// UpdateField assigns one field of a section.
func (s *CustomSectionService) UpdateField(t TenantScope, id, field string, value any) (website.CustomSection, error) {
	sections, err := s.load(t)
	if err != nil {
		return website.CustomSection{}, err
	}
	updated, err := sections.UpdateField(id, field, value)
	if err != nil {
		return website.CustomSection{}, err
	}
	if err := s.store(t, updated); err != nil {
		return website.CustomSection{}, err
	}
	return updated[updated.IndexOf(id)], nil
}

// Remove deletes a section. Remaining orders are left as stored.
func (s *CustomSectionService) Remove(t TenantScope, id string) error {
	sections, err := s.load(t)
	if err != nil {
		return err
	}
	updated, err := sections.Remove(id)
	if err != nil {
		return err
	}
	return s.store(t, updated)
}

// Move swaps a section with its neighbour and renumbers every order.
func (s *CustomSectionService) Move(t TenantScope, id string, dir website.MoveDirection) ([]website.CustomSection, error) {
	sections, err := s.load(t)
	if err != nil {
		return nil, err
	}
	updated, err := sections.Move(id, dir)
	if err != nil {
		return nil, err
	}
	if err := s.store(t, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CustomSectionService) load(t TenantScope) (website.CustomSections, error) {
	_, cfg, err := s.config.GetConfig(t)
	if err != nil {
		return nil, err
	}
	return website.CustomSections(cfg.CustomSections), nil
}

func (s *CustomSectionService) store(t TenantScope, sections website.CustomSections) error {
	_, err := s.config.Update(t, website.Record{
		website.KeyCustomSections: website.EncodeCustomSections(sections),
	})
	if err != nil {
		return fmt.Errorf("failed to save custom sections: %w", err)
	}
	return nil
}
