package services

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
)

// ConsentStore is the cookie-consent state machine for one visitor.
//
// Unknown moves to Shown or Hidden on Init. AcceptAll, RejectAll and
// SavePreferences persist and hide the banner; Toggle only edits the
// in-memory record. Storage failures are logged and swallowed.
type ConsentStore struct {
	mu      sync.Mutex
	storage repositories.KeyValueStorage
	logger  *slog.Logger
	state   website.BannerState
	record  website.ConsentRecord
}

func NewConsentStore(storage repositories.KeyValueStorage, logger *slog.Logger) *ConsentStore {
	return &ConsentStore{
		storage: storage,
		logger:  logger,
		state:   website.BannerUnknown,
		record:  website.DefaultConsent(),
	}
}

// Init reads the persisted record. Absent or corrupt values show the banner
// with defaults; a parseable value hides it.
func (s *ConsentStore) Init() website.BannerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.storage.Get(website.ConsentStorageKey)
	if !ok {
		s.record = website.DefaultConsent()
		s.state = website.BannerShown
		return s.state
	}

	record, err := ParseConsent(raw)
	if err != nil {
		if s.logger != nil {
			s.logger.Debug("Discarding unreadable consent record", "error", err)
		}
		s.record = website.DefaultConsent()
		s.state = website.BannerShown
		return s.state
	}

	s.record = record
	s.state = website.BannerHidden
	return s.state
}

// State returns the banner state.
func (s *ConsentStore) State() website.BannerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Record returns a copy of the in-memory record.
func (s *ConsentStore) Record() website.ConsentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

func (s *ConsentStore) AcceptAll() website.ConsentRecord {
	return s.commit(website.AllConsent())
}

func (s *ConsentStore) RejectAll() website.ConsentRecord {
	return s.commit(website.DefaultConsent())
}

// SavePreferences persists whatever toggles are currently set.
func (s *ConsentStore) SavePreferences() website.ConsentRecord {
	s.mu.Lock()
	current := s.record
	s.mu.Unlock()
	return s.commit(current)
}

// Toggle flips one optional category in memory. Toggling necessary, or an
// unknown category, is a no-op.
func (s *ConsentStore) Toggle(category website.ConsentCategory) website.ConsentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch category {
	case website.ConsentAnalytics:
		s.record.Analytics = !s.record.Analytics
	case website.ConsentMarketing:
		s.record.Marketing = !s.record.Marketing
	case website.ConsentPreferences:
		s.record.Preferences = !s.record.Preferences
	}
	return s.record
}

func (s *ConsentStore) commit(record website.ConsentRecord) website.ConsentRecord {
	record.Necessary = true

	s.mu.Lock()
	s.record = record
	s.state = website.BannerHidden
	s.mu.Unlock()

	raw, err := json.Marshal(record)
	if err == nil {
		err = s.storage.Set(website.ConsentStorageKey, string(raw))
	}
	if err != nil && s.logger != nil {
		s.logger.Warn("Failed to persist consent record", "error", err)
	}
	return record
}

var errConsentNotObject = errors.New("consent record is not a JSON object")

// ParseConsent decodes a stored record. Anything other than a JSON object
// with boolean fields is rejected.
func ParseConsent(raw string) (website.ConsentRecord, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return website.ConsentRecord{}, errConsentNotObject
	}
	var record website.ConsentRecord
	if err := json.Unmarshal([]byte(trimmed), &record); err != nil {
		return website.ConsentRecord{}, err
	}
	record.Necessary = true
	return record, nil
}
