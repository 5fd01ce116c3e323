package services

import (
	"fmt"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	domainservices "github.com/AtRiskMedia/sitecraft-go/internal/domain/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

// ConsentAction is a banner button.
type ConsentAction string

const (
	ConsentAcceptAll   ConsentAction = "accept-all"
	ConsentRejectAll   ConsentAction = "reject-all"
	ConsentPreferences ConsentAction = "preferences"
)

// ConsentSnapshot is the banner state after an operation.
type ConsentSnapshot struct {
	State  website.BannerState   `json:"state"`
	Record website.ConsentRecord `json:"record"`
}

// ConsentService runs the consent state machine against a visitor's storage.
type ConsentService struct {
	logger *logging.ChanneledLogger
}

func NewConsentService(logger *logging.ChanneledLogger) *ConsentService {
	return &ConsentService{logger: logger}
}

// Open initialises a store from storage.
func (s *ConsentService) Open(storage repositories.KeyValueStorage) *domainservices.ConsentStore {
	store := domainservices.NewConsentStore(storage, s.logger.Consent())
	store.Init()
	return store
}

// Current reports the persisted state.
func (s *ConsentService) Current(storage repositories.KeyValueStorage) ConsentSnapshot {
	store := s.Open(storage)
	return ConsentSnapshot{State: store.State(), Record: store.Record()}
}

// Apply performs a banner action. For ConsentPreferences, desired holds the
// requested optional categories; each differing one is toggled before
// saving.
func (s *ConsentService) Apply(storage repositories.KeyValueStorage, action ConsentAction, desired website.ConsentRecord) (ConsentSnapshot, error) {
	store := s.Open(storage)

	var record website.ConsentRecord
	switch action {
	case ConsentAcceptAll:
		record = store.AcceptAll()
	case ConsentRejectAll:
		record = store.RejectAll()
	case ConsentPreferences:
		current := store.Record()
		for _, c := range []website.ConsentCategory{website.ConsentAnalytics, website.ConsentMarketing, website.ConsentPreferences} {
			if current.Allows(c) != desired.Allows(c) {
				store.Toggle(c)
			}
		}
		record = store.SavePreferences()
	default:
		return ConsentSnapshot{}, fmt.Errorf("unknown consent action %q", action)
	}

	s.logger.Consent().Debug("Consent updated", "action", action,
		"analytics", record.Analytics, "marketing", record.Marketing, "preferences", record.Preferences)
	return ConsentSnapshot{State: store.State(), Record: record}, nil
}

// Toggle flips one category on top of the persisted record without saving.
func (s *ConsentService) Toggle(storage repositories.KeyValueStorage, category website.ConsentCategory) ConsentSnapshot {
	store := s.Open(storage)
	record := store.Toggle(category)
	return ConsentSnapshot{State: store.State(), Record: record}
}
