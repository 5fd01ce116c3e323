package services

import (
	"testing"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsentFirstVisitShowsBanner(t *testing.T) {
	svc := NewConsentService(logging.NewNopLogger())
	snap := svc.Current(storage.NewMemoryStorage())
	assert.Equal(t, website.BannerShown, snap.State)
	assert.Equal(t, website.DefaultConsent(), snap.Record)
}

func TestConsentAcceptAndRejectPersist(t *testing.T) {
	svc := NewConsentService(logging.NewNopLogger())
	kv := storage.NewMemoryStorage()

	snap, err := svc.Apply(kv, ConsentAcceptAll, website.ConsentRecord{})
	require.NoError(t, err)
	assert.Equal(t, website.BannerHidden, snap.State)
	assert.Equal(t, website.AllConsent(), snap.Record)
	assert.Equal(t, website.AllConsent(), svc.Current(kv).Record)

	_, err = svc.Apply(kv, ConsentRejectAll, website.ConsentRecord{})
	require.NoError(t, err)
	assert.Equal(t, website.DefaultConsent(), svc.Current(kv).Record)
	assert.Equal(t, website.BannerHidden, svc.Current(kv).State)
}

func TestConsentPreferencesSaveDesiredCategories(t *testing.T) {
	svc := NewConsentService(logging.NewNopLogger())
	kv := storage.NewMemoryStorage()

	snap, err := svc.Apply(kv, ConsentPreferences, website.ConsentRecord{Analytics: true, Preferences: true})
	require.NoError(t, err)
	want := website.ConsentRecord{Necessary: true, Analytics: true, Preferences: true}
	assert.Equal(t, want, snap.Record)
	assert.Equal(t, want, svc.Current(kv).Record)
}

func TestConsentToggleDoesNotPersist(t *testing.T) {
	svc := NewConsentService(logging.NewNopLogger())
	kv := storage.NewMemoryStorage()

	snap := svc.Toggle(kv, website.ConsentMarketing)
	assert.True(t, snap.Record.Marketing)
	assert.Equal(t, website.BannerShown, snap.State)

	_, ok := kv.Get(website.ConsentStorageKey)
	assert.False(t, ok)
}

func TestConsentUnknownAction(t *testing.T) {
	svc := NewConsentService(logging.NewNopLogger())
	_, err := svc.Apply(storage.NewMemoryStorage(), ConsentAction("maybe"), website.ConsentRecord{})
	assert.Error(t, err)
}
