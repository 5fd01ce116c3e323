package services

import (
	"testing"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSectionService() *CustomSectionService {
	svc := NewCustomSectionService(newTestConfigService(nil))
	fixed := time.UnixMilli(1700000000123)
	svc.now = func() time.Time { return fixed }
	return svc
}

func TestCustomSectionLifecycle(t *testing.T) {
	tenant := newFakeTenant("salone")
	tenant.seed(website.Organization{ID: "salone", Name: "Salone Rosa"}, website.Record{})
	svc := newTestSectionService()

	first, err := svc.Add(tenant)
	require.NoError(t, err)
	assert.Equal(t, "section-1700000000123", first.ID)

	// same clock: the second id must not collide
	second, err := svc.Add(tenant)
	require.NoError(t, err)
	assert.Equal(t, "section-1700000000124", second.ID)
	assert.Equal(t, 1, second.Order)

	updated, err := svc.UpdateField(tenant, second.ID, "title", "Promozioni")
	require.NoError(t, err)
	assert.Equal(t, "Promozioni", updated.Title)

	moved, err := svc.Move(tenant, second.ID, website.MoveUp)
	require.NoError(t, err)
	require.Len(t, moved, 2)
	assert.Equal(t, second.ID, moved[0].ID)
	for i, s := range moved {
		assert.Equal(t, i, s.Order)
	}

	require.NoError(t, svc.Remove(tenant, first.ID))
	list, err := svc.List(tenant)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Promozioni", list[0].Title)
}

func TestCustomSectionErrors(t *testing.T) {
	tenant := newFakeTenant("salone")
	tenant.seed(website.Organization{ID: "salone", Name: "Salone Rosa"}, website.Record{})
	svc := newTestSectionService()

	_, err := svc.UpdateField(tenant, "missing", "title", "x")
	assert.ErrorIs(t, err, website.ErrSectionNotFound)

	added, err := svc.Add(tenant)
	require.NoError(t, err)
	_, err = svc.UpdateField(tenant, added.ID, "order", 5)
	assert.ErrorIs(t, err, website.ErrFieldNotAssignable)

	assert.ErrorIs(t, svc.Remove(tenant, "missing"), website.ErrSectionNotFound)
	saves := tenant.sites.saves
	_, err = svc.Move(tenant, "missing", website.MoveDown)
	assert.ErrorIs(t, err, website.ErrSectionNotFound)
	assert.Equal(t, saves, tenant.sites.saves)
}
