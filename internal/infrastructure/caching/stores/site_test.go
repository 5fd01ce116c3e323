package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSiteStoreReturnsDetachedCopies(t *testing.T) {
	store := NewSiteStore(time.Hour, nil)
	site := &website.Site{Record: website.Record{"website_enabled": true}}
	store.SetSite("salon", site)

	site.Record["website_enabled"] = false

	got, ok := store.GetSite("salon")
	require.True(t, ok)
	assert.Equal(t, true, got.Record["website_enabled"])

	got.Record["website_show_team"] = true
	again, _ := store.GetSite("salon")
	_, leaked := again.Record["website_show_team"]
	assert.False(t, leaked)
}

func TestSiteStoreExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewSiteStore(time.Minute, nil)
	store.now = clock.Now

	store.SetSite("salon", &website.Site{Record: website.Record{}})
	_, ok := store.GetSite("salon")
	assert.True(t, ok)

	clock.Advance(2 * time.Minute)
	_, ok = store.GetSite("salon")
	assert.False(t, ok)

	assert.True(t, store.PurgeExpired("salon"))
	assert.False(t, store.PurgeExpired("salon"))
}

func TestSiteStoreInvalidate(t *testing.T) {
	store := NewSiteStore(time.Hour, nil)
	_, ok := store.GetSite("missing")
	assert.False(t, ok)

	store.SetSite("salon", &website.Site{Record: website.Record{}})
	store.InvalidateSite("salon")
	_, ok = store.GetSite("salon")
	assert.False(t, ok)
	assert.ElementsMatch(t, []string{"salon"}, store.TenantIDs())
}

func TestPagesStoreVariants(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewPagesStore(time.Minute)
	store.now = clock.Now

	store.SetPage("salon", "none", "<html>a</html>")
	store.SetPage("salon", "analytics", "<html>b</html>")

	html, ok := store.GetPage("salon", "analytics")
	require.True(t, ok)
	assert.Equal(t, "<html>b</html>", html)
	assert.Equal(t, 2, store.Count("salon"))

	clock.Advance(2 * time.Minute)
	store.SetPage("salon", "none", "<html>c</html>")
	assert.Equal(t, 1, store.PurgeExpired("salon"))

	store.InvalidatePages("salon")
	assert.Zero(t, store.Count("salon"))
}
