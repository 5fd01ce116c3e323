package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

func composeRecord(r website.Record) website.Composition {
	return NewSectionComposer().Compose(website.DecodeConfig(r))
}

func TestComposeDefaultNavigation(t *testing.T) {
	got := composeRecord(website.Record{})

	want := []website.NavigationItem{
		{Label: "Home", TargetID: "hero", Order: 0, Visible: true},
		{Label: "Chi Siamo", TargetID: "about", Order: 1, Visible: true},
		{Label: "Gallery", TargetID: "gallery", Order: 3, Visible: true},
		{Label: "Programma Fedeltà", TargetID: "loyalty", Order: 4, Visible: true},
		{Label: "Recensioni", TargetID: "testimonials", Order: 5, Visible: true},
		{Label: "Contatti", TargetID: "contact", Order: 999, Visible: true},
	}
	if diff := cmp.Diff(want, got.Navigation); diff != "" {
		t.Errorf("navigation mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"hero", "about", "gallery", "loyalty", "testimonials", "contact"}, targets(got.Sections))
}

func TestComposeIsIdempotent(t *testing.T) {
	record := website.Record{
		website.KeyServices: []any{map[string]any{"title": "Taglio"}},
		website.KeyCustomSections: []any{
			map[string]any{"id": "b", "title": "B", "visible": true, "order": 1},
			map[string]any{"id": "a", "title": "A", "visible": true, "order": 0},
		},
	}
	cfg := website.DecodeConfig(record)
	composer := NewSectionComposer()

	first := composer.Compose(cfg)
	second := composer.Compose(cfg)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("compose not idempotent (-first +second):\n%s", diff)
	}
}

func TestComposeServicesRequireData(t *testing.T) {
	got := composeRecord(website.Record{
		"website_show_services": true,
		website.KeyServices:     []any{},
	})
	assert.NotContains(t, got.TargetIDs(), "services")
	assert.False(t, got.HasSection(website.SectionServices))

	got = composeRecord(website.Record{
		"website_show_services": true,
		website.KeyServices:     []any{map[string]any{"title": "Colore", "icon": "Palette"}},
	})
	assert.Contains(t, got.TargetIDs(), "services")
	assert.True(t, got.HasSection(website.SectionServices))
}

func TestComposePricingRequiresCategories(t *testing.T) {
	got := composeRecord(website.Record{"website_show_pricing": true})
	assert.NotContains(t, got.TargetIDs(), "pricing")

	got = composeRecord(website.Record{
		"website_show_pricing":     true,
		website.KeyPriceCategories: []any{map[string]any{"id": "c1", "name": "Capelli", "items": []any{}}},
	})
	assert.Contains(t, got.TargetIDs(), "pricing")
	assert.True(t, got.HasSection(website.SectionPricing))
}

func TestComposeCustomSectionsOrdering(t *testing.T) {
	got := composeRecord(website.Record{
		website.KeyCustomSections: []any{
			map[string]any{"id": "late", "title": "Late", "visible": true, "order": 5},
			map[string]any{"id": "early", "title": "Early", "menuLabel": "Prima", "visible": true, "order": 0},
			map[string]any{"title": "no id", "visible": true, "order": 1},
			"garbage",
		},
	})

	want := []string{"hero", "about", "gallery", "loyalty", "testimonials", "custom-early", "custom-late", "contact"}
	require.Equal(t, want, got.TargetIDs())
	assert.Equal(t, "Prima", got.Navigation[5].Label)
	assert.Equal(t, 100, got.Navigation[5].Order)
	assert.Equal(t, "Late", got.Navigation[6].Label)
	assert.Equal(t, 105, got.Navigation[6].Order)

	assert.Equal(t, want, targets(got.Sections))
	require.NotNil(t, got.Sections[5].Custom)
	assert.Equal(t, "early", got.Sections[5].Custom.ID)
}

func TestComposeHiddenCustomSectionRestoresPosition(t *testing.T) {
	sections := []any{
		map[string]any{"id": "one", "title": "One", "visible": true, "order": 0},
		map[string]any{"id": "two", "title": "Two", "visible": false, "order": 1},
		map[string]any{"id": "three", "title": "Three", "visible": true, "order": 2},
	}
	hidden := composeRecord(website.Record{website.KeyCustomSections: sections})
	assert.NotContains(t, hidden.TargetIDs(), "custom-two")
	assert.NotContains(t, targets(hidden.Sections), "custom-two")

	sections[1].(map[string]any)["visible"] = true
	shown := composeRecord(website.Record{website.KeyCustomSections: sections})
	assert.Equal(t, []string{"hero", "about", "gallery", "loyalty", "testimonials", "custom-one", "custom-two", "custom-three", "contact"}, shown.TargetIDs())
}

func TestComposeHeroToggleOnlyAffectsBody(t *testing.T) {
	got := composeRecord(website.Record{
		"website_show_hero": false, "website_show_about": false, "website_show_loyalty": false,
		"website_show_gallery": false, "website_show_testimonials": false,
	})
	assert.Equal(t, []string{"hero", "contact"}, got.TargetIDs())
	assert.Equal(t, []string{"contact"}, targets(got.Sections))
}

func TestComposeToggleAloneListsUngatedSections(t *testing.T) {
	got := composeRecord(website.Record{
		"website_show_gallery":      true,
		"website_show_testimonials": true,
		"website_show_team":         true,
		"website_show_video":        true,
	})
	want := []string{"hero", "about", "gallery", "loyalty", "testimonials", "team", "video", "contact"}
	assert.Equal(t, want, got.TargetIDs())
	assert.Equal(t, want, targets(got.Sections))

	got = composeRecord(website.Record{"website_show_gallery": false, "website_show_team": false})
	assert.NotContains(t, got.TargetIDs(), "gallery")
	assert.NotContains(t, got.TargetIDs(), "team")
}

func targets(sections []website.SectionDescriptor) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.TargetID
	}
	return out
}

func TestComposeNegativeCustomOrderStaysAfterBuiltins(t *testing.T) {
	got := composeRecord(website.Record{
		"website_show_pricing": true,
		website.KeyPriceCategories: []any{
			map[string]any{"name": "Taglio", "items": []any{map[string]any{"name": "Donna", "price": "30"}}},
		},
		website.KeyCustomSections: []any{
			map[string]any{"id": "sneaky", "title": "Sneaky", "visible": true, "order": -150},
		},
	})

	ids := got.TargetIDs()
	require.Equal(t, "hero", ids[0])
	require.Equal(t, []string{"custom-sneaky", "contact"}, ids[len(ids)-2:])
	assert.Contains(t, ids, "pricing")
	assert.Equal(t, ids, targets(got.Sections))
	assert.Equal(t, website.CustomOrderOffset, got.Navigation[len(got.Navigation)-2].Order)
}
