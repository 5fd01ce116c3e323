package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

func TestResolveSectionDefaultsOnEmptyConfig(t *testing.T) {
	resolver := NewTreatmentResolver()
	cfg := website.DecodeConfig(website.Record{})

	tests := []struct {
		section website.SectionKey
		want    website.VisualSlice
	}{
		{
			section: website.SectionHero,
			want: website.VisualSlice{
				Kind: website.BackgroundGradient, GradientStart: "#0f172a", GradientEnd: "#1e293b",
				Overlay: true, OverlayColor: "#000000", OverlayOpacity: 0.5, TextColor: "#ffffff",
			},
		},
		{
			section: website.SectionAbout,
			want:    website.VisualSlice{Kind: website.BackgroundColor, Color: "#ffffff", TextColor: "#1f2937"},
		},
		{
			section: website.SectionPricing,
			want: website.VisualSlice{
				Kind: website.BackgroundGradient, GradientStart: "#ffffff", GradientEnd: "#f8fafc", TextColor: "#1f2937",
			},
		},
		{
			section: website.SectionVideo,
			want:    website.VisualSlice{Kind: website.BackgroundColor, Color: "#000000", TextColor: "#ffffff"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.section), func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.ResolveSection(cfg, tt.section))
		})
	}
}

func TestResolveUnknownKindFallsBackToDefaultColor(t *testing.T) {
	resolver := NewTreatmentResolver()
	cfg := website.DecodeConfig(website.Record{
		"website_about_bg_type":  "plaid",
		"website_about_bg_color": "#123456",
	})

	got := resolver.ResolveSection(cfg, website.SectionAbout)
	assert.Equal(t, website.BackgroundColor, got.Kind)
	assert.Equal(t, "#ffffff", got.Color)
}

func TestOverlayDoesNotChangeBackgroundBranch(t *testing.T) {
	resolver := NewTreatmentResolver()
	defaults := website.DefaultsFor(website.SectionServices)

	for _, kind := range []website.BackgroundKind{website.BackgroundColor, website.BackgroundGradient, website.BackgroundImage} {
		base := website.SectionStyle{
			Kind:          kind,
			Color:         "#111111",
			GradientStart: "#222222",
			GradientEnd:   "#333333",
			ImageURL:      "https://cdn.example.com/bg.webp",
			TextColor:     "#444444",
		}
		withOverlay := base
		withOverlay.Overlay = true
		withOverlay.OverlayColor = "#ff0000"
		withOverlay.OverlayOpacity = 0.25

		plain := resolver.Resolve(base, defaults)
		layered := resolver.Resolve(withOverlay, defaults)

		assert.Equal(t, plain.Kind, layered.Kind, "kind %s", kind)
		assert.Equal(t, plain.BackgroundCSS(), layered.BackgroundCSS(), "kind %s", kind)
		assert.Empty(t, plain.OverlayCSS())
		assert.Contains(t, layered.OverlayCSS(), "opacity: 0.25")
		assert.Equal(t, "#444444", layered.TextColor)
	}
}

func TestResolveGradientIsTopToBottom(t *testing.T) {
	resolver := NewTreatmentResolver()
	got := resolver.Resolve(website.SectionStyle{
		Kind:          website.BackgroundGradient,
		GradientStart: "#000000",
		GradientEnd:   "#ffffff",
	}, website.DefaultsFor(website.SectionAbout))

	assert.Equal(t, "background: linear-gradient(180deg, #000000 0%, #ffffff 100%);", got.BackgroundCSS())
}

func TestResolveImageParallax(t *testing.T) {
	resolver := NewTreatmentResolver()
	style := website.SectionStyle{Kind: website.BackgroundImage, ImageURL: "/media/a.webp", Parallax: true}

	got := resolver.Resolve(style, website.DefaultsFor(website.SectionGallery))
	assert.True(t, got.Parallax)
	assert.Contains(t, got.ImageLayerCSS(), "height: 120%")
	assert.InDelta(t, 0, website.ParallaxOffsetPercent(0), 1e-9)
	assert.InDelta(t, 50, website.ParallaxOffsetPercent(1), 1e-9)
	assert.InDelta(t, 50, website.ParallaxOffsetPercent(3), 1e-9)

	style.Parallax = false
	static := resolver.Resolve(style, website.DefaultsFor(website.SectionGallery))
	assert.Empty(t, static.ImageLayerCSS())
	assert.Contains(t, static.BackgroundCSS(), "url('/media/a.webp')")
}

func TestResolveImageWithoutURLUsesColor(t *testing.T) {
	resolver := NewTreatmentResolver()
	got := resolver.Resolve(website.SectionStyle{Kind: website.BackgroundImage, Color: "#abcdef"}, website.DefaultsFor(website.SectionTeam))
	assert.Equal(t, website.BackgroundColor, got.Kind)
	assert.Equal(t, "#abcdef", got.Color)
}

func TestTextColorIndependentOfKind(t *testing.T) {
	resolver := NewTreatmentResolver()
	got := resolver.Resolve(website.SectionStyle{
		Kind:      website.BackgroundImage,
		ImageURL:  "/media/dark.webp",
		TextColor: "#1f2937",
	}, website.DefaultsFor(website.SectionAbout))
	assert.Equal(t, "#1f2937", got.TextColor)
}

func TestResolveCustomSection(t *testing.T) {
	resolver := NewTreatmentResolver()

	section := website.CustomSection{ID: "s1", BackgroundColor: "#eeeeee", TextColor: "#111111", ImagePosition: website.ImageRight, Image: "/media/x.webp"}
	got := resolver.ResolveCustom(section)
	assert.Equal(t, website.BackgroundColor, got.Kind)
	assert.Equal(t, "#eeeeee", got.Color)
	assert.False(t, got.Overlay)

	section.ImagePosition = website.ImageBackground
	section.OverlayOpacity = 0.3
	got = resolver.ResolveCustom(section)
	assert.Equal(t, website.BackgroundImage, got.Kind)
	assert.True(t, got.Overlay)
	assert.InDelta(t, 0.3, got.OverlayOpacity, 1e-9)
}
