package services

import (
	"strings"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

// TreatmentResolver turns a section's style slice into its visual treatment.
type TreatmentResolver struct{}

func NewTreatmentResolver() *TreatmentResolver {
	return &TreatmentResolver{}
}

// Resolve applies the section defaults to style. It never fails: unknown
// background kinds fall back to the default color treatment, and an image
// background without an image URL does the same.
func (r *TreatmentResolver) Resolve(style website.SectionStyle, defaults website.SectionDefaults) website.VisualSlice {
	slice := website.VisualSlice{
		TextColor:      orDefault(style.TextColor, defaults.TextColor),
		Overlay:        style.Overlay,
		OverlayColor:   orDefault(style.OverlayColor, defaults.OverlayColor),
		OverlayOpacity: style.OverlayOpacity,
	}
	if !slice.Overlay {
		slice.OverlayColor = ""
		slice.OverlayOpacity = 0
	}

	switch style.Kind {
	case website.BackgroundGradient:
		slice.Kind = website.BackgroundGradient
		slice.GradientStart = orDefault(style.GradientStart, defaults.GradientStart)
		slice.GradientEnd = orDefault(style.GradientEnd, defaults.GradientEnd)
	case website.BackgroundImage:
		if strings.TrimSpace(style.ImageURL) == "" {
			slice.Kind = website.BackgroundColor
			slice.Color = orDefault(style.Color, defaults.Color)
			break
		}
		slice.Kind = website.BackgroundImage
		slice.ImageURL = style.ImageURL
		slice.Parallax = style.Parallax
	case website.BackgroundColor:
		slice.Kind = website.BackgroundColor
		slice.Color = orDefault(style.Color, defaults.Color)
	default:
		slice.Kind = website.BackgroundColor
		slice.Color = defaults.Color
	}

	return slice
}

// ResolveSection resolves a built-in section from a decoded configuration.
func (r *TreatmentResolver) ResolveSection(cfg website.Config, key website.SectionKey) website.VisualSlice {
	style, ok := cfg.Styles[key]
	defaults := website.DefaultsFor(key)
	if !ok {
		style = website.SectionStyle{
			Kind:           defaults.Kind,
			Parallax:       defaults.Parallax,
			Overlay:        defaults.Overlay,
			OverlayColor:   defaults.OverlayColor,
			OverlayOpacity: defaults.OverlayOpacity,
		}
	}
	return r.Resolve(style, defaults)
}

// ResolveCustom resolves an operator-authored section. Custom sections paint
// a solid color, or their image when positioned as background; the overlay
// only applies over a background image.
func (r *TreatmentResolver) ResolveCustom(section website.CustomSection) website.VisualSlice {
	defaults := website.SectionDefaults{
		Kind:         website.BackgroundColor,
		Color:        "#ffffff",
		TextColor:    "#000000",
		OverlayColor: "#000000",
	}
	style := website.SectionStyle{
		Kind:      website.BackgroundColor,
		Color:     section.BackgroundColor,
		TextColor: section.TextColor,
	}
	if section.ImagePosition == website.ImageBackground && section.Image != "" {
		style.Kind = website.BackgroundImage
		style.ImageURL = section.Image
		style.Parallax = section.EnableParallax
		style.Overlay = true
		style.OverlayOpacity = section.OverlayOpacity
	}
	return r.Resolve(style, defaults)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
