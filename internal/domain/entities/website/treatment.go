package website

import (
	"fmt"
	"strconv"
	"strings"
)

// Parallax geometry for image backgrounds.
const (
	ParallaxLayerHeightPercent = 120
	ParallaxMaxTranslatePct    = 50
	GradientAngleDeg           = 180
)

// VisualSlice is the resolved background, overlay and text description of one
// section. It is recomputed from configuration and never mutated in place.
type VisualSlice struct {
	Kind           BackgroundKind `json:"kind"`
	Color          string         `json:"color,omitempty"`
	GradientStart  string         `json:"gradientStart,omitempty"`
	GradientEnd    string         `json:"gradientEnd,omitempty"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	Parallax       bool           `json:"parallax"`
	Overlay        bool           `json:"overlay"`
	OverlayColor   string         `json:"overlayColor,omitempty"`
	OverlayOpacity float64        `json:"overlayOpacity"`
	TextColor      string         `json:"textColor"`
}

// BackgroundCSS returns the CSS background declaration for the section box.
func (v VisualSlice) BackgroundCSS() string {
	switch v.Kind {
	case BackgroundGradient:
		return fmt.Sprintf("background: linear-gradient(%ddeg, %s 0%%, %s 100%%);", GradientAngleDeg, cssToken(v.GradientStart), cssToken(v.GradientEnd))
	case BackgroundImage:
		if v.Parallax {
			return "position: relative; overflow: hidden;"
		}
		return fmt.Sprintf("background-image: url(%s); background-size: cover; background-position: center;", cssURL(v.ImageURL))
	default:
		return fmt.Sprintf("background-color: %s;", cssToken(v.Color))
	}
}

// ImageLayerCSS returns the style of the scrolling image layer, or "" when the
// background is not a parallax image.
func (v VisualSlice) ImageLayerCSS() string {
	if v.Kind != BackgroundImage || !v.Parallax {
		return ""
	}
	return fmt.Sprintf(
		"position: absolute; inset: 0; height: %d%%; background-image: url(%s); background-size: cover; background-position: center; transform: translateY(calc(var(--scroll-progress, 0) * %d%%));",
		ParallaxLayerHeightPercent, cssURL(v.ImageURL), ParallaxMaxTranslatePct)
}

// ParallaxOffsetPercent maps document scroll progress in [0,1] to the image
// layer translation.
func ParallaxOffsetPercent(progress float64) float64 {
	return clampUnit(progress) * ParallaxMaxTranslatePct
}

// OverlayCSS returns the style of the overlay layer, or "" when disabled.
func (v VisualSlice) OverlayCSS() string {
	if !v.Overlay {
		return ""
	}
	return fmt.Sprintf("position: absolute; inset: 0; background-color: %s; opacity: %s;",
		cssToken(v.OverlayColor), strconv.FormatFloat(v.OverlayOpacity, 'f', -1, 64))
}

// TextCSS returns the text color declaration.
func (v VisualSlice) TextCSS() string {
	return fmt.Sprintf("color: %s;", cssToken(v.TextColor))
}

// cssURL quotes u for a url() function. Bytes that could end the quoted
// string or the declaration are percent-encoded.
func cssURL(u string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range strings.TrimSpace(u) {
		switch {
		case r <= ' ', r == 0x7f, strings.ContainsRune(`'"()\;{}<>`, r):
			fmt.Fprintf(&b, "%%%02X", r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// cssToken keeps a colour value inside its declaration.
func cssToken(v string) string {
	return strings.Map(func(r rune) rune {
		if r < ' ' || r == 0x7f || strings.ContainsRune(`;{}<>"'\`, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(v))
}
