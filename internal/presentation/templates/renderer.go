// Package templates renders the public site page from a page model
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/templates/elements"
)

// sectionContext is what every section template receives.
type sectionContext struct {
	Page    *services.PageModel
	Section services.SectionView
}

// HoursRow is one rendered line of the opening hours table.
type HoursRow struct {
	Day   string
	Hours string
}

var dayLabels = map[string]string{
	"monday":    "Lunedì",
	"tuesday":   "Martedì",
	"wednesday": "Mercoledì",
	"thursday":  "Giovedì",
	"friday":    "Venerdì",
	"saturday":  "Sabato",
	"sunday":    "Domenica",
}

var funcs = template.FuncMap{
	"bgStyle": func(v website.VisualSlice) template.CSS {
		return template.CSS(v.BackgroundCSS())
	},
	"layerStyle": func(v website.VisualSlice) template.CSS {
		return template.CSS(v.ImageLayerCSS())
	},
	"overlayStyle": func(v website.VisualSlice) template.CSS {
		return template.CSS(v.OverlayCSS())
	},
	"textStyle": func(v website.VisualSlice) template.CSS {
		return template.CSS(v.TextCSS())
	},
	"themeCSS": ThemeCSS,
	// structured data is produced by encoding/json, which escapes <, > and &
	"jsonLD": func(s string) template.JS {
		return template.JS(s)
	},
	"hasSection": func(sections []services.SectionView, key string) bool {
		for _, s := range sections {
			if string(s.Key) == key {
				return true
			}
		}
		return false
	},
	"sectionContext": func(page *services.PageModel, section services.SectionView) sectionContext {
		return sectionContext{Page: page, Section: section}
	},
	"stars":        Stars,
	"embedURL":     EmbedURL,
	"mapURL":       MapURL,
	"telHref":      TelHref,
	"openingHours": OpeningHours,
}

var pageTemplates = template.Must(template.New("site").Funcs(funcs).Parse(
	elements.SectionWrapper + elements.Sections + elements.Custom + elements.Document + elements.Scripts,
))

// PageRenderer turns page models into HTML documents.
type PageRenderer struct {
	tmpl *template.Template
}

func NewPageRenderer() *PageRenderer {
	return &PageRenderer{tmpl: pageTemplates}
}

// Render writes the page, or the maintenance page when the model carries one.
func (r *PageRenderer) Render(w io.Writer, page *services.PageModel) error {
	name := "page"
	if page.Maintenance != nil {
		name = "maintenance"
	}
	if err := r.tmpl.ExecuteTemplate(w, name, page); err != nil {
		return fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return nil
}

// RenderString is Render into a string, for caching.
func (r *PageRenderer) RenderString(page *services.PageModel) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Stars renders a 0-5 rating as filled and empty stars.
func Stars(rating float64) string {
	n := int(rating + 0.5)
	n = max(0, min(5, n))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// EmbedURL maps YouTube and Vimeo page links to their embeddable player
// URLs. Anything else is returned unchanged.
func EmbedURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + url.PathEscape(id)
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + url.PathEscape(id)
		}
	case "vimeo.com":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://player.vimeo.com/video/" + url.PathEscape(id)
		}
	}
	return raw
}

// MapURL is an embeddable map for a postal address.
func MapURL(address string) string {
	return "https://maps.google.com/maps?output=embed&q=" + url.QueryEscape(address)
}

// TelHref builds a tel: link keeping only dialable characters.
func TelHref(phone string) template.URL {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || (r == '+' && b.Len() == 0) {
			b.WriteRune(r)
		}
	}
	return template.URL("tel:" + b.String())
}

// OpeningHours lists configured days Monday first. Closed days read
// "Chiuso"; unknown day names are skipped.
func OpeningHours(cfg website.Config) []HoursRow {
	var rows []HoursRow
	for _, day := range cfg.OpenDays() {
		label, ok := dayLabels[strings.ToLower(day)]
		if !ok {
			continue
		}
		hours := cfg.OpeningHours[day]
		value := "Chiuso"
		if !hours.Closed && hours.Open != "" && hours.Close != "" {
			value = hours.Open + " - " + hours.Close
		}
		rows = append(rows, HoursRow{Day: label, Hours: value})
	}
	return rows
}
