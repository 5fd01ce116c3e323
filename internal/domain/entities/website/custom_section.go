package website

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ImagePosition places a custom section's image relative to its text.
type ImagePosition string

const (
	ImageLeft       ImagePosition = "left"
	ImageRight      ImagePosition = "right"
	ImageBackground ImagePosition = "background"
)

// CustomSection is an operator-authored block merged into the section list.
type CustomSection struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	MenuLabel       string        `json:"menuLabel"`
	Content         string        `json:"content"`
	Visible         bool          `json:"visible"`
	Order           int           `json:"order"`
	BackgroundColor string        `json:"backgroundColor"`
	TextColor       string        `json:"textColor"`
	Image           string        `json:"image"`
	ImagePosition   ImagePosition `json:"imagePosition"`
	OverlayOpacity  float64       `json:"overlayOpacity"`
	EnableParallax  bool          `json:"enableParallax"`
}

// NavLabel is the menu label, falling back to the title.
func (s CustomSection) NavLabel() string {
	if strings.TrimSpace(s.MenuLabel) != "" {
		return s.MenuLabel
	}
	return s.Title
}

var (
	ErrSectionNotFound    = errors.New("custom section not found")
	ErrFieldNotAssignable = errors.New("field cannot be assigned")
	ErrUnknownField       = errors.New("unknown custom section field")
)

// NewCustomSection builds the section the editor adds, with a
// timestamp-derived id and order equal to the current list length.
func NewCustomSection(now time.Time, position int) CustomSection {
	return CustomSection{
		ID:              fmt.Sprintf("section-%d", now.UnixMilli()),
		Title:           "Nuova Sezione",
		Content:         "Contenuto della sezione...",
		Visible:         true,
		MenuLabel:       "Menu",
		Order:           position,
		BackgroundColor: "#ffffff",
		TextColor:       "#000000",
		Image:           "",
		ImagePosition:   ImageRight,
		OverlayOpacity:  0.5,
		EnableParallax:  false,
	}
}

// DecodeCustomSections reads the stored array. Entries that are not objects
// or carry no id are skipped and counted, never fabricated. Negative order
// values are raised to zero so custom sections stay after the built-ins.
func DecodeCustomSections(raw []any) ([]CustomSection, int) {
	out := make([]CustomSection, 0, len(raw))
	skipped := 0
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			skipped++
			continue
		}
		r := Record(m)
		id := r.OptionalString("id")
		if strings.TrimSpace(id) == "" {
			skipped++
			continue
		}
		out = append(out, CustomSection{
			ID:              id,
			Title:           r.OptionalString("title"),
			MenuLabel:       r.OptionalString("menuLabel"),
			Content:         r.OptionalString("content"),
			Visible:         r.Bool("visible", false),
			Order:           max(r.Int("order", len(out)), 0),
			BackgroundColor: r.String("backgroundColor", "#ffffff"),
			TextColor:       r.String("textColor", "#000000"),
			Image:           r.OptionalString("image"),
			ImagePosition:   decodeImagePosition(r.OptionalString("imagePosition")),
			OverlayOpacity:  clampUnit(r.Float("overlayOpacity", 0.5)),
			EnableParallax:  r.Bool("enableParallax", false),
		})
	}
	return out, skipped
}

func decodeImagePosition(v string) ImagePosition {
	switch p := ImagePosition(v); p {
	case ImageLeft, ImageBackground:
		return p
	}
	return ImageRight
}

// CustomSections is the ordered list the editor manipulates.
type CustomSections []CustomSection

// IndexOf returns the position of id or -1.
func (cs CustomSections) IndexOf(id string) int {
	for i := range cs {
		if cs[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends a fresh section and returns the new list and the section.
func (cs CustomSections) Add(now time.Time) (CustomSections, CustomSection) {
	section := NewCustomSection(now, len(cs))
	out := append(cs.clone(), section)
	return out, section
}

// UpdateField replaces one field of the section identified by id. The id and
// order fields are not assignable: order is always derived from position.
func (cs CustomSections) UpdateField(id, field string, value any) (CustomSections, error) {
	idx := cs.IndexOf(id)
	if idx < 0 {
		return nil, ErrSectionNotFound
	}
	if field == "id" || field == "order" {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotAssignable, field)
	}

	raw, err := json.Marshal(cs[idx])
	if err != nil {
		return nil, fmt.Errorf("failed to encode section: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode section: %w", err)
	}
	if _, known := m[field]; !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	m[field] = value

	updated, _ := DecodeCustomSections([]any{m})
	if len(updated) != 1 {
		return nil, fmt.Errorf("invalid value for field %s", field)
	}
	out := cs.clone()
	out[idx] = updated[0]
	return out, nil
}

// Remove splices the section out. Remaining order values are left as they are.
func (cs CustomSections) Remove(id string) (CustomSections, error) {
	idx := cs.IndexOf(id)
	if idx < 0 {
		return nil, ErrSectionNotFound
	}
	out := make(CustomSections, 0, len(cs)-1)
	out = append(out, cs[:idx]...)
	return append(out, cs[idx+1:]...), nil
}

// MoveDirection is the adjacent swap direction.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// Move swaps the section with its neighbour in direction, then rewrites
// every item's order to its resulting index. Moving past either end swaps
// nothing but still re-derives order.
func (cs CustomSections) Move(id string, dir MoveDirection) (CustomSections, error) {
	idx := cs.IndexOf(id)
	if idx < 0 {
		return nil, ErrSectionNotFound
	}
	out := cs.clone()
	switch dir {
	case MoveUp:
		if idx > 0 {
			out[idx-1], out[idx] = out[idx], out[idx-1]
		}
	case MoveDown:
		if idx < len(out)-1 {
			out[idx], out[idx+1] = out[idx+1], out[idx]
		}
	default:
		return nil, fmt.Errorf("invalid move direction %q", dir)
	}
	for i := range out {
		out[i].Order = i
	}
	return out, nil
}

func (cs CustomSections) clone() CustomSections {
	out := make(CustomSections, len(cs))
	copy(out, cs)
	return out
}
