package website

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSections() CustomSections {
	return CustomSections{
		{ID: "a", Title: "A", Order: 0, Visible: true},
		{ID: "b", Title: "B", Order: 1, Visible: true},
		{ID: "c", Title: "C", Order: 2, Visible: false},
	}
}

func TestAddCustomSection(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	list, added := sampleSections().Add(now)

	require.Len(t, list, 4)
	assert.Equal(t, "section-1700000000123", added.ID)
	assert.Equal(t, "Nuova Sezione", added.Title)
	assert.Equal(t, "Contenuto della sezione...", added.Content)
	assert.Equal(t, "Menu", added.MenuLabel)
	assert.Equal(t, 3, added.Order)
	assert.True(t, added.Visible)
	assert.Equal(t, ImageRight, added.ImagePosition)
	assert.InDelta(t, 0.5, added.OverlayOpacity, 1e-9)
	assert.False(t, added.EnableParallax)
	assert.Equal(t, added, list[3])
}

func TestMoveRederivesOrder(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		dir     MoveDirection
		wantIDs []string
	}{
		{name: "up", id: "b", dir: MoveUp, wantIDs: []string{"b", "a", "c"}},
		{name: "down", id: "a", dir: MoveDown, wantIDs: []string{"b", "a", "c"}},
		{name: "up at top", id: "a", dir: MoveUp, wantIDs: []string{"a", "b", "c"}},
		{name: "down at bottom", id: "c", dir: MoveDown, wantIDs: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := sampleSections()
			start[0].Order = 7 // drifted order is repaired by any move

			moved, err := start.Move(tt.id, tt.dir)
			require.NoError(t, err)

			var ids []string
			for i, s := range moved {
				ids = append(ids, s.ID)
				assert.Equal(t, i, s.Order)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, 7, start[0].Order, "input must not be mutated")
		})
	}
}

func TestMoveErrors(t *testing.T) {
	_, err := sampleSections().Move("missing", MoveUp)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	_, err = sampleSections().Move("a", MoveDirection("sideways"))
	assert.Error(t, err)
}

func TestRemoveSplices(t *testing.T) {
	out, err := sampleSections().Remove("b")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
	assert.Equal(t, 2, out[1].Order)

	_, err = out.Remove("b")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestUpdateField(t *testing.T) {
	list := sampleSections()

	out, err := list.UpdateField("a", "title", "Il nostro studio")
	require.NoError(t, err)
	assert.Equal(t, "Il nostro studio", out[0].Title)
	assert.Equal(t, "A", list[0].Title)

	out, err = out.UpdateField("c", "visible", true)
	require.NoError(t, err)
	assert.True(t, out[2].Visible)

	out, err = out.UpdateField("a", "imagePosition", "background")
	require.NoError(t, err)
	assert.Equal(t, ImageBackground, out[0].ImagePosition)

	_, err = out.UpdateField("a", "order", 9)
	assert.ErrorIs(t, err, ErrFieldNotAssignable)
	_, err = out.UpdateField("a", "id", "z")
	assert.ErrorIs(t, err, ErrFieldNotAssignable)
	_, err = out.UpdateField("a", "colour", "#fff")
	assert.ErrorIs(t, err, ErrUnknownField)
	_, err = out.UpdateField("nope", "title", "x")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestDecodeCustomSectionsSkipsMalformed(t *testing.T) {
	sections, skipped := DecodeCustomSections([]any{
		map[string]any{"id": "ok", "title": "Ok", "visible": true, "order": float64(2)},
		map[string]any{"title": "missing id"},
		map[string]any{"id": "   "},
		42,
	})
	require.Len(t, sections, 1)
	assert.Equal(t, 3, skipped)
	assert.Equal(t, "ok", sections[0].ID)
	assert.Equal(t, 2, sections[0].Order)
	assert.Equal(t, "#ffffff", sections[0].BackgroundColor)
}

func TestEncodeCustomSectionsRoundTrip(t *testing.T) {
	encoded := EncodeCustomSections(sampleSections())
	decoded, skipped := DecodeCustomSections(encoded)
	assert.Zero(t, skipped)
	require.Len(t, decoded, 3)
	assert.Equal(t, "b", decoded[1].ID)
	assert.False(t, decoded[2].Visible)
}

func TestDecodeCustomSectionsClampsNegativeOrder(t *testing.T) {
	sections, skipped := DecodeCustomSections([]any{
		map[string]any{"id": "early", "title": "Early", "visible": true, "order": float64(-150)},
		map[string]any{"id": "late", "title": "Late", "visible": true, "order": float64(3)},
	})
	assert.Zero(t, skipped)
	require.Len(t, sections, 2)
	assert.Equal(t, 0, sections[0].Order)
	assert.Equal(t, 3, sections[1].Order)
}
