package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadPNGWritesOriginalAndVariant(t *testing.T) {
	dir := t.TempDir()
	p := NewImageProcessor(dir, "/media/", 1<<20, nil)

	url, err := p.Upload(context.Background(), "salone", repositories.UploadFile{Name: "hero.png", Data: pngBytes(t, 32, 16)}, "gallery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/salone/gallery/"), url)
	assert.True(t, strings.HasSuffix(url, ".webp"), url)

	entries, err := os.ReadDir(filepath.Join(dir, "salone", "gallery"))
	require.NoError(t, err)
	var exts []string
	for _, e := range entries {
		exts = append(exts, filepath.Ext(e.Name()))
	}
	assert.ElementsMatch(t, []string{".png", ".webp"}, exts)
}

func TestUploadSVGKeepsOriginal(t *testing.T) {
	p := NewImageProcessor(t.TempDir(), "/media", 0, nil)
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`)

	url, err := p.Upload(context.Background(), "salone", repositories.UploadFile{Name: "logo.svg", ContentType: "image/svg+xml", Data: svg}, "logos")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".svg"), url)
}

func TestUploadRejections(t *testing.T) {
	p := NewImageProcessor(t.TempDir(), "/media", 64, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		file   repositories.UploadFile
		folder string
	}{
		{"empty", repositories.UploadFile{Name: "a.png"}, "images"},
		{"not an image", repositories.UploadFile{Name: "a.txt", Data: []byte("hello world")}, "images"},
		{"too large", repositories.UploadFile{Name: "a.png", Data: bytes.Repeat([]byte{0x89}, 65)}, "images"},
		{"traversal folder", repositories.UploadFile{Name: "a.png", Data: []byte("\x89PNG\r\n\x1a\n")}, "../etc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Upload(ctx, "salone", tt.file, tt.folder)
			assert.ErrorIs(t, err, repositories.ErrInvalidImage)
		})
	}
}

func TestUploadCorruptRasterLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	p := NewImageProcessor(dir, "/media", 0, nil)
	data := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

	_, err := p.Upload(context.Background(), "salone", repositories.UploadFile{Name: "bad.png", Data: data}, "images")
	assert.ErrorIs(t, err, repositories.ErrInvalidImage)

	entries, _ := os.ReadDir(filepath.Join(dir, "salone", "images"))
	assert.Empty(t, entries)
}

func TestDeleteRemovesSiblings(t *testing.T) {
	dir := t.TempDir()
	p := NewImageProcessor(dir, "/media", 0, nil)

	url, err := p.Upload(context.Background(), "salone", repositories.UploadFile{Name: "a.png", Data: pngBytes(t, 4, 4)}, "images")
	require.NoError(t, err)
	require.NoError(t, p.Delete("salone", url))

	entries, err := os.ReadDir(filepath.Join(dir, "salone", "images"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, p.Delete("salone", "https://cdn.example.com/x.png"))
}
