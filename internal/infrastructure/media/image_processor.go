// Package media stores uploaded site images on local disk.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/security"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// VariantWidth is the maximum width of the generated webp variant.
const VariantWidth = 1600

var supportedTypes = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// ImageProcessor writes uploads under <basePath>/<tenant>/<folder>/ and
// serves them from <urlPath>/<tenant>/<folder>/.
type ImageProcessor struct {
	basePath string
	urlPath  string
	maxBytes int64
	logger   *slog.Logger
	now      func() time.Time
}

// NewImageProcessor creates a new ImageProcessor instance
func NewImageProcessor(basePath, urlPath string, maxBytes int64, logger *slog.Logger) *ImageProcessor {
	return &ImageProcessor{
		basePath: basePath,
		urlPath:  strings.TrimSuffix(urlPath, "/"),
		maxBytes: maxBytes,
		logger:   logger,
		now:      time.Now,
	}
}

var _ repositories.Uploader = (*ImageProcessor)(nil)

// Upload validates the payload, stores the original and, for raster
// images, a webp variant next to it. The returned URL points at the
// variant when one was produced.
func (p *ImageProcessor) Upload(ctx context.Context, tenantID string, file repositories.UploadFile, folder string) (string, error) {
	start := p.now()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if folder == "" {
		folder = "images"
	}
	if !folderPattern.MatchString(folder) || !folderPattern.MatchString(tenantID) {
		return "", fmt.Errorf("%w: invalid upload folder %q", repositories.ErrInvalidImage, folder)
	}
	if len(file.Data) == 0 {
		return "", fmt.Errorf("%w: empty file", repositories.ErrInvalidImage)
	}
	if p.maxBytes > 0 && int64(len(file.Data)) > p.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", repositories.ErrInvalidImage, p.maxBytes)
	}

	contentType := detectContentType(file)
	ext, ok := supportedTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported type %s", repositories.ErrInvalidImage, contentType)
	}

	targetDir := filepath.Join(p.basePath, tenantID, folder)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	base := strings.ToLower(security.GenerateULIDAt(start))
	filename := fmt.Sprintf("%s.%s", base, ext)
	originalPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(originalPath, file.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write original image: %w", err)
	}

	publicName := filename
	if ext != "svg" && ext != "webp" {
		variant, err := p.writeVariant(file.Data, targetDir, base)
		if err != nil {
			os.Remove(originalPath)
			return "", err
		}
		publicName = variant
	}

	url := path.Join(p.urlPath, tenantID, folder, publicName)
	if p.logger != nil {
		p.logger.Info("Image uploaded", "tenantId", tenantID, "folder", folder,
			"url", url, "bytes", len(file.Data), "duration", p.now().Sub(start))
	}
	return url, nil
}

// Delete removes a previously uploaded file and its sibling variant. URLs
// outside this processor's tree are ignored.
func (p *ImageProcessor) Delete(tenantID, url string) error {
	prefix := path.Join(p.urlPath, tenantID) + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	rel := strings.TrimPrefix(url, prefix)
	if strings.Contains(rel, "..") {
		return fmt.Errorf("invalid media path %q", url)
	}
	full := filepath.Join(p.basePath, tenantID, filepath.FromSlash(rel))
	stem := strings.TrimSuffix(full, filepath.Ext(full))

	matches, err := filepath.Glob(stem + ".*")
	if err != nil {
		return fmt.Errorf("failed to list media files: %w", err)
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", filepath.Base(m), err)
		}
	}
	return nil
}

func (p *ImageProcessor) writeVariant(data []byte, targetDir, base string) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: failed to decode image: %v", repositories.ErrInvalidImage, err)
	}

	var resized image.Image = img
	if img.Bounds().Dx() > VariantWidth {
		resized = imaging.Resize(img, VariantWidth, 0, imaging.Lanczos)
	}

	name := base + ".webp"
	if err := webp.Save(filepath.Join(targetDir, name), resized, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to save webp variant: %w", err)
	}
	return name, nil
}

// detectContentType sniffs the payload. SVG is text, so the declared type
// and file extension are consulted for it.
func detectContentType(file repositories.UploadFile) string {
	sniffed := http.DetectContentType(file.Data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	declared := strings.ToLower(strings.TrimSpace(strings.Split(file.ContentType, ";")[0]))
	isSVG := declared == "image/svg+xml" || strings.EqualFold(filepath.Ext(file.Name), ".svg")
	if isSVG && bytes.Contains(bytes.ToLower(file.Data[:min(len(file.Data), 1024)]), []byte("<svg")) {
		return "image/svg+xml"
	}
	return sniffed
}
