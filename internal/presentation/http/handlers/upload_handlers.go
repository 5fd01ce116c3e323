package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

// UploadHandlers accepts admin media uploads
type UploadHandlers struct {
	uploadService *services.UploadService
	maxBytes      int64
	logger        *logging.ChanneledLogger
}

func NewUploadHandlers(uploadService *services.UploadService, maxBytes int64, logger *logging.ChanneledLogger) *UploadHandlers {
	return &UploadHandlers{uploadService: uploadService, maxBytes: maxBytes, logger: logger}
}

// PostUpload handles POST /api/v1/admin/upload - multipart "file", with
// optional "folder" and "field" form values
func (h *UploadHandlers) PostUpload(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if h.maxBytes > 0 && header.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, h.logger.Media(), t.ID(), err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, h.logger.Media(), t.ID(), err)
		return
	}

	file := repositories.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	folder := c.DefaultPostForm("folder", "images")
	field := c.PostForm("field")

	url, err := h.uploadService.Upload(c.Request.Context(), t, file, folder, field)
	if err != nil {
		respondError(c, h.logger.Media(), t.ID(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "field": field})
}
