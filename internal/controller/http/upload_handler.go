package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"socialblaster/internal/media"
	"socialblaster/pkg/logger"

	"github.com/gin-gonic/gin"
)

// maxUploadSize caps uploads at 100MB.
const maxUploadSize = 100 << 20

// allowedMediaTypes gates uploads by extension and MIME type, same set for
// both: images and short videos only.
var allowedMediaTypes = []string{"jpeg", "jpg", "png", "gif", "mp4", "mov", "avi"}

type UploadHandler struct {
	store  media.Store
	logger *logger.Logger
}

func NewUploadHandler(store media.Store, logger *logger.Logger) *UploadHandler {
	return &UploadHandler{store: store, logger: logger}
}

// Upload godoc
// @Summary      Upload a media file
// @Description  Accepts one image or video file up to 100MB and returns its URL
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Media file (jpeg/jpg/png/gif/mp4/mov/avi)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 100MB limit"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedMediaType(fileHeader.Filename, contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only images and videos are allowed"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	url, err := h.store.Save(fileHeader.Filename, src, contentType)
	if err != nil {
		h.logger.Error("upload failed for %s: %v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":          url,
		"originalName": fileHeader.Filename,
		"size":         fileHeader.Size,
	})
}

func allowedMediaType(filename, contentType string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	extOK, mimeOK := false, false
	for _, allowed := range allowedMediaTypes {
		if ext == allowed {
			extOK = true
		}
		if strings.Contains(strings.ToLower(contentType), allowed) {
			mimeOK = true
		}
	}
	// "video/quicktime" is the registered MIME type for .mov files
	if strings.EqualFold(contentType, "video/quicktime") {
		mimeOK = true
	}
	return extOK && mimeOK
}
