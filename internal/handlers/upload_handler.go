package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/response"
	"github.com/gravadigital/partnerships-api/internal/services"
	"github.com/gravadigital/partnerships-api/internal/storage/blob"
	"github.com/gravadigital/partnerships-api/internal/validation"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type UploadHandler struct {
	partnerships *services.PartnershipService
	blobs        blob.Store
	maxFileSize  int64
	log          *log.Logger
}

func NewUploadHandler(partnerships *services.PartnershipService, blobs blob.Store, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		partnerships: partnerships,
		blobs:        blobs,
		maxFileSize:  maxFileSize,
		log:          logger.Handler("upload"),
	}
}

// UploadScreenshot handles POST /api/partnerships/:id/publications/:itemId/screenshots
func (h *UploadHandler) UploadScreenshot(c *gin.Context) {
	partnerID := c.Param("id")
	publicationID := c.Param("itemId")
	if err := validation.ValidateID(partnerID, "id"); err != nil {
		response.FromError(c, err)
		return
	}
	if err := validation.ValidateID(publicationID, "itemId"); err != nil {
		response.FromError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.partnerships.GetPublication(ctx, partnerID, publicationID); err != nil {
		response.FromError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequestError(c, "No file provided")
		return
	}
	defer file.Close()

	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		response.BadRequestError(c, fmt.Sprintf("File size exceeds %d bytes", h.maxFileSize))
		return
	}

	contentType, err := sniffContentType(file)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !allowedImageTypes[contentType] {
		response.BadRequestError(c, "File type not allowed, expected JPEG, PNG, GIF or WebP")
		return
	}

	key := blob.ScreenshotKey(partnerID, publicationID, header.Filename)
	obj, err := h.blobs.Put(ctx, key, file, header.Size, contentType)
	if err != nil {
		h.log.Error("Failed to store screenshot", "key", key, "error", err)
		response.FromError(c, err)
		return
	}

	pub, err := h.partnerships.AddScreenshot(ctx, partnerID, publicationID, obj.URL)
	if err != nil {
		// the object is orphaned without its publication
		if delErr := h.blobs.Delete(ctx, key); delErr != nil {
			h.log.Warn("Failed to remove orphaned screenshot", "key", key, "error", delErr)
		}
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"file":        obj,
		"publication": pub,
	})
}

// sniffContentType detects the type from the file content, ignoring the
// client supplied header, and rewinds.
func sniffContentType(file multipart.File) (string, error) {
	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	return mt.String(), nil
}

// ServeFile handles GET /api/files/*key for stores without public URLs
func (h *UploadHandler) ServeFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		response.NotFoundError(c, "File not found")
		return
	}

	rc, obj, err := h.blobs.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			response.NotFoundError(c, "File not found")
			return
		}
		response.FromError(c, err)
		return
	}
	defer rc.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Header("Content-Length", strconv.FormatInt(obj.Size, 10))
	c.DataFromReader(http.StatusOK, obj.Size, contentType, rc, nil)
}
