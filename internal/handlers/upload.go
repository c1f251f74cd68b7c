// internal/handlers/upload.go
package handlers

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/letmemugyou/backend/internal/models"
	"github.com/letmemugyou/backend/internal/services"
	"github.com/letmemugyou/backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
	logoService    *services.LogoService
}

func NewUploadHandler(storageService *services.StorageService, logoService *services.LogoService) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
		logoService:    logoService,
	}
}

var modeSuffixes = map[models.LogoMode]string{
	models.LogoModeMonochrome:        "_bw",
	models.LogoModeTransparent:       "_trans",
	models.LogoModeBackgroundRemoved: "_nobg",
}

// POST /api/upload-logo
func (h *UploadHandler) UploadLogo(c *gin.Context) {
	header, err := c.FormFile("logo")
	if err != nil {
		utils.BadRequestResponse(c, "No logo file provided", nil)
		return
	}

	mode := models.LogoMode(c.DefaultPostForm("mode", string(models.LogoModeMonochrome)))
	if !mode.Valid() {
		utils.BadRequestResponse(c, fmt.Sprintf("Unknown processing mode %q", mode), nil)
		return
	}

	ext, err := h.storageService.ValidateUpload(header)
	if err != nil {
		h.uploadError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read upload")
		return
	}
	defer file.Close()

	// Client filenames are never trusted; storage names are random.
	baseName := strings.ReplaceAll(uuid.New().String(), "-", "")
	originalName := baseName + ext

	if _, err := h.storageService.SaveUpload(file, originalName); err != nil {
		utils.InternalErrorResponse(c, "Failed to store upload")
		return
	}

	outExt := ".png"
	if ext == ".svg" {
		outExt = ".svg"
	}
	processedName := baseName + modeSuffixes[mode] + outExt

	width, height, err := h.logoService.Process(
		h.storageService.PathFor(originalName),
		h.storageService.PathFor(processedName),
		mode,
	)
	if err != nil {
		h.storageService.Remove(originalName)
		logrus.WithError(err).WithField("filename", header.Filename).Warn("Logo processing failed")
		if errors.Is(err, services.ErrProcessingFailed) {
			utils.BadRequestResponse(c, "Could not process the uploaded image", nil)
			return
		}
		utils.InternalErrorResponse(c, "Logo processing failed")
		return
	}

	go h.storageService.MirrorToS3(originalName, contentTypeFor(ext))
	go h.storageService.MirrorToS3(processedName, contentTypeFor(outExt))

	utils.SuccessResponse(c, gin.H{
		"filename":     processedName,
		"original":     originalName,
		"url":          h.storageService.URLFor(processedName),
		"original_url": h.storageService.URLFor(originalName),
		"mode":         mode,
		"width":        width,
		"height":       height,
	})
}

func (h *UploadHandler) uploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFileTypeNotAllowed):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrFileTooLarge):
		utils.ErrorResponse(c, 413, "FILE_TOO_LARGE", err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, "Upload failed")
	}
}

func contentTypeFor(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
