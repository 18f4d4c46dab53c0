package controller

import (
	"os"
	"path/filepath"
	"strings"

	"cyberkids_backend/internal/service"
	"cyberkids_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxVideoSize caps lesson video uploads at 200MB.
const maxVideoSize = 200 << 20

type ContentController struct {
	StorageService *service.StorageService
}

func NewContentController(storageService *service.StorageService) *ContentController {
	return &ContentController{StorageService: storageService}
}

// @Summary Upload a lesson video
// @Description Stores the file and returns its URL plus probed metadata
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param video formData file true "video file"
// @Success 201 {object} util.Response
// @Router /api/content/videos [post]
func (c *ContentController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}
	if file.Size > maxVideoSize {
		util.BadRequest(ctx, "video exceeds the size limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".mp4", ".webm", ".mov":
	default:
		util.BadRequest(ctx, "unsupported video format")
		return
	}

	// Spool to a temp file so ffprobe can inspect it before storage.
	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+ext)
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	filename := "videos/" + uuid.NewString() + ext
	contentType := file.Header.Get("Content-Type")
	asset, err := c.StorageService.SaveVideo(ctx.Request.Context(), filename, tmpPath, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, asset)
}
