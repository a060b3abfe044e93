package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snehagupta9582883065/recent-api/internal/application/media"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/dto"
)

// UploadHandler handles image uploads to object storage
type UploadHandler struct {
	BaseHandler
	imageService *media.ImageService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(imageService *media.ImageService) *UploadHandler {
	return &UploadHandler{
		imageService: imageService,
	}
}

// UploadImage handles POST /uploads/images (multipart "file" plus optional "folder")
//
// @Summary      Upload an image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image"
// @Param        folder formData string false "Target folder"
// @Success      201 {object} dto.Response{data=media.UploadedImage}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /uploads/images [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	var form dto.ImageUploadForm
	if !h.BindForm(c, &form) {
		return
	}
	if form.Folder == "" {
		form.Folder = media.FolderProducts
	}

	data, filename, ok := h.readUpload(c, "file", h.imageService.MaxSize())
	if !ok {
		return
	}

	image, err := h.imageService.Upload(c.Request.Context(), form.Folder, filename, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, image)
}

// DeleteImage handles DELETE /uploads/images/*public_id
//
// @Summary      Delete an uploaded image
// @Tags         uploads
// @Produce      json
// @Param        public_id path string true "Public ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /uploads/images/{public_id} [delete]
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	publicID := strings.TrimPrefix(c.Param("public_id"), "/")
	if publicID == "" {
		h.BadRequest(c, "public_id is required")
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), publicID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// readUpload reads the multipart file field into memory, refusing more than maxSize bytes
func (h *BaseHandler) readUpload(c *gin.Context, field string, maxSize int64) ([]byte, string, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		h.BadRequest(c, field+" is required")
		return nil, "", false
	}
	defer file.Close()

	tooLarge := fmt.Sprintf("File exceeds maximum size of %d bytes", maxSize)
	if maxSize > 0 && header.Size > maxSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeFileTooLarge, tooLarge)
		return nil, "", false
	}

	var r io.Reader = file
	if maxSize > 0 {
		r = io.LimitReader(file, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		h.BadRequest(c, "Failed to read "+field)
		return nil, "", false
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeFileTooLarge, tooLarge)
		return nil, "", false
	}

	return data, header.Filename, true
}
