package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/plantstore/backend/internal/application/catalog"
)

// ImageHandler handles product image endpoints. Staff only. Binary
// uploads go straight to object storage through presigned URLs; the
// API only records object keys.
type ImageHandler struct {
	BaseHandler
	imageService *catalogapp.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageService *catalogapp.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// InitiateUpload handles POST /products/:slug/images.
func (h *ImageHandler) InitiateUpload(c *gin.Context) {
	var req catalogapp.InitiateImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.imageService.InitiateUpload(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// SetMain handles POST /products/:slug/images/:id/main.
func (h *ImageHandler) SetMain(c *gin.Context) {
	imageID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	if err := h.imageService.SetMain(c.Request.Context(), c.Param("slug"), imageID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete handles DELETE /products/:slug/images/:id.
func (h *ImageHandler) Delete(c *gin.Context) {
	imageID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), c.Param("slug"), imageID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
