package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devonxona/internal/middleware"
	"devonxona/internal/service"
)

// AttachmentHandler handles correspondence attachment endpoints.
type AttachmentHandler struct {
	attService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attService: attService}
}

// Upload handles POST /api/v1/correspondences/:id/attachments
// @Summary Upload an attachment
// @Description Upload a scanned original or supporting file (pdf, jpg, png)
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Param file formData file true "File to upload"
// @Success 201 {object} Response{data=domain.Attachment} "Attachment uploaded"
// @Failure 400 {object} ErrorResponseBody "Unsupported file type"
// @Failure 404 {object} ErrorResponseBody "Correspondence not found"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /correspondences/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}
	corrID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	defer file.Close()

	att, err := h.attService.Upload(c.Request.Context(), service.AttachmentUploadInput{
		CorrespondenceID: corrID,
		UploadedBy:       userID,
		File:             file,
		Header:           header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, att)
}

// List handles GET /api/v1/correspondences/:id/attachments
// @Summary List attachments
// @Tags attachments
// @Produce json
// @Param id path string true "Correspondence ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Attachment} "Attachment list"
// @Security BearerAuth
// @Router /correspondences/{id}/attachments [get]
func (h *AttachmentHandler) List(c *gin.Context) {
	corrID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.attService.ListByCorrespondence(c.Request.Context(), corrID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, items)
}

// DownloadURL handles GET /api/v1/attachments/:id/download
// @Summary Get a presigned download URL
// @Tags attachments
// @Produce json
// @Param id path string true "Attachment ID (UUID)"
// @Success 200 {object} Response{data=DownloadURLResponse} "Presigned URL"
// @Failure 404 {object} ErrorResponseBody "Attachment not found"
// @Security BearerAuth
// @Router /attachments/{id}/download [get]
func (h *AttachmentHandler) DownloadURL(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.attService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DownloadURLResponse{URL: url})
}

// Delete handles DELETE /api/v1/attachments/:id
// @Summary Delete an attachment
// @Tags attachments
// @Produce json
// @Param id path string true "Attachment ID (UUID)"
// @Success 200 {object} Response "Attachment deleted"
// @Failure 404 {object} ErrorResponseBody "Attachment not found"
// @Security BearerAuth
// @Router /attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.attService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
