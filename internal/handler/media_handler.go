package handler

import (
	"net/http"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/adapters/storage"
	"github.com/vybhavgg-ship-it/InstaCordChat/pkg/response"

	"github.com/gin-gonic/gin"
)

// 10 MB upload cap
const maxUploadSize = 10 << 20

type MediaHandler struct {
	store *storage.MediaStore
}

func NewMediaHandler(store *storage.MediaStore) *MediaHandler {
	return &MediaHandler{store: store}
}

func (h *MediaHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/media", h.Upload)
}

// Upload stores a file in the object store and returns its URL. The
// client then references the URL in a regular send_message frame.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required")
		return
	}
	if file.Size > maxUploadSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	url, err := h.store.Upload(c.Request.Context(), file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "upload failed")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}
