package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sereci/sirepre/internal/infrastructure/storage"
)

// MediaHandler serves stored documents by key, whatever the backend.
type MediaHandler struct {
	BaseHandler
	documents storage.DocumentStorage
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(documents storage.DocumentStorage) *MediaHandler {
	return &MediaHandler{documents: documents}
}

// Serve streams the document named by the *key wildcard.
func (h *MediaHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if storage.ValidKey(key) != nil {
		h.NotFound(c, "Archivo no encontrado")
		return
	}
	body, err := h.documents.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			h.NotFound(c, "Archivo no encontrado")
			return
		}
		h.HandleError(c, err)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "private, max-age=300")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}
