package documents

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"autofill-backend/internal/shared/server/middleware"
	"autofill-backend/internal/shared/server/respond"
)

// Handler exposes document endpoints.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes attaches read and delete routes; uploads are owned by the
// extraction handler.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/documents", h.List)
	r.GET("/documents/:id", h.Get)
	r.GET("/documents/:id/image", h.Image)
	r.DELETE("/documents/:id", h.Delete)
}

type listResponse struct {
	Documents []Document `json:"documents"`
}

// List handles GET /documents.
func (h *Handler) List(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docs, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not list documents", nil)
		return
	}
	if docs == nil {
		docs = []Document{}
	}
	respond.JSON(c, http.StatusOK, listResponse{Documents: docs})
}

// Get handles GET /documents/:id.
func (h *Handler) Get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	doc, err := h.Service.Get(c.Request.Context(), userID, c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load document", nil)
		return
	}
	respond.JSON(c, http.StatusOK, doc)
}

// Image handles GET /documents/:id/image and streams the original upload.
func (h *Handler) Image(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rc, doc, err := h.Service.OpenImage(c.Request.Context(), userID, c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not open document payload", nil)
		return
	}
	defer rc.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

// Delete handles DELETE /documents/:id.
func (h *Handler) Delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	err := h.Service.Delete(c.Request.Context(), userID, c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not delete document", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
