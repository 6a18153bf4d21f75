package extraction

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autofill-backend/internal/llm"
	"autofill-backend/internal/profiles"
	"autofill-backend/internal/recognize"
	"autofill-backend/internal/shared/server/middleware"
	"autofill-backend/internal/shared/server/respond"
)

// Handler exposes the document upload endpoint.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes attaches the upload route to the group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/documents", h.Upload)
}

// Upload handles POST /documents (multipart form, field "file").
func (h *Handler) Upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "no_file", "multipart field 'file' is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "no_file", "could not read uploaded file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Service.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	var malformed *llm.MalformedOutputError
	var linkErr *ProfileLinkError
	switch {
	case errors.Is(err, ErrNoFile):
		respond.Error(c, http.StatusBadRequest, "no_file", "uploaded file is empty", nil)
		return
	case errors.Is(err, ErrMissingOwner):
		respond.Error(c, http.StatusUnauthorized, "missing_identity", "no user identity on request", nil)
		return
	case errors.Is(err, profiles.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		return
	case errors.Is(err, recognize.ErrUnsupportedType):
		respond.Error(c, http.StatusBadRequest, "unsupported_type", "only images and PDFs are accepted", nil)
		return
	case errors.Is(err, recognize.ErrUnavailable), errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "upstream_unavailable", "a required upstream service is unavailable, try again later", nil)
		return
	case errors.As(err, &malformed):
		respond.Error(c, http.StatusBadGateway, "malformed_extraction", "the extraction service returned unusable output", nil)
		return
	case errors.As(err, &linkErr):
		respond.Error(c, http.StatusInternalServerError, "profile_link_failed", "document stored but could not be linked to the profile", gin.H{"documentId": linkErr.DocumentID})
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not process document", nil)
		return
	}
	respond.Created(c, doc)
}
