package merge

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autofill-backend/internal/documents"
	"autofill-backend/internal/profiles"
	"autofill-backend/internal/shared/server/middleware"
	"autofill-backend/internal/shared/server/respond"
)

// Handler exposes the merged-data preview endpoint.
type Handler struct {
	Profiles  *profiles.Service
	Documents *documents.Service
}

func NewHandler(profs *profiles.Service, docs *documents.Service) *Handler {
	return &Handler{Profiles: profs, Documents: docs}
}

// RegisterRoutes attaches the merged-data preview route to the group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/merged", h.Preview)
}

type previewResponse struct {
	DocumentID string `json:"documentId,omitempty"`
	Data       Data   `json:"data"`
}

// Preview handles GET /merged. An optional ?documentId selects a specific
// document; otherwise the latest upload is used, and a profile with no
// uploads previews from the profile alone.
func (h *Handler) Preview(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	ctx := c.Request.Context()

	profile, err := h.Profiles.Get(ctx, userID)
	switch {
	case errors.Is(err, profiles.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load profile", nil)
		return
	}

	var doc documents.Document
	if documentID := c.Query("documentId"); documentID != "" {
		doc, err = h.Documents.Get(ctx, userID, documentID)
		if errors.Is(err, documents.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
	} else {
		doc, err = h.Documents.Latest(ctx, userID)
		if errors.Is(err, documents.ErrNotFound) {
			err = nil
		}
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load document", nil)
		return
	}

	respond.JSON(c, http.StatusOK, previewResponse{
		DocumentID: doc.ID,
		Data:       Build(profile, doc),
	})
}
