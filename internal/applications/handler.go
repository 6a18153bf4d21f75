package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autofill-backend/internal/shared/server/middleware"
	"autofill-backend/internal/shared/server/respond"
)

// Handler exposes application endpoints.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes attaches application routes to the group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/applications", h.List)
	r.GET("/applications/:id", h.Get)
}

type listResponse struct {
	Applications []Application `json:"applications"`
}

// List handles GET /applications.
func (h *Handler) List(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	apps, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not list applications", nil)
		return
	}
	if apps == nil {
		apps = []Application{}
	}
	respond.JSON(c, http.StatusOK, listResponse{Applications: apps})
}

// Get handles GET /applications/:id.
func (h *Handler) Get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	app, err := h.Service.Get(c.Request.Context(), userID, c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load application", nil)
		return
	}
	respond.JSON(c, http.StatusOK, app)
}
