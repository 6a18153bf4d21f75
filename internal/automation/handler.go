package automation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autofill-backend/internal/profiles"
	"autofill-backend/internal/shared/server/middleware"
	"autofill-backend/internal/shared/server/respond"
)

// Handler exposes the automation run endpoint.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes attaches the run route to the group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/automation/runs", h.Start)
}

// Start handles POST /automation/runs. The run is synchronous; the response
// arrives when the walk finishes or fails.
func (h *Handler) Start(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	result, err := h.Service.Run(c.Request.Context(), userID)
	var runErr *RunError
	switch {
	case errors.Is(err, ErrRunInProgress):
		respond.Error(c, http.StatusConflict, "run_in_progress", "an automation run for this form is already active", nil)
		return
	case errors.Is(err, profiles.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		return
	case errors.As(err, &runErr):
		status := http.StatusBadGateway
		if runErr.Kind == KindSubmission {
			status = http.StatusInternalServerError
		}
		if runErr.Kind == KindCancelled {
			status = http.StatusGatewayTimeout
		}
		respond.Error(c, status, string(runErr.Kind), runErr.Error(), map[string]any{
			"stage": string(runErr.Stage),
			"field": runErr.Field,
		})
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "automation run failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, result)
}
