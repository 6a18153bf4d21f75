package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autofill-backend/internal/applications"
	"autofill-backend/internal/automation"
	"autofill-backend/internal/documents"
	"autofill-backend/internal/extraction"
	"autofill-backend/internal/merge"
	"autofill-backend/internal/profiles"
	"autofill-backend/internal/shared/config"
	"autofill-backend/internal/shared/metrics"
	"autofill-backend/internal/shared/server/middleware"
	"autofill-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config             config.Config
	ProfilesHandler    *profiles.Handler
	DocumentsHandler   *documents.Handler
	ExtractionHandler  *extraction.Handler
	MergeHandler       *merge.Handler
	ApplicationHandler *applications.Handler
	AutomationHandler  *automation.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identity(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.ProfilesHandler.RegisterRoutes(api)
	deps.ExtractionHandler.RegisterRoutes(api)
	deps.DocumentsHandler.RegisterRoutes(api)
	deps.MergeHandler.RegisterRoutes(api)
	deps.ApplicationHandler.RegisterRoutes(api)
	deps.AutomationHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
