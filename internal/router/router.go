package router

import (
	"github.com/gin-gonic/gin"

	"imidok/internal/config"
	"imidok/internal/handler"
	"imidok/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	extractH *handler.ExtractHandler,
	jobH *handler.JobHandler,
	layoutH *handler.LayoutHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Extraction routes
	extract := v1.Group("/extract")
	extract.POST("", extractH.Extract)
	extract.POST("/classify", extractH.Classify)
	extract.POST("/bulk", extractH.BulkExtract)
	extract.POST("/rename", extractH.Rename)

	// Layout catalog
	v1.GET("/layouts", layoutH.List)

	// Job history (absent when the database is disabled)
	if jobH != nil {
		jobs := v1.Group("/jobs")
		jobs.GET("", jobH.List)
		jobs.GET("/:id", jobH.Get)
		jobs.GET("/:id/artifact", jobH.DownloadArtifact)
		jobs.DELETE("/:id", jobH.Delete)
	}

	return r
}
