package server

import (
	"net/http"
	"time"

	"github.com/airgo3d/panorama-api/internal/blob"
	"github.com/airgo3d/panorama-api/internal/config"
	"github.com/airgo3d/panorama-api/internal/logger"
	"github.com/airgo3d/panorama-api/internal/metrics"
	"github.com/airgo3d/panorama-api/internal/panorama"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config          config.Config
	DB              *pgxpool.Pool
	Blobs           blob.Store
	PanoramaService *panorama.Service
	Logger          *zap.Logger
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware(deps.Logger))
	router.Use(metrics.Middleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{deps.Config.Server.CORSOrigin},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "AirGo3D Backend API",
			"api":     "/v1",
		})
	})

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	if deps.PanoramaService != nil {
		api := router.Group("/v1")
		panorama.RegisterRoutes(api, deps.PanoramaService)

		images := router.Group("/api")
		panorama.RegisterImageRoutes(images, deps.PanoramaService)
	}

	return router
}
