package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/partnerships-api/internal/config"
	"github.com/gravadigital/partnerships-api/internal/handlers"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/metrics"
	"github.com/gravadigital/partnerships-api/internal/middleware/requestlog"
	"github.com/gravadigital/partnerships-api/internal/services"
	"github.com/gravadigital/partnerships-api/internal/storage"
	"github.com/gravadigital/partnerships-api/internal/storage/blob"
)

// FilesPrefix is where blobs are served when the store has no public URL
const FilesPrefix = "/api/files"

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	container  storage.Container
	services   *services.Services
	blobs      blob.Store
	metrics    *metrics.Metrics
}

// New creates a new server instance. metrics may be nil.
func New(cfg *config.Config, container storage.Container, svc *services.Services, blobs blob.Store, m *metrics.Metrics) *Server {
	return &Server{
		config:    cfg,
		container: container,
		services:  svc,
		blobs:     blobs,
		metrics:   m,
	}
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: s.Router(),

		// uploads and whole-workbook exports need the longer write window
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Router configures the HTTP router with middleware and routes
func (s *Server) Router() *gin.Engine {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if s.config.Server.GinMode != "" {
		gin.SetMode(s.config.Server.GinMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = s.config.Upload.MaxFileSize

	router.Use(requestlog.New(logger.HTTP()))
	router.Use(gin.Recovery())
	if s.metrics != nil {
		router.Use(s.metrics.Middleware())
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.config.CORS.AllowOrigins
	corsConfig.AllowMethods = s.config.CORS.AllowMethods
	corsConfig.AllowHeaders = s.config.CORS.AllowHeaders
	corsConfig.ExposeHeaders = []string{"Content-Disposition", requestlog.HeaderRequestID}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/ping", s.ping)
	if s.metrics != nil && s.config.Metrics.Enabled {
		router.GET(s.config.Metrics.Path, gin.WrapH(s.metrics.Handler()))
	}

	var observer handlers.SyncObserver
	if s.metrics != nil {
		observer = s.metrics
	}

	s.setupAPIRoutes(router,
		handlers.NewPartnershipHandler(s.services.Partnerships),
		handlers.NewGlobalEventHandler(s.services.GlobalEvents, observer),
		handlers.NewUploadHandler(s.services.Partnerships, s.blobs, s.config.Upload.MaxFileSize),
		handlers.NewExportHandler(s.services.Partnerships, s.services.GlobalEvents),
		handlers.NewRecycleBinHandler(s.services.RecycleBin),
	)
	return router
}

func (s *Server) ping(c *gin.Context) {
	if err := s.container.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message": "Storage is unavailable",
			"status":  "unhealthy",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Partnerships API is running",
		"status":  "healthy",
		"storage": s.config.Storage.Type,
		"blob":    s.blobs.Driver(),
	})
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(
	router *gin.Engine,
	partnerships *handlers.PartnershipHandler,
	globalEvents *handlers.GlobalEventHandler,
	uploads *handlers.UploadHandler,
	exports *handlers.ExportHandler,
	bin *handlers.RecycleBinHandler,
) {
	api := router.Group("/api")
	{
		p := api.Group("/partnerships")
		{
			p.GET("", partnerships.ListPartnerships)
			p.POST("", partnerships.CreatePartnership)
			p.GET("/:id", partnerships.GetPartnership)
			p.PATCH("/:id", partnerships.UpdatePartner)
			p.DELETE("/:id", partnerships.SoftDeletePartner)
			p.POST("/:id/restore", partnerships.RestorePartner)
			p.DELETE("/:id/permanent", partnerships.PermanentlyDeletePartner)
			p.GET("/:id/export.xlsx", exports.PartnershipWorkbook)

			p.PUT("/:id/:collection", partnerships.ReplaceCollection)
			p.POST("/:id/:collection", partnerships.SaveItem)
			p.DELETE("/:id/:collection/:itemId", partnerships.SoftDeleteItem)
			p.POST("/:id/:collection/:itemId/restore", partnerships.RestoreItem)
			p.DELETE("/:id/:collection/:itemId/permanent", partnerships.PurgeItem)
			p.POST("/:id/publications/:itemId/screenshots", uploads.UploadScreenshot)
		}

		ge := api.Group("/global-events")
		{
			ge.GET("", globalEvents.List)
			ge.POST("", globalEvents.Create)
			ge.GET("/:id", globalEvents.Get)
			ge.PATCH("/:id", globalEvents.UpdateDetails)
			ge.PUT("/:id/invitations", globalEvents.UpdateInvitations)
			ge.DELETE("/:id", globalEvents.SoftDelete)
			ge.POST("/:id/restore", globalEvents.Restore)
			ge.DELETE("/:id/permanent", globalEvents.PermanentlyDelete)
		}

		lw := api.Group("/lightweight-partners")
		{
			lw.GET("", globalEvents.ListLightweight)
			lw.POST("", globalEvents.CreateLightweight)
		}

		rb := api.Group("/recycle-bin")
		{
			rb.GET("", bin.List)
			rb.DELETE("", bin.Empty)
		}

		ex := api.Group("/exports")
		{
			ex.GET("/partnerships.xlsx", exports.AllWorkbook)
			ex.GET("/partnerships.csv", exports.AllCSV)
		}

		api.GET("/files/*key", uploads.ServeFile)
	}
}
