package handlers

import (
	"plant_monitor/internal/logger"
	"plant_monitor/internal/metrics"
	"plant_monitor/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services, logging and metrics.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics.Metrics
	opts     Options
}

// Options carries the optional collaborators of a Handler.
type Options struct {
	// Metrics may be nil; nothing is recorded then.
	Metrics *metrics.Metrics
	// MaxMessageBytes caps inbound websocket frames; zero uses maxMsgSize.
	MaxMessageBytes int64
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.MaxMessageBytes <= 0 {
		opts.MaxMessageBytes = maxMsgSize
	}
	return &Handler{services: services, log: log, metrics: opts.Metrics, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// System endpoints
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Interactive department view (HTTP upgrade) — same port
	router.GET("/ws/sites/:siteID/departments/:depID", h.wsDepartmentView)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerSiteRoutes(api)
	}
}

func (h *Handler) registerSiteRoutes(api *gin.RouterGroup) {
	sites := api.Group("/sites")
	{
		sites.GET("", h.listSites)
		sites.GET("/:siteID", h.getSite)
		// Query example: ?search=presse&sort=uptime
		sites.GET("/:siteID/departments/:depID", h.getDepartment)
		sites.GET("/:siteID/departments/:depID/export", h.exportDepartment)
		sites.GET("/:siteID/departments/:depID/machines/:machineID", h.getMachine)
	}
}
