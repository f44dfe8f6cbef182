package handlers

import (
	"mindful_companion/internal/logger"
	"mindful_companion/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	router.GET("/resources", h.listResources)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Live breathing display; browsers cannot set headers on upgrade requests.
	router.GET("/ws/breathing", h.streamAuthMiddleware, h.breathingStream)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		auth.POST("/anonymous", h.signInAnonymous)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerBreathingRoutes(api)
		h.registerCheckInRoutes(api)
		h.registerJournalRoutes(api)
		h.registerProfileRoutes(api)
		h.registerActivityRoutes(api)
	}
}

func (h *Handler) registerBreathingRoutes(api *gin.RouterGroup) {
	b := api.Group("/breathing")
	{
		b.GET("/state", h.breathingState)
		b.GET("/pattern", h.breathingPattern)
		b.POST("/start", h.startBreathing)
		b.POST("/stop", h.stopBreathing)
		b.POST("/reset", h.resetBreathing)
		// Body example: {"seconds":300}
		b.PUT("/duration", h.setBreathingDuration)
	}
}

func (h *Handler) registerCheckInRoutes(api *gin.RouterGroup) {
	checkIns := api.Group("/checkins")
	{
		checkIns.POST("", h.createCheckIn)
		checkIns.GET("", h.listCheckIns)
		checkIns.GET("/trend", h.moodTrend)
	}
}

func (h *Handler) registerJournalRoutes(api *gin.RouterGroup) {
	journal := api.Group("/journal")
	{
		journal.POST("", h.createJournalEntry)
		journal.GET("", h.listJournalEntries)
	}
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	profile := api.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PUT("", h.setDisplayName)
		profile.POST("/link", h.linkCredentials)
	}
}

func (h *Handler) registerActivityRoutes(api *gin.RouterGroup) {
	api.GET("/activity", h.listActivity)
}
