// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"clubhub/internal/auth"
	"clubhub/internal/bookings"
	"clubhub/internal/computers"
	"clubhub/internal/live"
	"clubhub/internal/notifications"
	"clubhub/internal/payments"
	"clubhub/internal/sessions"
	"clubhub/internal/shared/config"
	"clubhub/internal/shared/database"
	"clubhub/internal/tournaments"
	"clubhub/pkg/cache"
	"clubhub/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	hub    *live.Hub
	events *notifications.Service
	log    *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, hub *live.Hub, events *notifications.Service, log *logger.Logger) *Router {
	return &Router{
		config: cfg,
		db:     db,
		hub:    hub,
		events: events,
		log:    log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var cacheService cache.Service
	if r.db.GetRedis() != nil {
		cacheService = cache.NewService(r.db.GetRedis())
	}

	gormDB := r.db.GetPostgreSQL()

	// Repositories first: the registry derives statuses from sessions and
	// reservations, so those repositories double as its sources.
	computersRepo := computers.NewRepository(gormDB)
	bookingsRepo := bookings.NewRepository(gormDB)
	sessionsRepo := sessions.NewRepository(gormDB)

	computersService := computers.NewService(computersRepo, sessionsRepo, bookingsRepo, r.hub, r.events, cacheService, r.log)

	gateway := payments.NewMockGateway()
	bookingsService := bookings.NewService(bookingsRepo, gateway, computersService, r.events, r.log)
	sessionsService := sessions.NewService(sessionsRepo, computersService, r.events, r.log)

	paymentsRepo := payments.NewRepository(gormDB)
	paymentsService := payments.NewService(paymentsRepo, gateway, r.log)

	tournamentsRepo := tournaments.NewRepository(gormDB)
	tournamentsService := tournaments.NewService(tournamentsRepo, r.events, cacheService, r.log)

	authRepo := auth.NewRepository(gormDB)
	authService := auth.NewService(authRepo, r.config)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		auth.NewRouter(auth.NewController(authService), r.config).SetupRoutes(api)
		computers.NewRouter(computers.NewController(computersService), r.config).SetupRoutes(api)
		bookings.NewRouter(bookings.NewController(bookingsService), r.config).SetupRoutes(api)
		sessions.NewRouter(sessions.NewController(sessionsService), r.config).SetupRoutes(api)
		payments.NewRouter(payments.NewController(paymentsService), r.config).SetupRoutes(api)
		tournaments.NewRouter(tournaments.NewController(tournamentsService), r.config).SetupRoutes(api)
		live.NewRouter(live.NewHandler(r.hub, r.log), r.config).SetupRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "clubhub-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "clubhub-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
