package bookings

import (
	"clubhub/internal/shared/config"
	"clubhub/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers reservation routes. Everything except the
// availability check requires authentication.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.GET("/availability", r.controller.CheckAvailability)

		protected := bookings.Group("")
		protected.Use(middleware.JWTAuthWithConfig(r.config))
		{
			protected.POST("", r.controller.CreateReservation)
			protected.GET("/my", r.controller.GetMyReservations)
			protected.GET("/my/active", r.controller.GetMyActiveReservations)
			protected.GET("/:id", r.controller.GetReservation)
			protected.POST("/:id/pay", r.controller.PayReservation)
			protected.POST("/:id/cancel", r.controller.CancelReservation)
		}
	}
}
