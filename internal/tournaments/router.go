package tournaments

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

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/tournaments")
	{
		public.GET("", r.controller.GetTournaments)
		public.GET("/upcoming", r.controller.GetUpcomingTournaments)
		public.GET("/:id", r.controller.GetTournament)
	}

	protected := rg.Group("/tournaments")
	protected.Use(middleware.JWTAuthWithConfig(r.config))
	{
		protected.POST("/:id/register", r.controller.Register)
		protected.GET("/my/registrations", r.controller.GetMyRegistrations)
	}

	admin := rg.Group("/admin/tournaments")
	admin.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
	{
		admin.POST("", r.controller.CreateTournament)
		admin.PATCH("/:id/status", r.controller.UpdateTournamentStatus)
	}
}
