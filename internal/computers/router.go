package computers

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

// SetupRoutes registers registry routes. Browsing is public; management is
// admin-only.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/computers")
	{
		public.GET("", r.controller.GetComputers)
		public.GET("/available", r.controller.GetAvailableComputers)
		public.GET("/hall-scheme", r.controller.GetHallScheme)
		public.GET("/:id", r.controller.GetComputer)
	}

	admin := rg.Group("/admin/computers")
	admin.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
	{
		admin.POST("", r.controller.CreateComputer)
		admin.PUT("/:id", r.controller.UpdateComputer)
		admin.DELETE("/:id", r.controller.DeactivateComputer)
		admin.PATCH("/:id/status", r.controller.SetComputerStatus)
	}
}
