package sessions

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

// SetupRoutes registers session routes. Lifecycle operations are desk
// operations and require the admin role.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	my := rg.Group("/sessions")
	my.Use(middleware.JWTAuthWithConfig(r.config))
	{
		my.GET("/my", r.controller.GetMySessions)
	}

	admin := rg.Group("/admin/sessions")
	admin.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
	{
		admin.POST("", r.controller.StartSession)
		admin.GET("/active", r.controller.GetActiveSessions)
		admin.POST("/:id/end", r.controller.EndSession)
		admin.POST("/:id/interrupt", r.controller.InterruptSession)
	}
}
