package payments

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
	balance := rg.Group("/balance")
	balance.Use(middleware.JWTAuthWithConfig(r.config))
	{
		balance.GET("", r.controller.GetBalance)
		balance.POST("/top-up", r.controller.TopUp)
	}

	payments := rg.Group("/payments")
	payments.Use(middleware.JWTAuthWithConfig(r.config))
	{
		payments.GET("/my", r.controller.GetHistory)
	}
}
