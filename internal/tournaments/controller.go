package tournaments

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"clubhub/internal/shared/middleware"
	"clubhub/internal/shared/utils/response"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) GetTournaments(ctx *gin.Context) {
	tournaments, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondOK(ctx, "Tournaments retrieved successfully", tournaments)
}

func (c *Controller) GetUpcomingTournaments(ctx *gin.Context) {
	tournaments, err := c.service.ListUpcoming(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondOK(ctx, "Upcoming tournaments retrieved successfully", tournaments)
}

func (c *Controller) GetTournament(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tournament ID", nil, nil)
		return
	}

	tournament, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondOK(ctx, "Tournament retrieved successfully", tournament)
}

func (c *Controller) CreateTournament(ctx *gin.Context) {
	var req CreateTournamentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	tournament, err := c.service.Create(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondCreated(ctx, "Tournament created successfully", tournament)
}

func (c *Controller) UpdateTournamentStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tournament ID", nil, nil)
		return
	}

	var req UpdateTournamentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	tournament, err := c.service.UpdateStatus(ctx.Request.Context(), id, &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondOK(ctx, "Tournament status updated successfully", tournament)
}

func (c *Controller) Register(ctx *gin.Context) {
	userID, ok := authedUserID(ctx)
	if !ok {
		return
	}

	tournamentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tournament ID", nil, nil)
		return
	}

	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	registration, err := c.service.Register(ctx.Request.Context(), tournamentID, userID, &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondCreated(ctx, "Registered for tournament successfully", registration)
}

func (c *Controller) GetMyRegistrations(ctx *gin.Context) {
	userID, ok := authedUserID(ctx)
	if !ok {
		return
	}

	registrations, err := c.service.MyRegistrations(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondOK(ctx, "Registrations retrieved successfully", registrations)
}

func authedUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}
