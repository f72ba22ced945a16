package computers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

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

// GetComputers godoc
// @Summary List computers with derived statuses
// @Tags computers
// @Produce json
// @Success 200 {object} response.StandardApiResponse
// @Router /computers [get]
func (c *Controller) GetComputers(ctx *gin.Context) {
	includeInactive := ctx.Query("include_inactive") == "true"

	computers, err := c.service.List(ctx.Request.Context(), includeInactive)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Computers retrieved successfully", computers)
}

func (c *Controller) GetComputer(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid computer ID", nil, nil)
		return
	}

	computer, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Computer retrieved successfully", computer)
}

func (c *Controller) CreateComputer(ctx *gin.Context) {
	var req CreateComputerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	computer, err := c.service.Create(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondCreated(ctx, "Computer created successfully", computer)
}

func (c *Controller) UpdateComputer(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid computer ID", nil, nil)
		return
	}

	var req UpdateComputerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	computer, err := c.service.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Computer updated successfully", computer)
}

func (c *Controller) DeactivateComputer(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid computer ID", nil, nil)
		return
	}

	if err := c.service.Deactivate(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Computer deactivated successfully", nil)
}

func (c *Controller) SetComputerStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid computer ID", nil, nil)
		return
	}

	var req SetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	computer, err := c.service.SetStatus(ctx.Request.Context(), id, &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Computer status updated successfully", computer)
}

// GetAvailableComputers godoc
// @Summary List computers free over a time window
// @Tags computers
// @Param start_time query string true "RFC3339 window start"
// @Param end_time query string true "RFC3339 window end"
// @Router /computers/available [get]
func (c *Controller) GetAvailableComputers(ctx *gin.Context) {
	var query AvailabilityQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	computers, err := c.service.Available(ctx.Request.Context(), query.StartTime, query.EndTime)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Available computers retrieved successfully", computers)
}

func (c *Controller) GetHallScheme(ctx *gin.Context) {
	scheme, err := c.service.HallScheme(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Hall scheme retrieved successfully", scheme)
}
