package sessions

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

// StartSession godoc
// @Summary Start a session on a computer (desk operation)
// @Tags sessions
// @Router /admin/sessions [post]
func (c *Controller) StartSession(ctx *gin.Context) {
	adminID, ok := authedUserID(ctx)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	session, err := c.service.Start(ctx.Request.Context(), adminID, &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondCreated(ctx, "Session started successfully", session)
}

func (c *Controller) EndSession(ctx *gin.Context) {
	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, nil)
		return
	}

	session, err := c.service.End(ctx.Request.Context(), sessionID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Session ended successfully", session)
}

func (c *Controller) InterruptSession(ctx *gin.Context) {
	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, nil)
		return
	}

	var req InterruptSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := c.service.Interrupt(ctx.Request.Context(), sessionID, &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Session interrupted successfully", session)
}

func (c *Controller) GetActiveSessions(ctx *gin.Context) {
	sessions, err := c.service.ListActive(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Active sessions retrieved successfully", sessions)
}

func (c *Controller) GetMySessions(ctx *gin.Context) {
	userID, ok := authedUserID(ctx)
	if !ok {
		return
	}

	sessions, err := c.service.ListMy(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Sessions retrieved successfully", sessions)
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
