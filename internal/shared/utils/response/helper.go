package response

import (
	"net/http"

	"clubhub/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondOK writes a success envelope with 200.
func RespondOK(c *gin.Context, message string, data interface{}) {
	RespondJSON(c, "success", http.StatusOK, message, data, nil)
}

// RespondCreated writes a success envelope with 201.
func RespondCreated(c *gin.Context, message string, data interface{}) {
	RespondJSON(c, "success", http.StatusCreated, message, data, nil)
}

// RespondError maps a service error to its HTTP status and stable kind.
// Unclassified errors become a generic 500 so storage details never leak.
func RespondError(c *gin.Context, err error) {
	RespondJSON(c, "error", apperr.HTTPStatus(err), apperr.MessageOf(err),
		nil, map[string]interface{}{"kind": apperr.KindOf(err)})
}
