package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/pkg/logger"
)

type APIResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    interface{}            `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendError(c *gin.Context, statusCode int, message string, err error) {
	response := APIResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	c.JSON(statusCode, response)
}

func SendValidationError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message, nil)
}

func SendUnauthorized(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, message, nil)
}

func SendForbidden(c *gin.Context, message string) {
	SendError(c, http.StatusForbidden, message, nil)
}

var kindStatus = map[apperr.Kind]int{
	apperr.KindUnauthenticated: http.StatusUnauthorized,
	apperr.KindForbidden:       http.StatusForbidden,
	apperr.KindValidation:      http.StatusBadRequest,
	apperr.KindNotFound:        http.StatusNotFound,
	apperr.KindConflict:        http.StatusConflict,
	apperr.KindInternal:        http.StatusInternalServerError,
}

// SendAppError maps an application error to its HTTP status and renders the
// caller-safe summary and detail. Internal causes are logged, never exposed.
func SendAppError(c *gin.Context, err error) {
	appErr := apperr.From(err)
	status, ok := kindStatus[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if appErr.Kind == apperr.KindInternal {
		logger.WithFields(map[string]interface{}{
			"path":   c.FullPath(),
			"detail": appErr.Detail,
		}).Error(appErr.Unwrap())
	}

	c.JSON(status, APIResponse{
		Success: false,
		Message: appErr.Message,
		Error:   appErr.Detail,
		Fields:  appErr.Fields,
	})
}
