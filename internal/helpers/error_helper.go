package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidRequest           = "INVALID_REQUEST"
	CodeUnauthorized             = "UNAUTHORIZED"
	CodeNotFound                 = "NOT_FOUND"
	CodeCodeNotFound             = "CODE_NOT_FOUND"
	CodeValidation               = "VALIDATION_ERROR"
	CodeEventNameTaken           = "EVENT_NAME_TAKEN"
	CodeAlreadyCompleted         = "ALREADY_COMPLETED"
	CodeInsufficientParticipants = "INSUFFICIENT_PARTICIPANTS"
	CodeInternal                 = "PERSISTENCE_FAILURE"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, code string, customMessage string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Code:    code,
		Message: customMessage,
	})
}

// RespondWithServiceError maps a domain error onto a status and error code.
// Failures without a domain meaning are logged and reported without detail.
func RespondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, exchange.ErrCodeNotFound):
		RespondWithError(c, http.StatusNotFound, CodeCodeNotFound, "Code not found.")
	case errors.Is(err, exchange.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, exchange.ErrUnauthorized):
		RespondWithError(c, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized.")
	case errors.Is(err, exchange.ErrEventNameTaken):
		RespondWithError(c, http.StatusConflict, CodeEventNameTaken, err.Error())
	case errors.Is(err, exchange.ErrValidation):
		RespondWithError(c, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, exchange.ErrAlreadyCompleted):
		RespondWithError(c, http.StatusConflict, CodeAlreadyCompleted, err.Error())
	case errors.Is(err, exchange.ErrInsufficientParticipants):
		RespondWithError(c, http.StatusUnprocessableEntity, CodeInsufficientParticipants, err.Error())
	default:
		slog.Error("request failed",
			"component", "server",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		RespondWithError(c, http.StatusInternalServerError, CodeInternal, "Internal server error.")
	}
}
