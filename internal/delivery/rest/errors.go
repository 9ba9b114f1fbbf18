package rest

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz-bot/internal/service"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeGroupNotFound = "GROUP_NOT_FOUND"
	CodeEmptyGroup    = "EMPTY_GROUP"
	CodeInvalidScore  = "INVALID_SCORE"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeHTTP          = "HTTP_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

var errInvalidBody = errors.New("request body must be JSON with score and total")

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorHandler maps handler errors onto ErrorResponse bodies.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, status, message := classifyError(err)

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code, status, message = CodeHTTP, fiberErr.Code, fiberErr.Message
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		} else {
			logger.Debug("request rejected",
				zap.String("path", c.Path()),
				zap.String("code", code),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(ErrorResponse{
			Code:    code,
			Message: message,
			Status:  status,
		})
	}
}

// classifyError maps domain errors to error codes and HTTP status codes.
func classifyError(err error) (code string, status int, message string) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		return CodeGroupNotFound, http.StatusNotFound, "vocabulary group not found"
	case errors.Is(err, service.ErrEmptyGroup):
		return CodeEmptyGroup, http.StatusUnprocessableEntity, "vocabulary group has no words"
	case errors.Is(err, service.ErrInvalidScore):
		return CodeInvalidScore, http.StatusBadRequest, err.Error()
	case errors.Is(err, errInvalidBody):
		return CodeInvalidInput, http.StatusBadRequest, err.Error()
	default:
		return CodeInternal, http.StatusInternalServerError, "internal server error"
	}
}
