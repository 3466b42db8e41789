package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Created sends a 201 response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error sends an error response. AppErrors are written as they are, bare
// domain sentinels get their canonical status, anything else is a 500 whose
// cause is logged and never returned.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	writeError(c, appErr.Status, appErr.Code, appErr.Message)
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	writeError(c, status, code, message)
}

// Abort writes err and stops the handler chain
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
		"error":   message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("resource already exists")
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrBadRequest):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.Unauthorized("invalid email or password")
	case errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.Unauthorized("token has expired")
	case errors.Is(err, domainerrors.ErrAccountInactive):
		return domainerrors.Unauthorized("account is inactive")
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("unauthorized")
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("forbidden")
	case errors.Is(err, domainerrors.ErrInvalidTransition):
		return domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeInvalidTransition, "invalid status transition", err)
	case errors.Is(err, domainerrors.ErrTooLarge):
		return domainerrors.TooLarge("payload too large")
	case errors.Is(err, domainerrors.ErrFeatureDisabled):
		return domainerrors.Unavailable("feature disabled")
	}
	return domainerrors.InternalError(err)
}
