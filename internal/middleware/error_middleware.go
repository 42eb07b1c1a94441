package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schoolreg/internal/app/models/dto"
	"github.com/yigit/schoolreg/internal/pkg/apperrors"
	"github.com/yigit/schoolreg/internal/pkg/logger"
)

// HandleAPIError maps a service error to its HTTP status and error body.
// Store failures and unknown errors are logged and answered with a generic message.
func HandleAPIError(c *gin.Context, err error) {
	message := apperrors.Message(err)

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message).WithSeverity(dto.ErrorSeverityWarning),
		))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceConflict, message).WithSeverity(dto.ErrorSeverityWarning),
		))
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithSeverity(dto.ErrorSeverityInfo)
		if details := apperrors.DetailsOf(err); len(details) > 0 {
			detail = detail.WithDetails(details)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrStorage):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Storage failure")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, message).WithSeverity(dto.ErrorSeverityCritical),
		))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, message).WithSeverity(dto.ErrorSeverityCritical),
		))
	}
}

// Recovery turns a panic into a logged 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").WithSeverity(dto.ErrorSeverityCritical),
		))
	})
}

// NoRoute answers unknown paths with the standard error body.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found").WithSeverity(dto.ErrorSeverityInfo),
	))
}
