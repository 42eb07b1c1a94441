package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schoolreg/internal/app/models/dto"
)

// ParseIDParam reads an int64 path parameter. On failure it writes a
// 400 response and returns false.
func ParseIDParam(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID").
			WithField(name).
			WithSeverity(dto.ErrorSeverityInfo).
			WithDetails(map[string]interface{}{name: label + " ID must be a valid number"})
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// BindJSON decodes the request body into obj. On failure it writes a 400
// response and returns false. Field rules are checked later by the services.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithSeverity(dto.ErrorSeverityInfo).
			WithDetails(map[string]interface{}{"body": err.Error()})
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}
