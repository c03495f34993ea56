package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// OKResponse writes {"success":true,<field>:payload}.
func OKResponse(c echo.Context, field string, payload interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		field:     payload,
	})
}

// FailResponse writes {"success":false,"error":message} with the given status.
func FailResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// BadRequestResponse writes a 400 failure from validation details.
func BadRequestResponse(c echo.Context, details interface{}) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"error":   "invalid request",
		"details": details,
	})
}

// AppErrorResponse maps an error to a failure envelope. AppError carries its
// own status; everything else becomes a 500 with the error message embedded.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return FailResponse(c, appErr.Status, appErr.Message)
	}
	return FailResponse(c, http.StatusInternalServerError, err.Error())
}
