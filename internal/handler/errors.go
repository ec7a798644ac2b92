package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

// errorFor maps an operation error to its HTTP status and error code.
func errorFor(err error) (int, string) {
	var verr models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, models.ErrOutOfRange):
		return http.StatusBadRequest, "out_of_range"
	case errors.Is(err, models.ErrUnreachable):
		return http.StatusNotFound, "unreachable"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, models.ErrDuplicateKey):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, models.ErrCapacityExceeded):
		return http.StatusConflict, "capacity_exceeded"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func respondError(c echo.Context, err error) error {
	status, code := errorFor(err)
	return c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: err.Error(),
		Code:    status,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}
