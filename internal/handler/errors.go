package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"travelbudgeter/internal/booking"
	"travelbudgeter/internal/models"
	"travelbudgeter/internal/upstream"
)

// writeError maps the error taxonomy onto HTTP responses: input errors are
// 400s, a dead session is a 401 telling the caller to re-authenticate, and
// transport/upstream failures become inline messages with a gateway status.
func writeError(c echo.Context, err error) error {
	var validationErr models.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if errors.Is(err, booking.ErrSubmissionInFlight) {
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "submission_in_flight",
			Message: err.Error(),
			Code:    http.StatusConflict,
		})
	}

	var authErr *upstream.AuthorizationError
	if errors.As(err, &authErr) {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "session_expired",
			Message: "Session expired, please log in again",
			Code:    http.StatusUnauthorized,
		})
	}

	var netErr *upstream.NetworkError
	if errors.As(err, &netErr) {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "network_error",
			Message: netErr.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	var upstreamErr *upstream.UpstreamError
	if errors.As(err, &upstreamErr) {
		status := upstreamErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return c.JSON(status, models.ErrorResponse{
			Error:   "upstream_error",
			Message: upstreamErr.Error(),
			Code:    status,
		})
	}

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
		Code:    http.StatusInternalServerError,
	})
}
