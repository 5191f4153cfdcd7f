package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"loadtrack/internal/repository"
	"loadtrack/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidLoadID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidReadingStage),
		errors.Is(err, service.ErrNegativeReading),
		errors.Is(err, service.ErrMissingReceivedReading):
		return http.StatusBadRequest

	// Stage-protocol conflicts
	case errors.Is(err, service.ErrDuplicateReadingStage),
		errors.Is(err, service.ErrMissingPickupReading),
		errors.Is(err, service.ErrPickupBeforeReceived),
		errors.Is(err, service.ErrDeliveryBeforePickup):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
