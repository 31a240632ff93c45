package server

import (
	"errors"
	"net/http"

	"index-observer/src/helpers"
	"index-observer/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------

// queryRange reads ?range=, falling back to the configured default.
func (s *APIServer) queryRange(c *gin.Context) models.MRange {
	return s.selectedRange(c.Query("range"))
}

func (s *APIServer) selectedRange(raw string) models.MRange {
	rng := models.ParseRange(raw)
	if rng == "" {
		return s.defaultRange()
	}
	return rng
}

// -----------------------------------------------------------------------------

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		validationErr *helpers.ValidationError
		analysisErr   *helpers.AnalysisError
	)

	switch {
	case errors.Is(err, helpers.ErrIndexNotFound):
		return http.StatusNotFound
	case errors.Is(err, helpers.ErrEmptyDataset), errors.Is(err, helpers.ErrAnalysisDisabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &analysisErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// -----------------------------------------------------------------------------

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// -----------------------------------------------------------------------------

func errorMessage(err error) *models.MViewMessage {
	return &models.MViewMessage{Type: models.MessageError, Error: err.Error()}
}
