// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freight/internal/modules/batch"
	"freight/internal/modules/hub"
	"freight/internal/modules/location"
	"freight/internal/modules/pricing"
	"freight/internal/modules/rate"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps domain sentinels to a status code. Unknown errors
// are logged by the request middleware and answered with a generic 500.
func writeServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, hub.ErrInvalidHub), errors.Is(err, rate.ErrInvalidRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, location.ErrGeoNotFound), errors.Is(err, rate.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, hub.ErrNoHubsAvailable):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, pricing.ErrDegenerateDistance), errors.Is(err, batch.ErrRateColumnsNotDetected),
		errors.Is(err, batch.ErrAmbiguousRateColumns):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, rate.ErrAnchorUnavailable):
		writeError(c, http.StatusInternalServerError, rate.ErrAnchorUnavailable.Error())
	case errors.Is(err, location.ErrGeoTransport):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
