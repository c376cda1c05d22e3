// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/modules/aiusage"
	"wanderplan/internal/modules/trip"
	"wanderplan/internal/photos"
	"wanderplan/internal/service"
	"wanderplan/internal/tripplan"
	"wanderplan/internal/types"
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

// tripID reads and validates the :id path parameter.
func tripID(c *gin.Context) (types.ID, bool) {
	id := types.ID(c.Param("id"))
	if !id.Valid() {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return "", false
	}
	return id, true
}

func writeTripError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, trip.ErrBadRequest), errors.Is(err, trip.ErrInvalidPlan):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// writePlanError maps generation failures. The two 502 messages tell the
// client whether the model output was unreadable or merely incomplete.
func writePlanError(c *gin.Context, err error) {
	var missing *tripplan.MissingFieldError
	switch {
	case errors.Is(err, service.ErrInvalidPreferences):
		_ = c.Error(err)
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, aiusage.ErrQuotaExhausted):
		_ = c.Error(err)
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &missing):
		_ = c.Error(err)
		writeError(c, http.StatusBadGateway, fmt.Sprintf("the generated plan was incomplete (missing field %s)", missing.Field))
	case errors.Is(err, tripplan.ErrMalformedResponse),
		errors.Is(err, tripplan.ErrInvalidStructure),
		errors.Is(err, photos.ErrUnexpectedShape):
		_ = c.Error(err)
		writeError(c, http.StatusBadGateway, "could not understand the generated plan")
	case errors.Is(err, service.ErrGenerationFailed):
		_ = c.Error(err)
		writeError(c, http.StatusBadGateway, "the trip planner is unavailable, please try again")
	default:
		writeTripError(c, err)
	}
}
