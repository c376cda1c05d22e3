// README: Trip handlers: generate, list, get, update, delete, refresh photos.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/http/middleware"
	"wanderplan/internal/modules/trip"
	"wanderplan/internal/service"
	"wanderplan/internal/tripplan"
	"wanderplan/internal/types"
)

type TripHandler struct {
	planner *service.TripPlanner
	trips   *trip.Service
}

func NewTripHandler(planner *service.TripPlanner, trips *trip.Service) *TripHandler {
	return &TripHandler{planner: planner, trips: trips}
}

type updateTripReq struct {
	Plan        tripplan.TripPlan  `json:"plan"`
	Preferences *types.Preferences `json:"preferences"`
}

// Generate handles POST /api/trips/generate.
func (h *TripHandler) Generate(c *gin.Context) {
	var prefs types.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	t, err := h.planner.PlanTrip(c.Request.Context(), middleware.CallerUID(c), prefs)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, t)
}

// List handles GET /api/trips.
func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	out := make([]trip.Summary, 0, len(trips))
	for _, t := range trips {
		out = append(out, t.Summary())
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": out})
}

// Get handles GET /api/trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	t, err := h.trips.Get(c.Request.Context(), middleware.CallerUID(c), id)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

// Update handles PUT /api/trips/:id.
func (h *TripHandler) Update(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	var req updateTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Preferences != nil {
		p := req.Preferences.Normalize()
		if err := p.Validate(); err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		req.Preferences = &p
	}

	t, err := h.trips.Update(c.Request.Context(), trip.UpdateCommand{
		ID:          id,
		UserID:      middleware.CallerUID(c),
		Plan:        req.Plan,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

// Delete handles DELETE /api/trips/:id.
func (h *TripHandler) Delete(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	if err := h.trips.Delete(c.Request.Context(), middleware.CallerUID(c), id); err != nil {
		writeTripError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RefreshPhotos handles POST /api/trips/:id/photos.
func (h *TripHandler) RefreshPhotos(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	t, err := h.planner.RegeneratePhotos(c.Request.Context(), middleware.CallerUID(c), id)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}
