package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"localpro/services/availability"
	"localpro/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the availability engine over REST.
type AvailabilityHandler struct {
	Engine availability.Engine
}

func NewAvailabilityHandler(engine availability.Engine) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine}
}

// CheckAvailabilityHandler handles
// GET /api/providers/:id/availability?start=RFC3339&duration=minutes
func (h *AvailabilityHandler) CheckAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("id")

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start", "start must be an RFC3339 timestamp")
		return
	}
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil || duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid duration", "duration must be a positive number of minutes")
		return
	}

	available, err := h.Engine.IsAvailable(c.Request.Context(), providerID, start, duration)
	if err != nil {
		if errors.Is(err, availability.ErrStoreUnavailable) {
			utils.JSONError(c, http.StatusServiceUnavailable, "availability check unavailable", "could not reach the schedule store; try again")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "availability check failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"providerId": providerID,
		"start":      start.Format(time.RFC3339),
		"duration":   duration,
		"available":  available,
	})
}

// NextSlotsHandler handles GET /api/providers/:id/slots?days=30&max=6
func (h *AvailabilityHandler) NextSlotsHandler(c *gin.Context) {
	providerID := c.Param("id")

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 || days > 365 {
		utils.JSONError(c, http.StatusBadRequest, "invalid days", "days must be between 1 and 365")
		return
	}
	max, err := strconv.Atoi(c.DefaultQuery("max", "6"))
	if err != nil || max < 1 || max > 50 {
		utils.JSONError(c, http.StatusBadRequest, "invalid max", "max must be between 1 and 50")
		return
	}

	slots, err := h.Engine.NextAvailableSlots(c.Request.Context(), providerID, days, max)
	if err != nil {
		if errors.Is(err, availability.ErrStoreUnavailable) {
			utils.JSONError(c, http.StatusServiceUnavailable, "slot lookup unavailable", "could not reach the schedule store; try again")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "slot lookup failed", err.Error())
		return
	}

	formatted := make([]string, 0, len(slots))
	for _, s := range slots {
		formatted = append(formatted, s.Format(time.RFC3339))
	}
	c.JSON(http.StatusOK, gin.H{
		"providerId": providerID,
		"slots":      formatted,
	})
}
