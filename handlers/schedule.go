package handlers

import (
	"net/http"

	scheduleRepo "localpro/database/repository/schedule"
	"localpro/middleware"
	"localpro/models"
	"localpro/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes provider schedule reads and edits.
type ScheduleHandler struct {
	Repo scheduleRepo.ScheduleRepository
}

func NewScheduleHandler(repo scheduleRepo.ScheduleRepository) *ScheduleHandler {
	return &ScheduleHandler{Repo: repo}
}

// GetScheduleHandler handles GET /api/providers/:id/schedule
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	providerID := c.Param("id")

	schedule, err := h.Repo.GetSchedule(c.Request.Context(), providerID)
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to load schedule", err.Error())
		return
	}
	if schedule == nil {
		utils.JSONError(c, http.StatusNotFound, "schedule not found", "provider has not configured a schedule")
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// SaveScheduleHandler handles PUT /api/providers/:id/schedule. The edit is
// a merge: omitted fields keep their stored values.
func (h *ScheduleHandler) SaveScheduleHandler(c *gin.Context) {
	providerID := c.Param("id")
	if middleware.CallerUID(c) != providerID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "providers may only edit their own schedule")
		return
	}

	var update models.ScheduleUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Repo.SaveSchedule(c.Request.Context(), providerID, update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to save schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
