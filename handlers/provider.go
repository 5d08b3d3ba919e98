package handlers

import (
	"net/http"
	"strconv"

	providerRepo "localpro/database/repository/provider"
	"localpro/middleware"
	"localpro/models"
	"localpro/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes provider profiles and proximity search.
type ProviderHandler struct {
	Repo providerRepo.ProviderRepository
}

func NewProviderHandler(repo providerRepo.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{Repo: repo}
}

// GetProviderByIDHandler handles GET /api/providers/:id
func (h *ProviderHandler) GetProviderByIDHandler(c *gin.Context) {
	provider, err := h.Repo.GetProviderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "provider not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, provider)
}

// UpsertProviderHandler handles PUT /api/providers/:id
func (h *ProviderHandler) UpsertProviderHandler(c *gin.Context) {
	providerID := c.Param("id")
	if middleware.CallerUID(c) != providerID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "providers may only edit their own profile")
		return
	}

	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	provider.ID = providerID

	if err := h.Repo.UpsertProvider(c.Request.Context(), &provider); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, provider)
}

// SearchNearbyHandler handles
// GET /api/providers/nearby?lat=&lng=&radiusKm=&service=&limit=
func (h *ProviderHandler) SearchNearbyHandler(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid lat", "lat must be a number")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid lng", "lng must be a number")
		return
	}
	radiusKm, err := strconv.ParseFloat(c.DefaultQuery("radiusKm", "25"), 64)
	if err != nil || radiusKm <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid radiusKm", "radiusKm must be a positive number")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	providers, err := h.Repo.SearchNearby(c.Request.Context(), providerRepo.ProviderSearchCriteria{
		Latitude:      lat,
		Longitude:     lng,
		MaxDistanceKm: radiusKm,
		ServiceType:   c.Query("service"),
		Limit:         limit,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "search failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}
