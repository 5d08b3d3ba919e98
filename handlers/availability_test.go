package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"localpro/services/availability"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubEngine struct {
	isAvailableFunc func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error)
	nextSlotsFunc   func(ctx context.Context, providerID string, horizonDays, maxResults int) ([]time.Time, error)
}

func (s *stubEngine) IsAvailable(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
	return s.isAvailableFunc(ctx, providerID, start, durationMinutes)
}

func (s *stubEngine) NextAvailableSlots(ctx context.Context, providerID string, horizonDays, maxResults int) ([]time.Time, error) {
	return s.nextSlotsFunc(ctx, providerID, horizonDays, maxResults)
}

func availabilityRouter(h *AvailabilityHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/providers/:id/availability", h.CheckAvailabilityHandler)
	r.GET("/api/providers/:id/slots", h.NextSlotsHandler)
	return r
}

func TestNextSlotsRejectsZeroMax(t *testing.T) {
	h := NewAvailabilityHandler(&stubEngine{
		nextSlotsFunc: func(ctx context.Context, providerID string, horizonDays, maxResults int) ([]time.Time, error) {
			t.Fatal("engine must not run for an invalid max")
			return nil, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/providers/prov-1/slots?max=0", nil)
	availabilityRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "between 1 and 50")
}

func TestNextSlotsPassesBounds(t *testing.T) {
	var gotDays, gotMax int
	h := NewAvailabilityHandler(&stubEngine{
		nextSlotsFunc: func(ctx context.Context, providerID string, horizonDays, maxResults int) ([]time.Time, error) {
			gotDays, gotMax = horizonDays, maxResults
			return []time.Time{time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/providers/prov-1/slots?days=7&max=3", nil)
	availabilityRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, gotDays)
	assert.Equal(t, 3, gotMax)
	assert.Contains(t, w.Body.String(), "2025-06-02T09:00:00Z")
}

func TestCheckAvailabilityStoreOutage(t *testing.T) {
	h := NewAvailabilityHandler(&stubEngine{
		isAvailableFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
			return false, fmt.Errorf("fetching schedule: %w", availability.ErrStoreUnavailable)
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/providers/prov-1/availability?start=2025-06-02T10:00:00Z", nil)
	availabilityRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
