package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"localpro/middleware"
	"localpro/services/booking"
	"localpro/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// idempotencyTTL bounds how long a replayed confirm returns the cached
// result instead of double-charging.
const idempotencyTTL = 10 * time.Minute

// BookingHandler exposes the booking workflow.
type BookingHandler struct {
	Service booking.Service
	Cache   *redis.Client
	Logger  *zap.Logger
}

func NewBookingHandler(service booking.Service, cache *redis.Client, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Cache: cache, Logger: logger}
}

// CreateBookingHandler handles POST /api/bookings. Clients send an
// Idempotency-Key header so payment retries don't create duplicates.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req booking.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.ClientID = middleware.CallerUID(c)
	if req.Currency == "" {
		req.Currency = "usd"
	}

	ctx := c.Request.Context()
	// The cache key is scoped to the caller: a key is only ever a retry
	// handle for the client that minted it, never a lookup into someone
	// else's booking or payment secret.
	var cacheKey string
	if idemKey := c.GetHeader("Idempotency-Key"); idemKey != "" {
		cacheKey = "booking:idem:" + req.ClientID + ":" + idemKey
	}
	if cacheKey != "" {
		if cached, err := h.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var result booking.ConfirmResult
			if json.Unmarshal([]byte(cached), &result) == nil {
				c.JSON(http.StatusOK, result)
				return
			}
		}
	}

	result, err := h.Service.ConfirmBooking(ctx, req)
	if err != nil {
		var bErr *booking.BookingError
		if errors.As(err, &bErr) && bErr.Code == "slotUnavailable" {
			utils.JSONError(c, http.StatusConflict, "slot unavailable", bErr.Message)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "booking failed", err.Error())
		return
	}

	if cacheKey != "" {
		if data, err := json.Marshal(result); err == nil {
			if err := h.Cache.Set(ctx, cacheKey, data, idempotencyTTL).Err(); err != nil {
				h.Logger.Warn("failed to cache idempotent booking result", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusCreated, result)
}

// CancelBookingHandler handles POST /api/bookings/:id/cancel
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")
	callerID := middleware.CallerUID(c)

	if err := h.Service.CancelBooking(c.Request.Context(), bookingID, callerID); err != nil {
		var bErr *booking.BookingError
		if errors.As(err, &bErr) {
			status := http.StatusConflict
			if bErr.Code == "forbidden" {
				status = http.StatusForbidden
			}
			utils.JSONError(c, status, "cancel failed", bErr.Message)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "cancel failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "canceled"})
}
