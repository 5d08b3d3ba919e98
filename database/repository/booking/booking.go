package bookingRepo

import (
	"context"
	"errors"
	"time"

	"localpro/models"
)

// ErrIntervalReserved is returned by ReserveInterval when another booking
// attempt already holds the same provider interval.
var ErrIntervalReserved = errors.New("booking interval already reserved")

// BookingRepository is the booking store contract. The availability engine
// uses only FindBookings; the orchestrator uses the rest.
type BookingRepository interface {
	// FindBookings returns the provider's bookings whose scheduledDate falls
	// within the inclusive [from, to] range and whose status is in statuses.
	FindBookings(ctx context.Context, providerID string, from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error)
	// GetBooking fetches a single booking by ID.
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// CreateBooking persists a new booking record.
	CreateBooking(ctx context.Context, booking *models.Booking) error
	// UpdateBookingStatus transitions a booking's lifecycle state.
	UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
	// ReserveInterval takes a short-lived advisory lock on the provider's
	// candidate interval so check-then-commit is atomic per provider and
	// interval. It returns ErrIntervalReserved if the lock is held. The
	// returned release func drops the lock; the lock also expires on its own.
	ReserveInterval(ctx context.Context, providerID string, start time.Time, durationMinutes int) (func(), error)
}
