package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "localpro/database/repository/booking"
	providerRepo "localpro/database/repository/provider"
	"localpro/models"
	"localpro/services/availability"
)

// ReminderScheduler enqueues a reminder to fire before the appointment.
type ReminderScheduler interface {
	ScheduleBookingReminder(ctx context.Context, booking *models.Booking) error
}

// ConfirmRequest is the orchestrator input for committing a booking.
type ConfirmRequest struct {
	HostID          string    `json:"hostId"`
	ClientID        string    `json:"clientId"`
	ServiceType     string    `json:"serviceType"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"durationMinutes"`
	Currency        string    `json:"currency"`
}

// ConfirmResult is what the client needs to finish paying.
type ConfirmResult struct {
	Booking       *models.Booking       `json:"booking"`
	PaymentIntent *models.PaymentIntent `json:"paymentIntent"`
}

// Service is the booking workflow consumed by the HTTP layer.
type Service interface {
	ConfirmBooking(ctx context.Context, req ConfirmRequest) (*ConfirmResult, error)
	CancelBooking(ctx context.Context, bookingID, callerID string) error
}

// DefaultBookingService commits bookings. The availability engine only
// answers "was it free as of the snapshot read"; this service adds the
// serialization point (a conditional interval reservation) so two
// concurrent confirmations of the same interval cannot both land.
type DefaultBookingService struct {
	Engine    availability.Engine
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
	Payments  PaymentHandler
	Reminders ReminderScheduler
	Logger    *zap.Logger
}

func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, req ConfirmRequest) (*ConfirmResult, error) {
	// Step 1: advisory availability check.
	free, err := s.Engine.IsAvailable(ctx, req.HostID, req.Start, req.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	if !free {
		return nil, NewSlotUnavailableError("requested time is not available")
	}

	// Step 2: reserve the interval so concurrent attempts serialize here.
	release, err := s.Bookings.ReserveInterval(ctx, req.HostID, req.Start, req.DurationMinutes)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrIntervalReserved) {
			return nil, NewSlotUnavailableError("another booking attempt holds this time")
		}
		return nil, fmt.Errorf("interval reservation failed: %w", err)
	}
	defer release()

	// Step 3: re-check under the reservation; the first read raced freely.
	free, err = s.Engine.IsAvailable(ctx, req.HostID, req.Start, req.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("availability re-check failed: %w", err)
	}
	if !free {
		return nil, NewSlotUnavailableError("requested time was just taken")
	}

	// Step 4: price from the provider profile.
	provider, err := s.Providers.GetProviderByID(ctx, req.HostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	price := provider.HourlyRate * float64(req.DurationMinutes) / 60

	booking := &models.Booking{
		ID:                uuid.New().String(),
		HostID:            req.HostID,
		ClientID:          req.ClientID,
		ServiceType:       req.ServiceType,
		ScheduledDate:     req.Start,
		EstimatedDuration: req.DurationMinutes,
		Status:            models.BookingStatusPendingPayment,
		TotalPrice:        price,
		CreatedAt:         time.Now(),
	}

	// Step 5: payment intent before persisting, so a processor failure
	// leaves no orphan booking.
	intent, err := s.Payments.CreatePaymentIntent(ctx, models.PaymentRequest{
		BookingID: booking.ID,
		ClientID:  req.ClientID,
		Amount:    price,
		Currency:  req.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("payment intent creation failed: %w", err)
	}
	booking.PaymentIntentID = intent.ID

	// Step 6: persist. From here the booking itself occupies the calendar
	// through the engine's overlap check, so the reservation can lapse.
	if err := s.Bookings.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	// Step 7: reminder an hour before start; failure is not fatal.
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleBookingReminder(ctx, booking); err != nil {
			s.Logger.Warn("failed to schedule booking reminder",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	s.Logger.Info("Booking committed",
		zap.String("bookingId", booking.ID),
		zap.String("hostId", booking.HostID),
		zap.Time("start", booking.ScheduledDate))

	return &ConfirmResult{Booking: booking, PaymentIntent: intent}, nil
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, callerID string) error {
	booking, err := s.Bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.ClientID != callerID && booking.HostID != callerID {
		return NewForbiddenError("only the client or the provider may cancel a booking")
	}
	if booking.Status == models.BookingStatusCompleted || booking.Status == models.BookingStatusCanceled {
		return NewSlotUnavailableError("booking is already " + string(booking.Status))
	}
	// CANCELED is non-occupying, so the interval frees up implicitly.
	return s.Bookings.UpdateBookingStatus(ctx, bookingID, models.BookingStatusCanceled)
}
