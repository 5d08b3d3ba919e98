package models

import "time"

// BookingStatus is a booking lifecycle state.
type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingStatusConfirmed      BookingStatus = "CONFIRMED"
	BookingStatusActive         BookingStatus = "ACTIVE"
	BookingStatusCompleted      BookingStatus = "COMPLETED"
	BookingStatusCanceled       BookingStatus = "CANCELED"
)

// OccupyingStatuses returns the statuses that reserve provider time on the
// calendar. Completed and canceled bookings are historical and never block
// a new slot.
func OccupyingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPendingPayment,
		BookingStatusConfirmed,
		BookingStatusActive,
	}
}

// Booking represents a committed or pending appointment. The occupied
// interval is [ScheduledDate, ScheduledDate + EstimatedDuration minutes).
type Booking struct {
	ID                string        `bson:"id" json:"id"`
	HostID            string        `bson:"hostId" json:"hostId"`     // provider being booked
	ClientID          string        `bson:"clientId" json:"clientId"` // user who booked
	ServiceType       string        `bson:"serviceType" json:"serviceType"`
	ScheduledDate     time.Time     `bson:"scheduledDate" json:"scheduledDate"`
	EstimatedDuration int           `bson:"estimatedDuration" json:"estimatedDuration"` // minutes
	Status            BookingStatus `bson:"status" json:"status"`
	TotalPrice        float64       `bson:"totalPrice,omitempty" json:"totalPrice,omitempty"`
	PaymentIntentID   string        `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
}

// End returns the exclusive end of the booking's occupied interval.
func (b *Booking) End() time.Time {
	return b.ScheduledDate.Add(time.Duration(b.EstimatedDuration) * time.Minute)
}
