package models

// ReminderPayload is the asynq task payload for a booking reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Target    string `json:"target"` // "client" or "provider"
	TargetID  string `json:"targetId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"` // RFC3339
}
