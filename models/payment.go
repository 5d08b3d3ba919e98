package models

// PaymentRequest carries what the payment handler needs to create a
// payment intent with the processor.
type PaymentRequest struct {
	BookingID string  `json:"bookingId"`
	ClientID  string  `json:"clientId"`
	Amount    float64 `json:"amount"` // major currency units
	Currency  string  `json:"currency"`
}

// PaymentIntent is the processor-side intent the client confirms.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Status       string `json:"status"`
}
