package booking

import "fmt"

// BookingError carries a machine-readable code alongside the message.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSlotUnavailableError(msg string) error {
	return &BookingError{
		Code:    "slotUnavailable",
		Message: msg,
	}
}

func NewForbiddenError(msg string) error {
	return &BookingError{
		Code:    "forbidden",
		Message: msg,
	}
}
