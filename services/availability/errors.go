package availability

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks failures reaching the schedule or booking
// store. Callers use it to distinguish "nothing free" from "couldn't
// check": an outage must not read as a fully booked provider.
var ErrStoreUnavailable = errors.New("availability store unavailable")

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
