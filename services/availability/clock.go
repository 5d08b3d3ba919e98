package availability

import (
	"fmt"
	"strconv"
	"strings"

	"localpro/models"
)

// parseClock converts an "HH:MM" 24-hour string to minutes from midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return h*60 + m, nil
}

// parseSlot returns a slot's [start, end) bounds in minutes from midnight.
// Unparseable or inverted slots yield an error; the engine skips them so a
// single malformed slot fails closed without hiding the rest of the day.
func parseSlot(slot models.TimeSlot) (start, end int, err error) {
	start, err = parseClock(slot.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err = parseClock(slot.End)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("inverted slot range %s-%s", slot.Start, slot.End)
	}
	return start, end, nil
}
