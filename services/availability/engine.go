package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	bookingRepo "localpro/database/repository/booking"
	scheduleRepo "localpro/database/repository/schedule"
	"localpro/models"
)

const (
	// DefaultMaxResults caps slot enumeration when the caller passes no limit.
	DefaultMaxResults = 6
	// DefaultBookingMinutes is the probe duration used when enumerating
	// slots, where no concrete service duration has been chosen yet.
	DefaultBookingMinutes = 60
)

// Engine decides point-in-time availability and enumerates future free
// slots for a provider. It is a read-only function over the schedule and
// booking stores: it never writes and never reserves. Two concurrent calls
// can both see the same interval as free; exclusivity belongs to the
// booking orchestrator's commit path.
type Engine interface {
	IsAvailable(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error)
	NextAvailableSlots(ctx context.Context, providerID string, horizonDays, maxResults int) ([]time.Time, error)
}

// Options tunes engine behavior without code changes.
type Options struct {
	// OpenWhenUnconfigured inverts the fail-closed default for providers
	// with no schedule record: bookings are then gated only by overlap.
	OpenWhenUnconfigured bool
	// StartOnlySlotCheck restores the legacy boundary check where only the
	// candidate's start instant must fall inside a slot. The default
	// requires the full [start, start+duration) interval to be contained
	// in a single slot.
	StartOnlySlotCheck bool
	// DefaultBookingMinutes overrides the probe duration for slot
	// enumeration. Zero means DefaultBookingMinutes.
	DefaultBookingMinutes int
}

// DefaultAvailabilityEngine is the production engine.
type DefaultAvailabilityEngine struct {
	Schedules scheduleRepo.ScheduleRepository
	Bookings  bookingRepo.BookingRepository
	Opts      Options
	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (e *DefaultAvailabilityEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultAvailabilityEngine) probeDuration() int {
	if e.Opts.DefaultBookingMinutes > 0 {
		return e.Opts.DefaultBookingMinutes
	}
	return DefaultBookingMinutes
}

// IsAvailable reports whether a booking of durationMinutes starting at
// start can be placed on the provider's calendar. Every schedule-level
// rejection returns (false, nil); only store failures return an error.
func (e *DefaultAvailabilityEngine) IsAvailable(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
	if durationMinutes <= 0 {
		return false, fmt.Errorf("invalid duration %d minutes", durationMinutes)
	}

	schedule, err := e.Schedules.GetSchedule(ctx, providerID)
	if err != nil {
		return false, storeErr("fetching schedule", err)
	}

	if schedule == nil {
		// An unconfigured provider is not bookable unless the platform
		// opted into open-until-configured, in which case only committed
		// bookings gate the interval.
		if !e.Opts.OpenWhenUnconfigured {
			return false, nil
		}
		return e.isFreeOfBookings(ctx, providerID, start, durationMinutes)
	}

	if schedule.IsDateBlocked(start.Format("2006-01-02")) {
		return false, nil
	}

	entry := schedule.EntryForDay(start.Weekday())
	if entry == nil || !entry.IsActive {
		return false, nil
	}

	if !e.startFitsSlots(entry.Slots, start, durationMinutes) {
		return false, nil
	}

	return e.isFreeOfBookings(ctx, providerID, start, durationMinutes)
}

// startFitsSlots checks the candidate against the day's slots. Overlapping
// slots are fine: a time inside any one of them counts. Malformed slots
// are skipped, failing closed for just that slot.
func (e *DefaultAvailabilityEngine) startFitsSlots(slots []models.TimeSlot, start time.Time, durationMinutes int) bool {
	candStart := start.Hour()*60 + start.Minute()
	candEnd := candStart + durationMinutes

	for _, slot := range slots {
		slotStart, slotEnd, err := parseSlot(slot)
		if err != nil {
			continue
		}
		if candStart < slotStart || candStart >= slotEnd {
			continue
		}
		if e.Opts.StartOnlySlotCheck || candEnd <= slotEnd {
			return true
		}
	}
	return false
}

// isFreeOfBookings fetches the candidate day's occupying bookings and
// applies the half-open overlap test: [a,b) and [c,d) overlap iff
// a < d && b > c.
func (e *DefaultAvailabilityEngine) isFreeOfBookings(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

	bookings, err := e.Bookings.FindBookings(ctx, providerID, dayStart, dayEnd, models.OccupyingStatuses())
	if err != nil {
		return false, storeErr("fetching bookings", err)
	}

	candEnd := start.Add(time.Duration(durationMinutes) * time.Minute)
	for i := range bookings {
		b := &bookings[i]
		if start.Before(b.End()) && candEnd.After(b.ScheduledDate) {
			return false, nil
		}
	}
	return true, nil
}

// NextAvailableSlots scans forward day by day from now (today included)
// for up to horizonDays days and returns the earliest free slot starts in
// chronological order, at most maxResults of them (maxResults <= 0 means
// DefaultMaxResults). Each candidate is probed with the full IsAvailable
// check using the configured probe duration.
func (e *DefaultAvailabilityEngine) NextAvailableSlots(ctx context.Context, providerID string, horizonDays, maxResults int) ([]time.Time, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	schedule, err := e.Schedules.GetSchedule(ctx, providerID)
	if err != nil {
		return nil, storeErr("fetching schedule", err)
	}
	if schedule == nil {
		// Nothing to enumerate: even an open-until-configured provider has
		// no slot grid to offer.
		return nil, nil
	}

	now := e.now()
	duration := e.probeDuration()

	var results []time.Time
	for offset := 0; offset < horizonDays; offset++ {
		day := now.AddDate(0, 0, offset)

		if schedule.IsDateBlocked(day.Format("2006-01-02")) {
			continue
		}
		entry := schedule.EntryForDay(day.Weekday())
		if entry == nil || !entry.IsActive {
			continue
		}

		for _, slotStart := range slotStartMinutes(entry.Slots) {
			candidate := time.Date(day.Year(), day.Month(), day.Day(),
				slotStart/60, slotStart%60, 0, 0, now.Location())
			if candidate.Before(now) {
				continue
			}
			free, err := e.IsAvailable(ctx, providerID, candidate, duration)
			if err != nil {
				return nil, err
			}
			if free {
				results = append(results, candidate)
				if len(results) == maxResults {
					return results, nil
				}
			}
		}
	}
	return results, nil
}

// slotStartMinutes returns the day's well-formed slot starts in ascending
// order with duplicates collapsed, so enumeration is chronological even
// when the stored slots are unsorted or overlapping.
func slotStartMinutes(slots []models.TimeSlot) []int {
	starts := make([]int, 0, len(slots))
	for _, slot := range slots {
		s, _, err := parseSlot(slot)
		if err != nil {
			continue
		}
		starts = append(starts, s)
	}
	sort.Ints(starts)

	deduped := starts[:0]
	for i, s := range starts {
		if i == 0 || s != starts[i-1] {
			deduped = append(deduped, s)
		}
	}
	return deduped
}
