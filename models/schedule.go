package models

import "time"

// TimeSlot is a contiguous time-of-day window during which a provider
// accepts bookings. Times are "HH:MM" 24-hour clock strings.
type TimeSlot struct {
	Start string `bson:"start" json:"start"` // e.g., "09:00"
	End   string `bson:"end" json:"end"`     // e.g., "12:00"
}

// WeeklyScheduleEntry holds one weekday's slots. DayOfWeek follows
// time.Weekday numbering (0=Sunday..6=Saturday). When IsActive is false
// the provider is closed that day regardless of slots.
type WeeklyScheduleEntry struct {
	DayOfWeek int        `bson:"dayOfWeek" json:"dayOfWeek"`
	IsActive  bool       `bson:"isActive" json:"isActive"`
	Slots     []TimeSlot `bson:"slots" json:"slots"`
}

// ProviderSchedule is the provider's recurring weekly calendar plus one-off
// blocked dates. UserID is both the document identity and the owning key.
type ProviderSchedule struct {
	UserID         string                `bson:"userId" json:"userId"`
	WeeklySchedule []WeeklyScheduleEntry `bson:"weeklySchedule" json:"weeklySchedule"`
	BlockedDates   []string              `bson:"blockedDates" json:"blockedDates"` // "YYYY-MM-DD"
	UpdatedAt      time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// ScheduleUpdate is a partial schedule edit. Nil fields are left untouched
// by the store's merge-upsert.
type ScheduleUpdate struct {
	WeeklySchedule *[]WeeklyScheduleEntry `json:"weeklySchedule,omitempty"`
	BlockedDates   *[]string              `json:"blockedDates,omitempty"`
}

// EntryForDay returns the first weekly entry matching the given weekday.
// The store rejects duplicate days on save, but reads still honor
// first-match-wins for documents written before that invariant existed.
func (s *ProviderSchedule) EntryForDay(day time.Weekday) *WeeklyScheduleEntry {
	for i := range s.WeeklySchedule {
		if s.WeeklySchedule[i].DayOfWeek == int(day) {
			return &s.WeeklySchedule[i]
		}
	}
	return nil
}

// IsDateBlocked reports whether the "YYYY-MM-DD" date is in BlockedDates.
func (s *ProviderSchedule) IsDateBlocked(date string) bool {
	for _, d := range s.BlockedDates {
		if d == date {
			return true
		}
	}
	return false
}
