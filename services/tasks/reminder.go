package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"localpro/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues booking reminders on the asynq queue.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler(redisOpt asynq.RedisClientOpt) *Scheduler {
	return &Scheduler{client: asynq.NewClient(redisOpt)}
}

// ScheduleBookingReminder enqueues a client reminder firing one hour before
// the appointment. Bookings starting sooner than that get no reminder.
func (s *Scheduler) ScheduleBookingReminder(ctx context.Context, booking *models.Booking) error {
	fireAt := booking.ScheduledDate.Add(-time.Hour)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		Target:    "client",
		TargetID:  booking.ClientID,
		Title:     "Upcoming appointment",
		Body:      fmt.Sprintf("Your %s appointment starts at %s.", booking.ServiceType, booking.ScheduledDate.Format("15:04")),
		FireDate:  fireAt.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", booking.ID, err)
	}
	return nil
}
