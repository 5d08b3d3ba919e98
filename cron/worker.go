package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"localpro/config"
	"localpro/models"
	"localpro/services/tasks"
	"localpro/utils"

	firebaseMessaging "firebase.google.com/go/v4/messaging"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async worker in background. The monitor
// goroutine stops when ctx is canceled at shutdown.
func InitReminderWorker(ctx context.Context) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask)

	// Start Redis health monitor
	monitorClient := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	go func() {
		defer monitorClient.Close()
		monitorRedisConnection(ctx, monitorClient)
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleReminderTask delivers a reminder over FCM. Each user subscribes to
// their own topic on sign-in, so no device registry is kept here.
func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[ReminderHandler] Invalid payload: %v", err)
		return err
	}

	log.Printf("[ReminderHandler] Triggering reminder for %s %s: %s", p.Target, p.TargetID, p.Title)

	msg := &firebaseMessaging.Message{
		Topic: p.Target + "-" + p.TargetID,
		Notification: &firebaseMessaging.Notification{
			Title: p.Title,
			Body:  p.Body,
		},
		Data: map[string]string{
			"bookingId": p.BookingID,
			"fireDate":  p.FireDate,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		log.Printf("[ReminderHandler] Failed to send notification: %v", err)
		return err
	}
	return nil
}

// monitorRedisConnection pings Redis periodically to detect failures at
// runtime. It returns once ctx is canceled.
func monitorRedisConnection(ctx context.Context, client *redis.Client) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				log.Printf("[ReminderWorker] Redis connection lost: %v", err)
			}
		}
	}
}
