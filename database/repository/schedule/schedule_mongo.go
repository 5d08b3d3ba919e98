package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localpro/database"
	"localpro/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleRepo is the MongoDB-backed schedule store.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo returns a schedule repository over the
// "provider_schedules" collection.
func NewMongoScheduleRepo() *MongoScheduleRepo {
	return &MongoScheduleRepo{coll: database.Collection("provider_schedules")}
}

func (r *MongoScheduleRepo) GetSchedule(ctx context.Context, providerID string) (*models.ProviderSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var schedule models.ProviderSchedule
	err := r.coll.FindOne(ctx, bson.M{"userId": providerID}).Decode(&schedule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for provider %s: %w", providerID, err)
	}
	return &schedule, nil
}

func (r *MongoScheduleRepo) SaveSchedule(ctx context.Context, providerID string, update models.ScheduleUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if update.WeeklySchedule != nil {
		if err := validateWeeklySchedule(*update.WeeklySchedule); err != nil {
			return err
		}
		set["weeklySchedule"] = *update.WeeklySchedule
	}
	if update.BlockedDates != nil {
		set["blockedDates"] = *update.BlockedDates
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": providerID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"userId": providerID},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save schedule for provider %s: %w", providerID, err)
	}
	return nil
}

// validateWeeklySchedule enforces at most one entry per weekday at write
// time, so reads never have to disambiguate duplicates.
func validateWeeklySchedule(entries []models.WeeklyScheduleEntry) error {
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			return fmt.Errorf("invalid dayOfWeek %d: must be 0 (Sunday) through 6 (Saturday)", e.DayOfWeek)
		}
		if seen[e.DayOfWeek] {
			return fmt.Errorf("duplicate weekly schedule entry for dayOfWeek %d", e.DayOfWeek)
		}
		seen[e.DayOfWeek] = true
	}
	return nil
}
