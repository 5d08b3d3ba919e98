package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// reservationTTL bounds how long an abandoned reservation can block an
// interval. A TTL index on "expiresAt" reaps stale locks server-side.
const reservationTTL = 2 * time.Minute

type intervalLock struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// lockID normalizes a provider interval into a deterministic lock key.
func lockID(providerID string, start time.Time, durationMinutes int) string {
	return fmt.Sprintf("%s:%s:%d", providerID, start.UTC().Format(time.RFC3339), durationMinutes)
}

// ReserveInterval inserts a lock document keyed by the normalized interval.
// The unique _id makes the insert a conditional write: a duplicate key means
// a concurrent booking attempt holds the interval.
func (r *MongoBookingRepo) ReserveInterval(ctx context.Context, providerID string, start time.Time, durationMinutes int) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	lock := intervalLock{
		ID:        lockID(providerID, start, durationMinutes),
		CreatedAt: now,
		ExpiresAt: now.Add(reservationTTL),
	}
	if _, err := r.lockColl.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrIntervalReserved
		}
		return nil, fmt.Errorf("failed to reserve interval: %w", err)
	}

	release := func() {
		relCtx, relCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer relCancel()
		_, _ = r.lockColl.DeleteOne(relCtx, bson.M{"_id": lock.ID})
	}
	return release, nil
}
