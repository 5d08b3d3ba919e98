package scheduleRepo

import (
	"context"

	"localpro/models"
)

// ScheduleRepository is the schedule store contract consumed by the
// availability engine and the provider schedule endpoints. It is pure
// storage; slot well-formedness is judged by the engine.
type ScheduleRepository interface {
	// GetSchedule retrieves a provider's schedule. A provider with no
	// schedule yields (nil, nil); absence is data, not an error.
	GetSchedule(ctx context.Context, providerID string) (*models.ProviderSchedule, error)
	// SaveSchedule merge-upserts a partial schedule edit. Fields not present
	// in the update are left untouched; the document is created if absent.
	SaveSchedule(ctx context.Context, providerID string, update models.ScheduleUpdate) error
}
