package providerRepo

import (
	"context"

	"localpro/models"
)

// ProviderSearchCriteria filters the proximity search.
type ProviderSearchCriteria struct {
	Longitude     float64
	Latitude      float64
	MaxDistanceKm float64
	ServiceType   string
	Limit         int
}

// ProviderRepository exposes provider profile reads used by matching and
// the booking flow.
type ProviderRepository interface {
	GetProviderByID(ctx context.Context, providerID string) (*models.Provider, error)
	UpsertProvider(ctx context.Context, provider *models.Provider) error
	// SearchNearby returns active providers ordered by distance from the
	// given point, optionally filtered by service type.
	SearchNearby(ctx context.Context, criteria ProviderSearchCriteria) ([]models.Provider, error)
}
