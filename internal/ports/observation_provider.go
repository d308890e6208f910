package ports

import (
	"context"
	"hotspot-finder-service/internal/domain"
)

// Parameters for a recent-observation search around a reference point.
type ObservationQuery struct {
	Ref        domain.Coordinates
	MaxResults int
}

// Contract for retrieving recent observation records.
type ObservationProvider interface {
	// Return recent observations reported at a single hotspot.
	RecentObservationsAt(ctx context.Context, locID string, maxResults int) ([]domain.RawRecord, error)
	// Return recent observations near a point, across hotspots and private locations.
	RecentObservationsNear(ctx context.Context, q ObservationQuery) ([]domain.RawRecord, error)
}
