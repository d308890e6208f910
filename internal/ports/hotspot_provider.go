package ports

import (
	"context"
	"hotspot-finder-service/internal/domain"
)

// Parameters for a hotspot search around a reference point.
type HotspotQuery struct {
	Ref        domain.Coordinates
	DistKm     float64
	MaxResults int
}

// Contract for retrieving hotspot records near a point.
type HotspotProvider interface {
	// Return raw hotspot records; shape follows the upstream feed.
	NearbyHotspots(ctx context.Context, q HotspotQuery) ([]domain.RawRecord, error)
}

// Port: a hotspot source backed by a local, seedable dataset.
type HotspotCatalog interface {
	HotspotProvider
	// Insert or replace hotspots in the catalog.
	SeedHotspots(ctx context.Context, hotspots []domain.Hotspot) error
}
