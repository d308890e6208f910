package ebird

import (
	"context"
	"hotspot-finder-service/internal/domain"
	"hotspot-finder-service/internal/ports"
)

// StaticProvider serves fixed records in eBird's shape.
// It backs service and handler tests.
type StaticProvider struct {
	Hotspots     []domain.RawRecord
	Observations []domain.RawRecord
	ByHotspot    map[string][]domain.RawRecord
	// Failures forces RecentObservationsAt to fail for the given locIDs.
	Failures map[string]error
}

func (p *StaticProvider) NearbyHotspots(_ context.Context, q ports.HotspotQuery) ([]domain.RawRecord, error) {
	return truncate(p.Hotspots, q.MaxResults), nil
}

func (p *StaticProvider) RecentObservationsAt(_ context.Context, locID string, maxResults int) ([]domain.RawRecord, error) {
	if err, ok := p.Failures[locID]; ok {
		return nil, err
	}
	return truncate(p.ByHotspot[locID], maxResults), nil
}

func (p *StaticProvider) RecentObservationsNear(_ context.Context, q ports.ObservationQuery) ([]domain.RawRecord, error) {
	return truncate(p.Observations, q.MaxResults), nil
}

func truncate(recs []domain.RawRecord, n int) []domain.RawRecord {
	if n > 0 && len(recs) > n {
		recs = recs[:n]
	}
	out := make([]domain.RawRecord, len(recs))
	copy(out, recs)
	return out
}
