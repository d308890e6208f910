package services

import (
	"hotspot-finder-service/internal/domain"
)

// Enrich runs the full pipeline over raw upstream records:
// normalize, match observations, then rank and filter by distance from ref.
// It is a pure function of its inputs.
func Enrich(
	rawHotspots []domain.RawRecord,
	rawObservations []domain.RawRecord,
	ref domain.Point,
	params Params,
) domain.RankResult {
	hotspots := NormalizeHotspots(rawHotspots)
	observations := NormalizeObservations(rawObservations)

	matched := MatchObservations(observations, hotspots, params)

	res := RankAndFilter(hotspots, matched.Species, ref, params)
	res.Stats = matched.Stats
	return res
}
