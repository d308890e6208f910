package services

import (
	"hotspot-finder-service/internal/domain"
	"math"
)

// Find the hotspot nearest to p among hotspots with a known position.
//
// The scan is linear; hotspot lists from a single search are small.
// Tie-breaker ensures deterministic selection when distances are equal:
// the lexicographically lowest ID wins, then the earliest position.
// Returns -1 when p is unknown or no hotspot has a known position.
func nearestHotspot(p domain.Point, hotspots []domain.Hotspot, earthRadiusKm float64) (int, float64) {
	if !p.Known {
		return -1, math.Inf(1)
	}

	best := -1
	minDist := math.Inf(1)

	for i, h := range hotspots {
		if !h.Point.Known {
			continue
		}

		d := DistanceKm(p.Coordinates, h.Point.Coordinates, earthRadiusKm)
		if d < minDist || (d == minDist && best >= 0 && h.ID < hotspots[best].ID) {
			minDist = d
			best = i
		}
	}

	return best, minDist
}
