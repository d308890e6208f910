package services

import (
	"hotspot-finder-service/internal/domain"
)

// Result of attributing observations to hotspots.
// Species is a side table aligned with the hotspot slice passed to MatchObservations.
type MatchResult struct {
	Species []SpeciesSet
	Stats   domain.MatchStats
}

// MatchObservations attributes each observation to at most one hotspot.
//
// An observation whose LocID names a known hotspot is assigned there
// unconditionally, however far away that hotspot is. Otherwise the nearest
// hotspot with a known position is used if it lies within params.MatchRadiusKm.
// Anything else is dropped. When two hotspots share an ID the later one owns it.
//
// Neither input slice is modified.
func MatchObservations(
	observations []domain.Observation,
	hotspots []domain.Hotspot,
	params Params,
) MatchResult {
	params = params.withDefaults()

	res := MatchResult{Species: make([]SpeciesSet, len(hotspots))}

	byID := make(map[string]int, len(hotspots))
	for i, h := range hotspots {
		if h.ID == "" {
			continue
		}
		byID[h.ID] = i
	}

	for _, o := range observations {
		if !o.Usable() {
			res.Stats.Unusable++
			continue
		}

		if o.LocID != "" {
			if i, ok := byID[o.LocID]; ok {
				res.Species[i].Add(o)
				res.Stats.ByID++
				continue
			}
		}

		i, d := nearestHotspot(o.Point, hotspots, params.EarthRadiusKm)
		if i >= 0 && withinRadius(d, params.MatchRadiusKm) {
			res.Species[i].Add(o)
			res.Stats.ByProximity++
			continue
		}

		res.Stats.Dropped++
	}

	return res
}
