package services

import (
	"cmp"
	"hotspot-finder-service/internal/domain"
	"slices"
)

// RankAndFilter computes each hotspot's distance from ref, orders hotspots by
// ascending distance and drops those beyond params.MaxDisplayKm.
//
// species may be nil or shorter than hotspots; missing entries mean no species.
// Unknown hotspot positions and an unknown ref both yield +Inf distances,
// which sort last and never pass an enabled radius filter.
func RankAndFilter(
	hotspots []domain.Hotspot,
	species []SpeciesSet,
	ref domain.Point,
	params Params,
) domain.RankResult {
	params = params.withDefaults()

	if len(hotspots) == 0 {
		return domain.RankResult{
			Hotspots: []domain.RankedHotspot{},
			Outcome:  domain.OutcomeNoCandidates,
		}
	}

	ranked := make([]domain.RankedHotspot, 0, len(hotspots))
	for i, h := range hotspots {
		r := domain.RankedHotspot{
			Hotspot:    h,
			DistanceKm: pointDistanceKm(ref, h.Point, params.EarthRadiusKm),
			Species:    []string{},
		}
		if i < len(species) {
			r.Species = species[i].Names()
		}
		ranked = append(ranked, r)
	}

	// Stable so that equal distances keep their input order.
	slices.SortStableFunc(ranked, func(a, b domain.RankedHotspot) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})

	filtered := ranked
	if params.MaxDisplayKm > 0 {
		filtered = make([]domain.RankedHotspot, 0, len(ranked))
		for _, r := range ranked {
			if !withinRadius(r.DistanceKm, params.MaxDisplayKm) {
				continue
			}
			filtered = append(filtered, r)
		}
	}

	outcome := domain.OutcomeFound
	if len(filtered) == 0 {
		outcome = domain.OutcomeNoneWithinRadius
	}

	return domain.RankResult{
		Hotspots:   filtered,
		Candidates: len(hotspots),
		Outcome:    outcome,
	}
}
