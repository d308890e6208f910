package services

import (
	"hotspot-finder-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedIDs(rs []domain.RankedHotspot) []string {
	ids := make([]string, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.Hotspot.ID)
	}
	return ids
}

func TestRankAndFilterOrdersAndFilters(t *testing.T) {
	ref := domain.PointAt(0, 0)
	hotspots := []domain.Hotspot{
		hotspotAt("12km", northOf(0, 0, 12)),
		hotspotAt("3km", northOf(0, 0, 3)),
		hotspotAt("8km", northOf(0, 0, 8)),
		hotspotAt("1km", northOf(0, 0, 1)),
	}

	res := RankAndFilter(hotspots, nil, ref, DefaultParams())

	assert.Equal(t, domain.OutcomeFound, res.Outcome)
	assert.Equal(t, 4, res.Candidates)
	assert.Equal(t, []string{"1km", "3km", "8km"}, rankedIDs(res.Hotspots))
	for _, r := range res.Hotspots {
		assert.True(t, r.DistanceKnown())
		assert.NotNil(t, r.Species)
	}
}

func TestRankAndFilterRadiusIsInclusive(t *testing.T) {
	for _, lat := range []float64{0, 42.35, -33.9, 64.1} {
		ref := domain.PointAt(lat, -71)
		hotspots := []domain.Hotspot{
			hotspotAt("edge", northOf(lat, -71, 8)),
			hotspotAt("beyond", northOf(lat, -71, 8.001)),
		}

		res := RankAndFilter(hotspots, nil, ref, DefaultParams())

		assert.Equal(t, []string{"edge"}, rankedIDs(res.Hotspots), "lat %v", lat)
	}
}

func TestRankAndFilterNoneWithinRadius(t *testing.T) {
	ref := domain.PointAt(0, 0)
	var hotspots []domain.Hotspot
	for i, km := range []float64{9, 10, 15, 20, 40} {
		hotspots = append(hotspots, hotspotAt(string(rune('A'+i)), northOf(0, 0, km)))
	}

	res := RankAndFilter(hotspots, nil, ref, DefaultParams())

	assert.Equal(t, domain.OutcomeNoneWithinRadius, res.Outcome)
	assert.Equal(t, 5, res.Candidates)
	assert.NotNil(t, res.Hotspots)
	assert.Empty(t, res.Hotspots)
}

func TestRankAndFilterNoCandidates(t *testing.T) {
	res := RankAndFilter(nil, nil, domain.PointAt(0, 0), DefaultParams())

	assert.Equal(t, domain.OutcomeNoCandidates, res.Outcome)
	assert.Equal(t, 0, res.Candidates)
	assert.NotNil(t, res.Hotspots)
	assert.Empty(t, res.Hotspots)
}

func TestRankAndFilterUnknownPositionSortsLast(t *testing.T) {
	ref := domain.PointAt(0, 0)
	hotspots := []domain.Hotspot{
		{ID: "nowhere"},
		hotspotAt("far", northOf(0, 0, 50)),
		hotspotAt("near", northOf(0, 0, 1)),
	}

	params := DefaultParams()
	params.MaxDisplayKm = 0

	res := RankAndFilter(hotspots, nil, ref, params)
	assert.Equal(t, []string{"near", "far", "nowhere"}, rankedIDs(res.Hotspots))
	assert.True(t, math.IsInf(res.Hotspots[2].DistanceKm, 1))

	res = RankAndFilter(hotspots, nil, ref, DefaultParams())
	assert.Equal(t, []string{"near"}, rankedIDs(res.Hotspots))
}

func TestRankAndFilterStableTies(t *testing.T) {
	ref := domain.PointAt(0, 0)
	hotspots := []domain.Hotspot{
		hotspotAt("first", northOf(0, 0, 2)),
		hotspotAt("second", northOf(0, 0, 2)),
		hotspotAt("closest", northOf(0, 0, 1)),
		hotspotAt("third", northOf(0, 0, 2)),
	}

	res := RankAndFilter(hotspots, nil, ref, DefaultParams())
	assert.Equal(t, []string{"closest", "first", "second", "third"}, rankedIDs(res.Hotspots))
}

func TestRankAndFilterUnknownReference(t *testing.T) {
	hotspots := []domain.Hotspot{hotspotAt("A", domain.PointAt(0, 0))}

	res := RankAndFilter(hotspots, nil, domain.Point{}, DefaultParams())
	assert.Equal(t, domain.OutcomeNoneWithinRadius, res.Outcome)
	assert.Empty(t, res.Hotspots)

	params := DefaultParams()
	params.MaxDisplayKm = 0
	res = RankAndFilter(hotspots, nil, domain.Point{}, params)
	require.Len(t, res.Hotspots, 1)
	assert.False(t, res.Hotspots[0].DistanceKnown())
}

func TestRankAndFilterCarriesSpecies(t *testing.T) {
	ref := domain.PointAt(0, 0)
	hotspots := []domain.Hotspot{
		hotspotAt("B", northOf(0, 0, 2)),
		hotspotAt("A", northOf(0, 0, 1)),
	}
	species := make([]SpeciesSet, 1)
	species[0].Add(domain.Observation{CommonName: "Gadwall"})

	res := RankAndFilter(hotspots, species, ref, DefaultParams())
	require.Len(t, res.Hotspots, 2)
	assert.Equal(t, "A", res.Hotspots[0].Hotspot.ID)
	assert.Empty(t, res.Hotspots[0].Species)
	assert.Equal(t, []string{"Gadwall"}, res.Hotspots[1].Species)
}

func TestRankAndFilterDoesNotMutateInputs(t *testing.T) {
	hotspots := []domain.Hotspot{
		hotspotAt("B", northOf(0, 0, 2)),
		hotspotAt("A", northOf(0, 0, 1)),
	}
	before := append([]domain.Hotspot(nil), hotspots...)

	_ = RankAndFilter(hotspots, nil, domain.PointAt(0, 0), DefaultParams())
	assert.Equal(t, before, hotspots)
}
