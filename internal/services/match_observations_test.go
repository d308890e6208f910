package services

import (
	"hotspot-finder-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchExactIDBeatsCloserHotspot(t *testing.T) {
	hotspots := []domain.Hotspot{
		hotspotAt("NEAR", northOf(0, 0, 0.1)),
		hotspotAt("FAR", northOf(0, 0, 30)),
	}
	observations := []domain.Observation{
		{CommonName: "Osprey", SpeciesCode: "osprey", LocID: "FAR", Point: domain.PointAt(0, 0)},
	}

	res := MatchObservations(observations, hotspots, DefaultParams())

	assert.Equal(t, 0, res.Species[0].Len())
	assert.Equal(t, []string{"Osprey"}, res.Species[1].Names())
	assert.Equal(t, domain.MatchStats{ByID: 1}, res.Stats)
}

func TestMatchUnknownIDFallsBackToProximity(t *testing.T) {
	hotspots := []domain.Hotspot{hotspotAt("A", domain.PointAt(0, 0))}
	observations := []domain.Observation{
		{CommonName: "Osprey", LocID: "L-private", Point: northOf(0, 0, 0.2)},
	}

	res := MatchObservations(observations, hotspots, DefaultParams())
	assert.Equal(t, []string{"Osprey"}, res.Species[0].Names())
	assert.Equal(t, 1, res.Stats.ByProximity)
}

func TestMatchProximityCutoff(t *testing.T) {
	hotspots := []domain.Hotspot{hotspotAt("A", domain.PointAt(0, 0))}
	observations := []domain.Observation{
		{CommonName: "Inside", Point: northOf(0, 0, 0.49)},
		{CommonName: "Outside", Point: northOf(0, 0, 0.51)},
	}

	res := MatchObservations(observations, hotspots, DefaultParams())

	assert.Equal(t, []string{"Inside"}, res.Species[0].Names())
	assert.Equal(t, domain.MatchStats{ByProximity: 1, Dropped: 1}, res.Stats)
}

func TestMatchRadiusIsInclusive(t *testing.T) {
	for _, lat := range []float64{0, 42.35, -33.9} {
		hotspots := []domain.Hotspot{hotspotAt("A", domain.PointAt(lat, -71))}
		observations := []domain.Observation{
			{CommonName: "Edge", Point: northOf(lat, -71, 0.5)},
			{CommonName: "Beyond", Point: northOf(lat, -71, 0.501)},
		}

		res := MatchObservations(observations, hotspots, DefaultParams())

		assert.Equal(t, []string{"Edge"}, res.Species[0].Names(), "lat %v", lat)
		assert.Equal(t, domain.MatchStats{ByProximity: 1, Dropped: 1}, res.Stats, "lat %v", lat)
	}
}

func TestMatchCustomRadius(t *testing.T) {
	hotspots := []domain.Hotspot{hotspotAt("A", domain.PointAt(0, 0))}
	observations := []domain.Observation{{CommonName: "Kestrel", Point: northOf(0, 0, 0.9)}}

	params := DefaultParams()
	params.MatchRadiusKm = 1

	res := MatchObservations(observations, hotspots, params)
	assert.Equal(t, 1, res.Species[0].Len())
}

func TestMatchIDCollisionLaterWins(t *testing.T) {
	hotspots := []domain.Hotspot{
		hotspotAt("DUP", domain.PointAt(0, 0)),
		hotspotAt("DUP", domain.PointAt(5, 5)),
	}
	observations := []domain.Observation{{CommonName: "Heron", LocID: "DUP"}}

	res := MatchObservations(observations, hotspots, DefaultParams())
	assert.Equal(t, 0, res.Species[0].Len())
	assert.Equal(t, 1, res.Species[1].Len())
}

func TestMatchTieBreaksOnLowestID(t *testing.T) {
	hotspots := []domain.Hotspot{
		hotspotAt("Z", northOf(0, 0, 0.2)),
		hotspotAt("B", northOf(0, 0, -0.2)),
	}
	observations := []domain.Observation{{CommonName: "Killdeer", Point: domain.PointAt(0, 0)}}

	res := MatchObservations(observations, hotspots, DefaultParams())
	assert.Equal(t, 0, res.Species[0].Len())
	assert.Equal(t, 1, res.Species[1].Len())
}

func TestMatchIgnoresHotspotsWithoutPosition(t *testing.T) {
	hotspots := []domain.Hotspot{
		{ID: "NOWHERE"},
		hotspotAt("FAR", northOf(0, 0, 3)),
	}
	observations := []domain.Observation{{CommonName: "Wren", Point: domain.PointAt(0, 0)}}

	res := MatchObservations(observations, hotspots, DefaultParams())
	assert.Equal(t, 0, res.Species[0].Len())
	assert.Equal(t, 0, res.Species[1].Len())
	assert.Equal(t, 1, res.Stats.Dropped)
}

func TestMatchDropsUnlocatedAndUnusable(t *testing.T) {
	hotspots := []domain.Hotspot{hotspotAt("A", domain.PointAt(0, 0))}
	observations := []domain.Observation{
		{CommonName: "Nowhere Finch"},
		{LocID: "A"},
	}

	res := MatchObservations(observations, hotspots, DefaultParams())
	assert.Equal(t, domain.MatchStats{Dropped: 1, Unusable: 1}, res.Stats)
	assert.Equal(t, 0, res.Species[0].Len())
}

func TestMatchDedupesPerHotspot(t *testing.T) {
	hotspots := []domain.Hotspot{hotspotAt("A", domain.PointAt(0, 0))}
	observations := []domain.Observation{
		{CommonName: "American Robin", SpeciesCode: "amerob", LocID: "A"},
		{CommonName: "AMERICAN ROBIN", SpeciesCode: "AmeRob", LocID: "A"},
		{CommonName: "Blue Jay", SpeciesCode: "blujay", Point: northOf(0, 0, 0.1)},
	}

	res := MatchObservations(observations, hotspots, DefaultParams())
	assert.Equal(t, []string{"American Robin", "Blue Jay"}, res.Species[0].Names())
	assert.Equal(t, 2, res.Stats.ByID)
	assert.Equal(t, 1, res.Stats.ByProximity)
}

func TestMatchDoesNotMutateInputs(t *testing.T) {
	hotspots := []domain.Hotspot{hotspotAt("A", domain.PointAt(0, 0))}
	observations := []domain.Observation{{CommonName: "Crow", LocID: "A"}}

	hotspotsBefore := append([]domain.Hotspot(nil), hotspots...)
	observationsBefore := append([]domain.Observation(nil), observations...)

	_ = MatchObservations(observations, hotspots, DefaultParams())

	require.Equal(t, hotspotsBefore, hotspots)
	require.Equal(t, observationsBefore, observations)
}

func TestNearestHotspot(t *testing.T) {
	hotspots := []domain.Hotspot{
		hotspotAt("A", northOf(0, 0, 5)),
		{ID: "B"},
		hotspotAt("C", northOf(0, 0, 2)),
	}

	i, d := nearestHotspot(domain.PointAt(0, 0), hotspots, DefaultEarthRadiusKm)
	assert.Equal(t, 2, i)
	assert.InDelta(t, 2, d, 1e-6)

	i, _ = nearestHotspot(domain.Point{}, hotspots, DefaultEarthRadiusKm)
	assert.Equal(t, -1, i)

	i, _ = nearestHotspot(domain.PointAt(0, 0), nil, DefaultEarthRadiusKm)
	assert.Equal(t, -1, i)
}
