package services

import (
	"hotspot-finder-service/internal/domain"
	"math"
)

const (
	DefaultEarthRadiusKm = 6371.0
	DefaultMatchRadiusKm = 0.5
	DefaultMaxDisplayKm  = 8.0

	// radiusToleranceKm absorbs floating point error in haversine results
	// so a point placed exactly on a radius counts as inside it.
	radiusToleranceKm = 1e-9
)

// Params holds the tunable constants of the matching and ranking engine.
// A MaxDisplayKm <= 0 disables the display radius filter.
type Params struct {
	EarthRadiusKm float64
	MatchRadiusKm float64
	MaxDisplayKm  float64
}

func DefaultParams() Params {
	return Params{
		EarthRadiusKm: DefaultEarthRadiusKm,
		MatchRadiusKm: DefaultMatchRadiusKm,
		MaxDisplayKm:  DefaultMaxDisplayKm,
	}
}

// withDefaults fills zero-valued radii so a partially populated Params stays usable.
// MaxDisplayKm is left alone because zero is meaningful there.
func (p Params) withDefaults() Params {
	if p.EarthRadiusKm <= 0 {
		p.EarthRadiusKm = DefaultEarthRadiusKm
	}
	if p.MatchRadiusKm <= 0 {
		p.MatchRadiusKm = DefaultMatchRadiusKm
	}
	return p
}

// DistanceKm returns the great-circle (haversine) distance between a and b
// on a sphere of radius earthRadiusKm.
// Both coordinates must be valid; callers map unknown points to +Inf themselves.
func DistanceKm(a, b domain.Coordinates, earthRadiusKm float64) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLon := degreesToRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(a.Lat))*math.Cos(degreesToRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// pointDistanceKm is DistanceKm lifted to possibly-unknown points.
func pointDistanceKm(a, b domain.Point, earthRadiusKm float64) float64 {
	if !a.Known || !b.Known {
		return math.Inf(1)
	}
	return DistanceKm(a.Coordinates, b.Coordinates, earthRadiusKm)
}

// withinRadius reports whether d lies inside the inclusive radius.
func withinRadius(d, radiusKm float64) bool {
	return !math.IsInf(d, 1) && d <= radiusKm+radiusToleranceKm
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
