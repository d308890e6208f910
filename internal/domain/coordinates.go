package domain

import "math"

// Immutable geographic coordinates (longitude, latitude) in degrees.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for GeoJSON compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Valid reports whether both components are finite and inside the WGS84 ranges.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Point is a position that may be unknown.
// The zero value is unknown; an unknown Point never carries meaningful coordinates.
type Point struct {
	Coordinates
	Known bool
}

// PointAt returns a known Point for valid coordinates and an unknown Point otherwise.
func PointAt(lat, lon float64) Point {
	c := Coordinates{Lon: lon, Lat: lat}
	if !c.Valid() {
		return Point{}
	}
	return Point{Coordinates: c, Known: true}
}
