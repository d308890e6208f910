package services

import (
	"hotspot-finder-service/internal/domain"
	"math"
)

// kmPerDegree is the length of one degree of latitude on the default sphere.
var kmPerDegree = DefaultEarthRadiusKm * math.Pi / 180

// northOf returns the point km kilometres north of (lat, lon) along the meridian.
func northOf(lat, lon, km float64) domain.Point {
	return domain.PointAt(lat+km/kmPerDegree, lon)
}

func hotspotAt(id string, p domain.Point) domain.Hotspot {
	return domain.Hotspot{ID: id, Name: "Hotspot " + id, Point: p}
}

func rawHotspot(id string, p domain.Point) domain.RawRecord {
	return domain.RawRecord{"locId": id, "locName": "Hotspot " + id, "lat": p.Lat, "lng": p.Lon}
}
