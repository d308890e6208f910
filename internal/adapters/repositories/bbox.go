package repositories

import (
	"hotspot-finder-service/internal/domain"
	"math"
)

// eBird's default search radius when none is given.
const defaultSearchDistKm = 25.0

const kmPerDegreeLat = 111.195

// Axis-aligned search window in degrees.
// Windows crossing the antimeridian are clamped rather than wrapped.
type bbox struct {
	minLat, maxLat float64
	minLon, maxLon float64
}

func searchBox(ref domain.Coordinates, distKm float64) bbox {
	if distKm <= 0 {
		distKm = defaultSearchDistKm
	}

	dLat := distKm / kmPerDegreeLat

	dLon := 180.0
	if cos := math.Cos(ref.Lat * math.Pi / 180); cos > 1e-6 {
		dLon = math.Min(180, distKm/(kmPerDegreeLat*cos))
	}

	return bbox{
		minLat: math.Max(-90, ref.Lat-dLat),
		maxLat: math.Min(90, ref.Lat+dLat),
		minLon: math.Max(-180, ref.Lon-dLon),
		maxLon: math.Min(180, ref.Lon+dLon),
	}
}

// Shape a catalog row like an eBird hotspot record.
func hotspotRecord(id, name string, lat, lon float64, numSpecies *int64, latestObsDt *string) domain.RawRecord {
	rec := domain.RawRecord{
		"locId":   id,
		"locName": name,
		"lat":     lat,
		"lng":     lon,
	}
	if numSpecies != nil {
		rec["numSpeciesAllTime"] = float64(*numSpecies)
	}
	if latestObsDt != nil && *latestObsDt != "" {
		rec["latestObsDt"] = *latestObsDt
	}
	return rec
}
