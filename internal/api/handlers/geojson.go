package handlers

import (
	"hotspot-finder-service/internal/domain"
	"net/http"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// rankedFeatureCollection renders ranked hotspots as GeoJSON points.
// Hotspots without a known position have no geometry and are left out.
func rankedFeatureCollection(ranked []domain.RankedHotspot) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(ranked)),
	}

	for _, r := range ranked {
		if !r.Hotspot.Point.Known {
			continue
		}

		props := map[string]interface{}{
			"loc_name":      r.Hotspot.DisplayName(),
			"species":       r.Species,
			"species_count": len(r.Species),
		}
		if r.DistanceKnown() {
			props["distance_km"] = r.DistanceKm
		}
		if r.Hotspot.NumSpeciesAllTime != nil {
			props["num_species_all_time"] = *r.Hotspot.NumSpeciesAllTime
		}
		if r.Hotspot.LatestObsDt != "" {
			props["latest_obs_dt"] = r.Hotspot.LatestObsDt
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         r.Hotspot.ID,
			Geometry:   geom.NewPointFlat(geom.XY, r.Hotspot.Point.CoordsToList()),
			Properties: props,
		})
	}

	return fc
}

func writeGeoJSON(w http.ResponseWriter, r *http.Request, ranked []domain.RankedHotspot) {
	b, err := rankedFeatureCollection(ranked).MarshalJSON()
	if err != nil {
		zap.L().Error("encode geojson failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
