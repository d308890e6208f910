package handlers

import (
	"hotspot-finder-service/internal/api/dto"
	"hotspot-finder-service/internal/domain"
	"hotspot-finder-service/internal/metrics"
	"hotspot-finder-service/internal/ports"
	"hotspot-finder-service/internal/services"
	"net/http"
	"strings"
)

// eBird rejects hotspot searches wider than 500 km.
const maxSearchDistKm = 500.0

// SearchDefaults are applied when a request omits the matching query parameter.
type SearchDefaults struct {
	DistKm                float64
	MaxResults            int
	ObservationMaxResults int
	SpeciesLookups        int
}

// HotspotHandler exposes hotspot search and enrichment endpoints.
// Observations may be nil, in which case observation endpoints answer 503
// and nearby results carry no species.
type HotspotHandler struct {
	Hotspots     ports.HotspotProvider
	Observations ports.ObservationProvider
	Defaults     SearchDefaults
	Params       services.Params
}

// Nearby returns hotspots near lat/lng enriched with recently seen species,
// ordered by distance and limited to the display radius.
// format=geojson switches the body to a GeoJSON FeatureCollection.
func (h *HotspotHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	ref, ok := parseRef(w, r)
	if !ok {
		return
	}

	req := services.FindHotspotsRequest{
		Ref:                   ref,
		ObservationMaxResults: h.Defaults.ObservationMaxResults,
		SpeciesLookups:        h.Defaults.SpeciesLookups,
		Params:                h.Params,
	}

	var err error
	if req.DistKm, err = positiveFloatParam(r, "dist", h.Defaults.DistKm); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.MaxResults, err = positiveIntParam(r, "maxResults", h.Defaults.MaxResults); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := services.FindNearbyHotspots(r.Context(), req, h.Hotspots, h.Observations)
	if err != nil {
		metrics.NearbyResults.WithLabelValues("error").Inc()
		writeUpstreamError(w, r, "nearby", err)
		return
	}
	recordRankMetrics(res)

	if strings.EqualFold(r.URL.Query().Get("format"), "geojson") {
		writeGeoJSON(w, r, res.Hotspots)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRankResult(res))
}

// ListHotspots returns normalized hotspots near lat/lng sorted by distance, without
// species enrichment or display radius filtering.
func (h *HotspotHandler) ListHotspots(w http.ResponseWriter, r *http.Request) {
	ref, ok := parseRef(w, r)
	if !ok {
		return
	}

	q := ports.HotspotQuery{Ref: ref.Coordinates}

	var err error
	if q.DistKm, err = positiveFloatParam(r, "dist", h.Defaults.DistKm); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if q.MaxResults, err = positiveIntParam(r, "maxResults", h.Defaults.MaxResults); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	recs, err := h.Hotspots.NearbyHotspots(r.Context(), q)
	if err != nil {
		writeUpstreamError(w, r, "hotspots", err)
		return
	}

	params := h.Params
	params.MaxDisplayKm = 0
	ranked := services.RankAndFilter(services.NormalizeHotspots(recs), nil, ref, params)

	res := dto.ListHotspotsResponse{
		Hotspots: make([]dto.RankedHotspotResponse, 0, len(ranked.Hotspots)),
	}
	for _, rh := range ranked.Hotspots {
		res.Hotspots = append(res.Hotspots, dto.FromRankedHotspot(rh))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// HotspotSpecies returns the distinct species recently reported at locId.
func (h *HotspotHandler) HotspotSpecies(w http.ResponseWriter, r *http.Request) {
	if h.Observations == nil {
		writeError(w, r, http.StatusServiceUnavailable, "observation source not configured")
		return
	}

	locID := strings.TrimSpace(r.URL.Query().Get("locId"))
	if locID == "" {
		writeError(w, r, http.StatusBadRequest, msgMissingLocID)
		return
	}

	maxResults, err := positiveIntParam(r, "maxResults", h.Defaults.ObservationMaxResults)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	species, err := services.HotspotSpecies(r.Context(), locID, maxResults, h.Observations)
	if err != nil {
		writeUpstreamError(w, r, "hotspot_species", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HotspotSpeciesResponse{
		LocID:   locID,
		Species: species,
		Count:   len(species),
	})
}

// RecentObservations returns normalized recent observations near lat/lng.
func (h *HotspotHandler) RecentObservations(w http.ResponseWriter, r *http.Request) {
	if h.Observations == nil {
		writeError(w, r, http.StatusServiceUnavailable, "observation source not configured")
		return
	}

	ref, ok := parseRef(w, r)
	if !ok {
		return
	}

	maxResults, err := positiveIntParam(r, "maxResults", h.Defaults.ObservationMaxResults)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	recs, err := h.Observations.RecentObservationsNear(r.Context(), ports.ObservationQuery{
		Ref:        ref.Coordinates,
		MaxResults: maxResults,
	})
	if err != nil {
		writeUpstreamError(w, r, "recent_observations", err)
		return
	}

	observations := services.NormalizeObservations(recs)
	res := dto.ListObservationsResponse{
		Observations: make([]dto.ObservationResponse, 0, len(observations)),
	}
	for _, o := range observations {
		res.Observations = append(res.Observations, dto.FromObservation(o))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func recordRankMetrics(res domain.RankResult) {
	metrics.NearbyResults.WithLabelValues(string(res.Outcome)).Inc()
	metrics.ObservationsMatched.WithLabelValues("id").Add(float64(res.Stats.ByID))
	metrics.ObservationsMatched.WithLabelValues("proximity").Add(float64(res.Stats.ByProximity))
	metrics.ObservationsMatched.WithLabelValues("dropped").Add(float64(res.Stats.Dropped))
	metrics.ObservationsMatched.WithLabelValues("unusable").Add(float64(res.Stats.Unusable))
}
