package dto

import (
	"hotspot-finder-service/internal/domain"

	olc "github.com/google/open-location-code/go"
)

// Plus codes are emitted at 10 digits (~14 m cells).
const plusCodeLength = 10

type HotspotResponse struct {
	LocID             string   `json:"loc_id"`
	LocName           string   `json:"loc_name"`
	Lat               *float64 `json:"lat"`
	Lng               *float64 `json:"lng"`
	PlusCode          string   `json:"plus_code,omitempty"`
	NumSpeciesAllTime *int     `json:"num_species_all_time,omitempty"`
	LatestObsDt       string   `json:"latest_obs_dt,omitempty"`
}

// RankedHotspotResponse is a hotspot with its distance from the search point.
// DistanceKm is null when the distance is unknown.
type RankedHotspotResponse struct {
	HotspotResponse
	DistanceKm   *float64 `json:"distance_km"`
	Species      []string `json:"species"`
	SpeciesCount int      `json:"species_count"`
}

type ListHotspotsResponse struct {
	Hotspots []RankedHotspotResponse `json:"hotspots"`
}

type MatchStatsResponse struct {
	ByID        int `json:"by_id"`
	ByProximity int `json:"by_proximity"`
	Dropped     int `json:"dropped"`
	Unusable    int `json:"unusable"`
}

type NearbyResponse struct {
	Outcome    string                  `json:"outcome"`
	Candidates int                     `json:"candidates"`
	Hotspots   []RankedHotspotResponse `json:"hotspots"`
	Stats      MatchStatsResponse      `json:"stats"`
}

func FromHotspot(h domain.Hotspot) HotspotResponse {
	res := HotspotResponse{
		LocID:             h.ID,
		LocName:           h.DisplayName(),
		NumSpeciesAllTime: h.NumSpeciesAllTime,
		LatestObsDt:       h.LatestObsDt,
	}
	if h.Point.Known {
		lat, lng := h.Point.Lat, h.Point.Lon
		res.Lat = &lat
		res.Lng = &lng
		res.PlusCode = olc.Encode(lat, lng, plusCodeLength)
	}
	return res
}

func FromRankedHotspot(r domain.RankedHotspot) RankedHotspotResponse {
	res := RankedHotspotResponse{
		HotspotResponse: FromHotspot(r.Hotspot),
		Species:         r.Species,
		SpeciesCount:    len(r.Species),
	}
	if res.Species == nil {
		res.Species = []string{}
	}
	if r.DistanceKnown() {
		d := r.DistanceKm
		res.DistanceKm = &d
	}
	return res
}

func FromRankResult(rr domain.RankResult) NearbyResponse {
	res := NearbyResponse{
		Outcome:    string(rr.Outcome),
		Candidates: rr.Candidates,
		Hotspots:   make([]RankedHotspotResponse, 0, len(rr.Hotspots)),
		Stats: MatchStatsResponse{
			ByID:        rr.Stats.ByID,
			ByProximity: rr.Stats.ByProximity,
			Dropped:     rr.Stats.Dropped,
			Unusable:    rr.Stats.Unusable,
		},
	}
	for _, r := range rr.Hotspots {
		res.Hotspots = append(res.Hotspots, FromRankedHotspot(r))
	}
	return res
}
