package dto

import "hotspot-finder-service/internal/domain"

type ObservationResponse struct {
	ComName     string   `json:"com_name,omitempty"`
	SciName     string   `json:"sci_name,omitempty"`
	SpeciesCode string   `json:"species_code,omitempty"`
	LocID       string   `json:"loc_id,omitempty"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	ObsDt       string   `json:"obs_dt,omitempty"`
}

type ListObservationsResponse struct {
	Observations []ObservationResponse `json:"observations"`
}

type HotspotSpeciesResponse struct {
	LocID   string   `json:"loc_id"`
	Species []string `json:"species"`
	Count   int      `json:"count"`
}

func FromObservation(o domain.Observation) ObservationResponse {
	res := ObservationResponse{
		ComName:     o.CommonName,
		SciName:     o.ScientificName,
		SpeciesCode: o.SpeciesCode,
		LocID:       o.LocID,
		ObsDt:       o.ObsDt,
	}
	if o.Point.Known {
		lat, lng := o.Point.Lat, o.Point.Lon
		res.Lat = &lat
		res.Lng = &lng
	}
	return res
}
