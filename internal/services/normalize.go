package services

import (
	"encoding/json"
	"hotspot-finder-service/internal/domain"
	"math"
	"strconv"
	"strings"
)

// Accepted upstream field names per logical attribute, in priority order.
// The first alias present with a non-null, non-blank value decides the
// attribute; later aliases are not consulted even if that value fails to parse.
var (
	latitudeFields    = []string{"lat", "latitude"}
	longitudeFields   = []string{"lng", "longitude", "lon"}
	locIDFields       = []string{"locId", "loc_id", "locid", "locationId"}
	locNameFields     = []string{"locName", "name"}
	speciesCountField = []string{"numSpeciesAllTime"}
	latestObsFields   = []string{"latestObsDt"}
	comNameFields     = []string{"comName", "comname"}
	sciNameFields     = []string{"sciName"}
	speciesCodeFields = []string{"speciesCode", "species_code"}
	obsDtFields       = []string{"obsDt"}
)

// NormalizeHotspot extracts a canonical hotspot from a raw location record.
// It never fails: missing or malformed fields degrade to their zero/unknown state.
func NormalizeHotspot(raw domain.RawRecord) domain.Hotspot {
	h := domain.Hotspot{
		ID:          lookupString(raw, locIDFields),
		Name:        lookupString(raw, locNameFields),
		Point:       lookupPoint(raw),
		LatestObsDt: lookupString(raw, latestObsFields),
	}

	if n, ok := lookupNumber(raw, speciesCountField); ok && isCount(n) {
		count := int(n)
		h.NumSpeciesAllTime = &count
	}

	return h
}

// NormalizeObservation extracts a canonical observation from a raw observation record.
func NormalizeObservation(raw domain.RawRecord) domain.Observation {
	return domain.Observation{
		CommonName:     lookupString(raw, comNameFields),
		ScientificName: lookupString(raw, sciNameFields),
		SpeciesCode:    lookupString(raw, speciesCodeFields),
		LocID:          lookupString(raw, locIDFields),
		Point:          lookupPoint(raw),
		ObsDt:          lookupString(raw, obsDtFields),
	}
}

func NormalizeHotspots(raws []domain.RawRecord) []domain.Hotspot {
	out := make([]domain.Hotspot, 0, len(raws))
	for _, r := range raws {
		out = append(out, NormalizeHotspot(r))
	}
	return out
}

func NormalizeObservations(raws []domain.RawRecord) []domain.Observation {
	out := make([]domain.Observation, 0, len(raws))
	for _, r := range raws {
		out = append(out, NormalizeObservation(r))
	}
	return out
}

func lookupPoint(raw domain.RawRecord) domain.Point {
	lat, ok := lookupNumber(raw, latitudeFields)
	if !ok {
		return domain.Point{}
	}
	lon, ok := lookupNumber(raw, longitudeFields)
	if !ok {
		return domain.Point{}
	}
	return domain.PointAt(lat, lon)
}

// isCount reports whether n is a non-negative whole number that fits in an int32.
func isCount(n float64) bool {
	return n >= 0 && n == math.Trunc(n) && n <= math.MaxInt32
}

// lookup returns the value of the first alias present with a non-nil value.
// Blank strings count as absent.
func lookup(raw domain.RawRecord, fields []string) (any, bool) {
	for _, f := range fields {
		v, ok := raw[f]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func lookupString(raw domain.RawRecord, fields []string) string {
	v, ok := lookup(raw, fields)
	if !ok {
		return ""
	}

	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// lookupNumber parses the first present alias as a finite float.
func lookupNumber(raw domain.RawRecord, fields []string) (float64, bool) {
	v, ok := lookup(raw, fields)
	if !ok {
		return 0, false
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
