package domain

import "strings"

// Represents a single species sighting from the observation feed.
// LocID and Point are both optional; the matcher prefers LocID.
type Observation struct {
	CommonName     string
	ScientificName string
	SpeciesCode    string
	LocID          string
	Point          Point
	ObsDt          string
}

// DisplayName prefers the common name, then the scientific name, then the species code.
func (o Observation) DisplayName() string {
	switch {
	case o.CommonName != "":
		return o.CommonName
	case o.ScientificName != "":
		return o.ScientificName
	default:
		return o.SpeciesCode
	}
}

// DedupKey identifies the species for deduplication.
// The species code wins over any name; comparison is case-insensitive.
// An empty key means the observation is unusable.
func (o Observation) DedupKey() string {
	if code := strings.TrimSpace(o.SpeciesCode); code != "" {
		return "code:" + strings.ToLower(code)
	}
	if name := strings.TrimSpace(o.DisplayName()); name != "" {
		return "name:" + strings.ToLower(name)
	}
	return ""
}

func (o Observation) Usable() bool { return o.DedupKey() != "" }
