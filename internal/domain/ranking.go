package domain

import "math"

// Outcome tells the caller why a ranked list is (or is not) empty.
type Outcome string

const (
	OutcomeFound            Outcome = "found"
	OutcomeNoCandidates     Outcome = "no_candidates"
	OutcomeNoneWithinRadius Outcome = "none_within_radius"
)

// A hotspot with its derived distance and matched species.
// DistanceKm is +Inf when the distance is unknown.
type RankedHotspot struct {
	Hotspot    Hotspot
	DistanceKm float64
	Species    []string
}

func (r RankedHotspot) DistanceKnown() bool { return !math.IsInf(r.DistanceKm, 1) }

// Output of the ranking step.
// Candidates counts hotspots before the display radius filter was applied,
// which lets callers tell "nothing nearby" apart from "nothing at all".
type RankResult struct {
	Hotspots   []RankedHotspot
	Candidates int
	Outcome    Outcome
	Stats      MatchStats
}

// Counts of how observations were attributed during matching.
type MatchStats struct {
	ByID        int
	ByProximity int
	Dropped     int
	Unusable    int
}
