package services

import "hotspot-finder-service/internal/domain"

// SpeciesSet accumulates species names for one hotspot.
// The first observation of a species decides its display name; later
// observations with the same dedup key are ignored.
type SpeciesSet struct {
	seen  map[string]struct{}
	names []string
}

// Add records the observation and reports whether it introduced a new species.
func (s *SpeciesSet) Add(o domain.Observation) bool {
	key := o.DedupKey()
	if key == "" {
		return false
	}

	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[key]; ok {
		return false
	}

	s.seen[key] = struct{}{}
	s.names = append(s.names, o.DisplayName())
	return true
}

func (s *SpeciesSet) Len() int { return len(s.names) }

// Names returns a copy of the display names in first-seen order.
func (s *SpeciesSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// DedupeSpecies returns the distinct species names in the observation list.
func DedupeSpecies(observations []domain.Observation) []string {
	var set SpeciesSet
	for _, o := range observations {
		set.Add(o)
	}
	return set.Names()
}
