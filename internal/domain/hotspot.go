package domain

// Decoded upstream record (hotspot or observation) before normalization.
// Field names vary between feeds; see services.NormalizeHotspot.
type RawRecord map[string]any

const UnknownHotspotName = "Unknown hotspot"

// Represents a birding hotspot in canonical form.
// ID may be empty when the upstream record carried no identifier, and
// Point is unknown when no usable coordinate could be recovered.
type Hotspot struct {
	ID                string
	Name              string
	Point             Point
	NumSpeciesAllTime *int
	LatestObsDt       string
}

// Return the display name, falling back to a placeholder.
func (h Hotspot) DisplayName() string {
	if h.Name == "" {
		return UnknownHotspotName
	}
	return h.Name
}
