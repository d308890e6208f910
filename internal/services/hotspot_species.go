package services

import (
	"context"
	"hotspot-finder-service/internal/platform/obs"
	"hotspot-finder-service/internal/ports"
	"strings"

	"github.com/rotisserie/eris"
)

// HotspotSpecies returns the distinct species recently reported at locID,
// in the order the feed first lists them.
func HotspotSpecies(
	ctx context.Context,
	locID string,
	maxResults int,
	provider ports.ObservationProvider,
) (_ []string, err error) {
	defer obs.Time(ctx, "services.HotspotSpecies")(&err)

	locID = strings.TrimSpace(locID)
	if locID == "" {
		return nil, eris.New("hotspot species: locID must be non-empty")
	}

	recs, err := provider.RecentObservationsAt(ctx, locID, maxResults)
	if err != nil {
		return nil, eris.Wrapf(err, "hotspot species: recent observations at %q", locID)
	}

	return DedupeSpecies(NormalizeObservations(recs)), nil
}
