package services

import (
	"context"
	"hotspot-finder-service/internal/domain"
	"hotspot-finder-service/internal/platform/obs"
	"hotspot-finder-service/internal/ports"
	"slices"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidReference = eris.New("reference point must be a valid latitude/longitude")

const maxConcurrentSpeciesLookups = 5

type FindHotspotsRequest struct {
	Ref                   domain.Point
	DistKm                float64
	MaxResults            int
	ObservationMaxResults int
	// Number of nearest hotspots whose own recent observations are fetched
	// in addition to the area-wide observation search. Zero disables it.
	SpeciesLookups int
	Params         Params
}

// FindNearbyHotspots fetches hotspots and recent observations around req.Ref
// and returns them enriched, ranked and filtered.
//
// The hotspot search and the area observation search run concurrently; both
// must succeed. Per-hotspot observation lookups are best effort: a failed
// lookup is logged and the remaining hotspots are still enriched.
func FindNearbyHotspots(
	ctx context.Context,
	req FindHotspotsRequest,
	hotspotProvider ports.HotspotProvider,
	observationProvider ports.ObservationProvider,
) (_ domain.RankResult, err error) {
	defer obs.Time(ctx, "services.FindNearbyHotspots")(&err)

	if !req.Ref.Known {
		return domain.RankResult{}, ErrInvalidReference
	}

	var (
		rawHotspots     []domain.RawRecord
		rawObservations []domain.RawRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := hotspotProvider.NearbyHotspots(gctx, ports.HotspotQuery{
			Ref:        req.Ref.Coordinates,
			DistKm:     req.DistKm,
			MaxResults: req.MaxResults,
		})
		if err != nil {
			return eris.Wrap(err, "find hotspots: search hotspots")
		}
		rawHotspots = recs
		return nil
	})

	if observationProvider != nil {
		g.Go(func() error {
			recs, err := observationProvider.RecentObservationsNear(gctx, ports.ObservationQuery{
				Ref:        req.Ref.Coordinates,
				MaxResults: req.ObservationMaxResults,
			})
			if err != nil {
				return eris.Wrap(err, "find hotspots: search recent observations")
			}
			rawObservations = recs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.RankResult{}, err
	}

	if observationProvider != nil && req.SpeciesLookups > 0 {
		extra := fetchHotspotObservations(ctx, req, rawHotspots, observationProvider)
		rawObservations = append(slices.Clip(rawObservations), extra...)
	}

	return Enrich(rawHotspots, rawObservations, req.Ref, req.Params), nil
}

type hotspotObservations struct {
	locID   string
	records []domain.RawRecord
}

// fetchHotspotObservations pulls recent observations for the req.SpeciesLookups
// nearest identified hotspots. Returned records are copies stamped with the
// hotspot ID so the matcher attributes them exactly.
func fetchHotspotObservations(
	ctx context.Context,
	req FindHotspotsRequest,
	rawHotspots []domain.RawRecord,
	provider ports.ObservationProvider,
) []domain.RawRecord {
	targets := nearestIdentified(NormalizeHotspots(rawHotspots), req.Ref, req.Params, req.SpeciesLookups)
	if len(targets) == 0 {
		return nil
	}

	results := make([]hotspotObservations, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSpeciesLookups)

	for i, locID := range targets {
		i, locID := i, locID
		g.Go(func() error {
			recs, err := provider.RecentObservationsAt(gctx, locID, req.ObservationMaxResults)
			if err != nil {
				zap.L().Warn("hotspot observation lookup failed",
					zap.String("loc_id", locID),
					zap.String("req_id", obs.RequestID(ctx)),
					zap.Error(err),
				)
				return nil
			}
			results[i] = hotspotObservations{locID: locID, records: recs}
			return nil
		})
	}
	_ = g.Wait()

	var out []domain.RawRecord
	for _, r := range results {
		for _, rec := range r.records {
			stamped := make(domain.RawRecord, len(rec)+1)
			for k, v := range rec {
				stamped[k] = v
			}
			stamped["locId"] = r.locID
			out = append(out, stamped)
		}
	}
	return out
}

// nearestIdentified returns up to n distinct hotspot IDs ordered by distance from ref.
func nearestIdentified(hotspots []domain.Hotspot, ref domain.Point, params Params, n int) []string {
	ranked := RankAndFilter(hotspots, nil, ref, params)

	seen := make(map[string]struct{}, n)
	ids := make([]string, 0, n)
	for _, r := range ranked.Hotspots {
		if len(ids) >= n {
			break
		}
		id := r.Hotspot.ID
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
