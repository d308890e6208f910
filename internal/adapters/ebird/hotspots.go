package ebird

import (
	"context"
	"hotspot-finder-service/internal/domain"
	"hotspot-finder-service/internal/platform/obs"
	"hotspot-finder-service/internal/ports"
	"net/url"
	"strconv"
)

// NearbyHotspots lists hotspots around q.Ref via /v2/ref/hotspot/geo.
// Zero DistKm or MaxResults are left to eBird's defaults.
func (c *Client) NearbyHotspots(ctx context.Context, q ports.HotspotQuery) (_ []domain.RawRecord, err error) {
	defer obs.Time(ctx, "ebird.NearbyHotspots")(&err)

	query := url.Values{}
	query.Set("lat", formatCoord(q.Ref.Lat))
	query.Set("lng", formatCoord(q.Ref.Lon))
	if q.DistKm > 0 {
		query.Set("dist", strconv.FormatFloat(q.DistKm, 'f', -1, 64))
	}
	if q.MaxResults > 0 {
		query.Set("maxResults", strconv.Itoa(q.MaxResults))
	}
	query.Set("fmt", "json")

	return c.getRecords(ctx, "hotspot_geo", "/v2/ref/hotspot/geo", query)
}
