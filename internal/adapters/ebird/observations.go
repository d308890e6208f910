package ebird

import (
	"context"
	"hotspot-finder-service/internal/domain"
	"hotspot-finder-service/internal/platform/obs"
	"hotspot-finder-service/internal/ports"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// RecentObservationsAt lists recent observations at one hotspot via /v2/data/obs/{locId}/recent.
func (c *Client) RecentObservationsAt(ctx context.Context, locID string, maxResults int) (_ []domain.RawRecord, err error) {
	defer obs.Time(ctx, "ebird.RecentObservationsAt")(&err)

	locID = strings.TrimSpace(locID)
	if locID == "" {
		return nil, eris.New("recent observations: locID must be non-empty")
	}

	query := url.Values{}
	if maxResults > 0 {
		query.Set("maxResults", strconv.Itoa(maxResults))
	}

	path := "/v2/data/obs/" + url.PathEscape(locID) + "/recent"
	return c.getRecords(ctx, "obs_hotspot_recent", path, query)
}

// RecentObservationsNear lists recent observations around q.Ref via /v2/data/obs/geo/recent.
func (c *Client) RecentObservationsNear(ctx context.Context, q ports.ObservationQuery) (_ []domain.RawRecord, err error) {
	defer obs.Time(ctx, "ebird.RecentObservationsNear")(&err)

	query := url.Values{}
	query.Set("lat", formatCoord(q.Ref.Lat))
	query.Set("lng", formatCoord(q.Ref.Lon))
	if q.MaxResults > 0 {
		query.Set("maxResults", strconv.Itoa(q.MaxResults))
	}

	return c.getRecords(ctx, "obs_geo_recent", "/v2/data/obs/geo/recent", query)
}
