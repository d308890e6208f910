package ebird

import (
	"context"
	"hotspot-finder-service/internal/domain"
	"hotspot-finder-service/internal/metrics"
	"hotspot-finder-service/internal/ports"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

const tokenHeader = "X-eBirdApiToken"

func (c *Client) newRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}

	req.Header.Set(tokenHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// getRecords issues a GET against endpoint and decodes a JSON array of records.
// endpoint labels metrics; path is the concrete request path.
func (c *Client) getRecords(
	ctx context.Context,
	endpoint string,
	path string,
	query url.Values,
) ([]domain.RawRecord, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "wait for rate limiter")
		}
	}

	req, err := c.newRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.session.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, eris.Wrapf(err, "execute request %s", endpoint)
	}
	defer resp.Body.Close()

	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ports.StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	var records []domain.RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, eris.Wrapf(err, "decode %s response", endpoint)
	}
	if records == nil {
		records = []domain.RawRecord{}
	}

	return records, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
