package ebird

import (
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL           = "https://api.ebird.org"
	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerSecond = 5.0
)

// Client implements ports.HotspotProvider and ports.ObservationProvider
// on top of the eBird API 2.0.
//
// It injects the API token, throttles outgoing requests and decodes
// responses into raw records. Failed calls are not retried.
//
// The client is safe for concurrent use.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
}

type Option func(*Client)

// WithBaseURL points the client at a different API host (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout replaces the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.session = &http.Client{Timeout: d} }
}

// WithRateLimit caps outgoing requests per second. rps <= 0 disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, eris.New("ebird api key is empty")
	}

	c := &Client{
		session: &http.Client{Timeout: DefaultTimeout},
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), int(DefaultRequestsPerSecond)),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}
