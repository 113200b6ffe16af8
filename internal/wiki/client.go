// internal/wiki/client.go
//
// HTTP client for a MediaWiki-style action API.
// Responsibilities:
//   - Nearest-article lookup via list=geosearch (NearestTitle).
//   - Introductory extract lookup via prop=extracts (FirstSentence).
//
// Failure policy:
//   Every transport, status, timeout, or decode failure is logged at debug and
//   folded into the "nothing found" value of the call (absent title or the
//   SummaryUnavailable sentinel). Callers never see an error from this package.
//
// Each call runs under its own timeout and waits on a shared token bucket.

package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/geoguess/internal/geo"
)

const (
	// DefaultEndpoint is the English Wikipedia action API.
	DefaultEndpoint = "https://en.wikipedia.org/w/api.php"
	// DefaultRadius is the geosearch radius in meters.
	DefaultRadius = 10000
	// DefaultTimeout bounds a single API round-trip.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies the server to the API operators.
	DefaultUserAgent = "geoguess/1.0 (https://github.com/robalobadob/geoguess)"
)

// Options configures a Client. Zero fields take the package defaults.
type Options struct {
	Endpoint  string
	Radius    int
	Timeout   time.Duration
	RateLimit float64 // requests per second; <= 0 disables throttling
	UserAgent string
	// HTML requests extracts as HTML and converts them with goquery instead of
	// asking the API for plain text.
	HTML bool
}

// Client talks to the encyclopedia API. It is safe for concurrent use.
type Client struct {
	endpoint   string
	radius     int
	timeout    time.Duration
	userAgent  string
	html       bool
	limiter    *rate.Limiter
	HTTPClient *http.Client
}

// New constructs a Client from opts.
func New(opts Options) *Client {
	c := &Client{
		endpoint:   opts.Endpoint,
		radius:     opts.Radius,
		timeout:    opts.Timeout,
		userAgent:  opts.UserAgent,
		html:       opts.HTML,
		HTTPClient: &http.Client{},
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.radius <= 0 {
		c.radius = DefaultRadius
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return c
}

// get issues one GET with params and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	params.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

type geosearchResponse struct {
	Query *struct {
		Geosearch []struct {
			PageID int     `json:"pageid"`
			Title  string  `json:"title"`
			Dist   float64 `json:"dist"`
		} `json:"geosearch"`
	} `json:"query"`
}

// NearestTitle returns the title of the closest article within the search
// radius of at. ok is false when nothing was found or the lookup failed for
// any reason.
func (c *Client) NearestTitle(ctx context.Context, at geo.Coordinate) (title string, ok bool) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "geosearch")
	params.Set("gscoord", at.Pipe())
	params.Set("gsradius", strconv.Itoa(c.radius))
	params.Set("gslimit", "1")

	var res geosearchResponse
	if err := c.get(ctx, params, &res); err != nil {
		log.Debug().Err(err).Float64("lat", at.Lat).Float64("lng", at.Lng).Msg("geosearch failed")
		return "", false
	}
	if res.Query == nil || len(res.Query.Geosearch) == 0 || res.Query.Geosearch[0].Title == "" {
		return "", false
	}
	return res.Query.Geosearch[0].Title, true
}
