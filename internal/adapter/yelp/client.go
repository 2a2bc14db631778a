package yelp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/top-places-service/internal/domain"
	"github.com/couchcryptid/top-places-service/internal/observability"
)

const (
	defaultBaseURL = "https://api.yelp.com/v3/businesses/search"
	userAgent      = "TopPlacesAPI/1.0"

	// requestTimeout bounds every outbound call. No retries happen here;
	// retrying, if ever wanted, belongs to the caller.
	requestTimeout = 10 * time.Second

	// poolMultiplier widens the raw result pool relative to the display
	// limit so the re-ranker has candidates beyond Yelp's own ordering,
	// capped at Yelp's page maximum.
	poolMultiplier = 5
	maxPageSize    = 50

	// maxDiagnosticBytes truncates upstream error bodies before they are
	// surfaced to callers or logs.
	maxDiagnosticBytes = 200
)

// Client implements domain.BusinessSearcher against the Yelp Fusion API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Yelp search client authenticated with the given bearer
// token.
func NewClient(token string, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: defaultBaseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Search issues one business search and maps the response to domain records.
// Failures are typed: domain.ErrRateLimited on 429, domain.ErrUpstreamTimeout
// on transport timeout, *domain.UpstreamError otherwise.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]domain.BusinessRecord, error) {
	params := url.Values{
		"term":      {q.Term},
		"latitude":  {strconv.FormatFloat(q.Lat, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(q.Lng, 'f', -1, 64)},
		"radius":    {strconv.Itoa(min(q.RadiusM, domain.MaxRadiusM))},
		"limit":     {strconv.Itoa(min(q.Limit*poolMultiplier, maxPageSize))},
	}
	if q.OpenNow {
		params.Set("open_now", "true")
	}
	if p := q.PriceParam(); p != "" {
		params.Set("price", p)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.metrics.UpstreamRequests.WithLabelValues("rate_limited").Inc()
		c.logger.Warn("yelp rate limit hit")
		return nil, domain.ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		diag := readDiagnostic(resp.Body)
		c.logger.Warn("yelp request failed", "status", resp.StatusCode, "body", diag)
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Message: diag}
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, &domain.UpstreamError{Message: fmt.Sprintf("decode response: %v", err)}
	}

	c.metrics.UpstreamRequests.WithLabelValues("success").Inc()

	records := make([]domain.BusinessRecord, 0, len(body.Businesses))
	for _, biz := range body.Businesses {
		records = append(records, biz.toRecord())
	}
	return records, nil
}

func (c *Client) transportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		c.metrics.UpstreamRequests.WithLabelValues("timeout").Inc()
		c.logger.Warn("yelp request timed out")
		return fmt.Errorf("yelp search: %w", domain.ErrUpstreamTimeout)
	}
	c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
	c.logger.Warn("yelp request failed", "error", err)
	return &domain.UpstreamError{Message: fmt.Sprintf("request failed: %v", err)}
}

// readDiagnostic reads at most maxDiagnosticBytes of an error body.
func readDiagnostic(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxDiagnosticBytes))
	return string(b)
}

// Yelp Fusion API response types.

type response struct {
	Businesses []business `json:"businesses"`
}

type business struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Price       string   `json:"price"`
	Distance    float64  `json:"distance"`
	URL         string   `json:"url"`
	Location    location `json:"location"`
}

type location struct {
	DisplayAddress []string `json:"display_address"`
}

// toRecord maps an upstream business to a domain record with every optional
// field explicitly defaulted.
func (b business) toRecord() domain.BusinessRecord {
	name := b.Name
	if name == "" {
		name = "Unknown"
	}
	rating := b.Rating
	if rating < 0 || math.IsNaN(rating) {
		rating = 0
	}
	reviews := b.ReviewCount
	if reviews < 0 {
		reviews = 0
	}
	return domain.BusinessRecord{
		Name:        name,
		Rating:      rating,
		ReviewCount: reviews,
		Price:       b.Price,
		DistanceM:   int(b.Distance),
		Address:     strings.Join(b.Location.DisplayAddress, ", "),
		URL:         b.URL,
		YelpID:      b.ID,
	}
}
