package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Query bounds. Radius and page caps mirror the Yelp Fusion API limits.
const (
	MinRadiusM     = 100
	MaxRadiusM     = 40000
	DefaultRadiusM = 5000
	MaxLimit       = 50
	DefaultLimit   = 10
)

// RawQuery holds the unparsed query parameters as received over HTTP.
type RawQuery struct {
	Term    string
	Lat     string
	Lng     string
	RadiusM string
	Limit   string
	OpenNow string
	Price   string
}

// SearchQuery is a validated, immutable search request. Construct it only
// through [ParseQuery].
type SearchQuery struct {
	Term    string
	Lat     float64
	Lng     float64
	RadiusM int
	Limit   int
	OpenNow bool
	Prices  []int // sorted, deduplicated subset of {1,2,3,4}
}

// ParseQuery validates raw parameters and builds a SearchQuery, applying
// defaults for optional fields. All failures wrap [ErrInvalidQuery].
func ParseQuery(raw RawQuery) (SearchQuery, error) {
	term := strings.TrimSpace(raw.Term)
	if term == "" {
		return SearchQuery{}, fmt.Errorf("%w: term is required", ErrInvalidQuery)
	}

	lat, err := parseCoordinate(raw.Lat, "lat", 90)
	if err != nil {
		return SearchQuery{}, err
	}
	lng, err := parseCoordinate(raw.Lng, "lng", 180)
	if err != nil {
		return SearchQuery{}, err
	}

	radius, err := parseBoundedInt(raw.RadiusM, "radius_m", DefaultRadiusM, MinRadiusM, MaxRadiusM)
	if err != nil {
		return SearchQuery{}, err
	}
	limit, err := parseBoundedInt(raw.Limit, "limit", DefaultLimit, 1, MaxLimit)
	if err != nil {
		return SearchQuery{}, err
	}

	openNow := false
	if raw.OpenNow != "" {
		openNow, err = strconv.ParseBool(raw.OpenNow)
		if err != nil {
			return SearchQuery{}, fmt.Errorf("%w: open_now must be a boolean", ErrInvalidQuery)
		}
	}

	prices, err := parsePrices(raw.Price)
	if err != nil {
		return SearchQuery{}, err
	}

	return SearchQuery{
		Term:    term,
		Lat:     lat,
		Lng:     lng,
		RadiusM: radius,
		Limit:   limit,
		OpenNow: openNow,
		Prices:  prices,
	}, nil
}

// CacheKey returns an order-independent normalized representation of the
// query. Coordinates are rendered at full float precision so distinct
// coordinates never alias. The display limit is deliberately excluded:
// identical searches with different limits share one cached envelope.
func (q SearchQuery) CacheKey() string {
	return fmt.Sprintf("%s|%s|%s|%d|%t|%s",
		q.Term,
		strconv.FormatFloat(q.Lat, 'f', -1, 64),
		strconv.FormatFloat(q.Lng, 'f', -1, 64),
		q.RadiusM, q.OpenNow, q.PriceParam())
}

// PriceParam renders the price tier set as the comma-separated form Yelp
// expects, e.g. "1,2". Empty when no filter is set.
func (q SearchQuery) PriceParam() string {
	if len(q.Prices) == 0 {
		return ""
	}
	parts := make([]string, len(q.Prices))
	for i, p := range q.Prices {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

func parseCoordinate(s, name string, bound float64) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidQuery, name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidQuery, name)
	}
	if v < -bound || v > bound {
		return 0, fmt.Errorf("%w: %s must be between %.0f and %.0f", ErrInvalidQuery, name, -bound, bound)
	}
	return v, nil
}

func parseBoundedInt(s, name string, def, minVal, maxVal int) (int, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidQuery, name)
	}
	if v < minVal || v > maxVal {
		return 0, fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidQuery, name, minVal, maxVal)
	}
	return v, nil
}

// parsePrices validates a comma-separated price filter against the exact tier
// set {1,2,3,4}. Spaces are tolerated; any other character is rejected. The
// result is sorted and deduplicated so equivalent filters normalize equal.
func parsePrices(s string) ([]int, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, nil
	}
	var prices []int
	for _, part := range strings.Split(s, ",") {
		if len(part) != 1 || part[0] < '1' || part[0] > '4' {
			return nil, fmt.Errorf("%w: price must be comma-separated values from 1,2,3,4", ErrInvalidQuery)
		}
		p := int(part[0] - '0')
		if !slices.Contains(prices, p) {
			prices = append(prices, p)
		}
	}
	slices.Sort(prices)
	return prices, nil
}
