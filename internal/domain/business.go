package domain

import "context"

// Attribution is appended to every response per Yelp's display requirements.
const Attribution = "Results powered by Yelp"

// BusinessRecord is one business as returned by the upstream search, with
// every optional field explicitly defaulted. It lives for a single
// request/response cycle and is never persisted.
type BusinessRecord struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Price       string  `json:"price,omitempty"` // display string, e.g. "$$"
	DistanceM   int     `json:"distance_m"`
	Address     string  `json:"address"`
	URL         string  `json:"url"`
	YelpID      string  `json:"yelp_id"`
}

// ScoredResult is a BusinessRecord with its derived credibility score.
// Never mutated after creation.
type ScoredResult struct {
	BusinessRecord
	Score float64 `json:"score"`
}

// Center echoes the search coordinate and radius in the response envelope.
type Center struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	RadiusM int     `json:"radius_m"`
}

// SearchResponse is the complete response envelope for one search.
type SearchResponse struct {
	Term        string         `json:"term"`
	Center      Center         `json:"center"`
	Count       int            `json:"count"`
	Results     []ScoredResult `json:"results"`
	Attribution string         `json:"attribution"`
}

// BusinessSearcher fetches raw business records for a validated query.
type BusinessSearcher interface {
	Search(ctx context.Context, q SearchQuery) ([]BusinessRecord, error)
}
