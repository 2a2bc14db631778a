// Package search orchestrates one request: cache lookup, upstream fetch,
// re-ranking, and cache fill.
package search

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/top-places-service/internal/cache"
	"github.com/couchcryptid/top-places-service/internal/domain"
	"github.com/couchcryptid/top-places-service/internal/observability"
)

// Service serves validated search queries, consulting the response cache
// before the upstream searcher.
type Service struct {
	searcher domain.BusinessSearcher
	cache    *cache.ResponseCache
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Service with the given collaborators.
func New(searcher domain.BusinessSearcher, c *cache.ResponseCache, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		searcher: searcher,
		cache:    c,
		logger:   logger,
		metrics:  metrics,
	}
}

// TopPlaces returns the re-ranked response for q, from cache when a fresh
// entry exists. On a miss the upstream fetch runs to completion even if the
// caller's context is cancelled mid-flight in a concurrent server; the filled
// cache entry then serves later identical queries.
func (s *Service) TopPlaces(ctx context.Context, q domain.SearchQuery) (*domain.SearchResponse, error) {
	key := q.CacheKey()

	if resp, ok := s.cache.Get(key); ok {
		s.metrics.SearchRequests.WithLabelValues("hit").Inc()
		s.logger.Debug("cache hit", "term", q.Term, "key", key)
		return resp, nil
	}

	records, err := s.searcher.Search(ctx, q)
	if err != nil {
		s.metrics.SearchRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	resp := domain.Rank(q, records)

	s.cache.Set(key, resp)
	s.metrics.SearchRequests.WithLabelValues("miss").Inc()
	s.metrics.CacheEntries.Set(float64(s.cache.Len()))

	s.logger.Info("search completed",
		"term", q.Term,
		"pool_size", len(records),
		"count", resp.Count,
	)
	return resp, nil
}

// CacheLen reports current cache occupancy for the health endpoint.
func (s *Service) CacheLen() int {
	return s.cache.Len()
}
