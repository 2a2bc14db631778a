package yelp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/top-places-service/internal/domain"
	"github.com/couchcryptid/top-places-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

func testClient(baseURL string) *Client {
	return &Client{
		token:      testToken,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testQuery() domain.SearchQuery {
	return domain.SearchQuery{
		Term:    "sushi",
		Lat:     43.6532,
		Lng:     -79.3832,
		RadiusM: 5000,
		Limit:   10,
	}
}

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.Equal(t, "TopPlacesAPI/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "sushi", r.URL.Query().Get("term"))
		assert.Equal(t, "43.6532", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-79.3832", r.URL.Query().Get("longitude"))
		assert.Equal(t, "5000", r.URL.Query().Get("radius"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"), "10x5 pool capped at page size")
		assert.Empty(t, r.URL.Query().Get("open_now"))
		assert.Empty(t, r.URL.Query().Get("price"))

		resp := response{Businesses: []business{
			{
				ID:          "sushi-one",
				Name:        "Sushi One",
				Rating:      4.5,
				ReviewCount: 320,
				Price:       "$$",
				Distance:    812.7,
				URL:         "https://yelp.example/sushi-one",
				Location:    location{DisplayAddress: []string{"1 Front St", "Toronto, ON"}},
			},
		}}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	records, err := testClient(srv.URL).Search(context.Background(), testQuery())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Sushi One", rec.Name)
	assert.Equal(t, 4.5, rec.Rating)
	assert.Equal(t, 320, rec.ReviewCount)
	assert.Equal(t, "$$", rec.Price)
	assert.Equal(t, 812, rec.DistanceM, "distance should be truncated to meters")
	assert.Equal(t, "1 Front St, Toronto, ON", rec.Address)
	assert.Equal(t, "https://yelp.example/sushi-one", rec.URL)
	assert.Equal(t, "sushi-one", rec.YelpID)
}

func TestSearch_RequestShaping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40000", r.URL.Query().Get("radius"), "radius capped at the Yelp maximum")
		assert.Equal(t, "15", r.URL.Query().Get("limit"), "5x pool below the page cap")
		assert.Equal(t, "true", r.URL.Query().Get("open_now"))
		assert.Equal(t, "1,2", r.URL.Query().Get("price"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response{}))
	}))
	defer srv.Close()

	q := domain.SearchQuery{
		Term:    "coffee",
		Lat:     51.5,
		Lng:     -0.12,
		RadiusM: 40000,
		Limit:   3,
		OpenNow: true,
		Prices:  []int{1, 2},
	}
	_, err := testClient(srv.URL).Search(context.Background(), q)
	require.NoError(t, err)
}

func TestSearch_MissingFieldsDefaulted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"businesses":[{}]}`))
	}))
	defer srv.Close()

	records, err := testClient(srv.URL).Search(context.Background(), testQuery())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Unknown", rec.Name)
	assert.Zero(t, rec.Rating)
	assert.Zero(t, rec.ReviewCount)
	assert.Empty(t, rec.Price)
	assert.Zero(t, rec.DistanceM)
	assert.Empty(t, rec.Address)
	assert.Empty(t, rec.URL)
	assert.Empty(t, rec.YelpID)
}

func TestSearch_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Search(context.Background(), testQuery())
	require.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Search(context.Background(), testQuery())
	require.Error(t, err)

	var upErr *domain.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.Status)
	assert.Contains(t, upErr.Message, "INTERNAL_ERROR")
	assert.NotErrorIs(t, err, domain.ErrRateLimited)
	assert.NotErrorIs(t, err, domain.ErrUpstreamTimeout)
}

func TestSearch_DiagnosticTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 5000)))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Search(context.Background(), testQuery())
	var upErr *domain.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.LessOrEqual(t, len(upErr.Message), maxDiagnosticBytes)
}

func TestSearch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.Search(context.Background(), testQuery())
	require.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}

func TestSearch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // shut down immediately so the dial fails

	_, err := testClient(srv.URL).Search(context.Background(), testQuery())
	require.Error(t, err)

	var upErr *domain.UpstreamError
	assert.ErrorAs(t, err, &upErr)
}
