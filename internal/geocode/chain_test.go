package geocode_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/tourcrawl/internal/config"
	"github.com/jonesrussell/tourcrawl/internal/geocode"
	"github.com/jonesrussell/tourcrawl/internal/logger"
)

// googleOK responds with one result at the given coordinates.
func googleOK(lat, lng float64, locationType string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"status": "OK",
			"results": [{"geometry": {
				"location": {"lat": %f, "lng": %f},
				"location_type": %q
			}}]
		}`, lat, lng, locationType)
	}
}

// nominatimOK responds with one result at the given coordinates.
func nominatimOK(lat, lng float64) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `[{"lat": "%f", "lon": "%f"}]`, lat, lng)
	}
}

func newChain(t *testing.T, googleURL, nominatimURL, apiKey string) *geocode.Chain {
	t.Helper()
	return geocode.NewChain(config.GeocodingConfig{
		Enabled:      true,
		GoogleAPIKey: apiKey,
		Timeout:      2 * time.Second,
		GoogleURL:    googleURL,
		NominatimURL: nominatimURL,
	}, logger.NewNoOp())
}

func TestChain_PrimaryResolves(t *testing.T) {
	google := httptest.NewServer(googleOK(24.8259, 121.0714, "ROOFTOP"))
	defer google.Close()
	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("fallback called although primary succeeded")
	}))
	defer nominatim.Close()

	chain := newChain(t, google.URL, nominatim.URL, "test-key")
	result := chain.Resolve(context.Background(), "新竹縣新埔鎮義民路三段360號")

	require.NotNil(t, result)
	assert.Equal(t, geocode.SourceGoogle, result.Source)
	assert.Equal(t, 0.9, result.Confidence)
	assert.InDelta(t, 24.8259, result.Lat, 1e-4)
	assert.InDelta(t, 121.0714, result.Lng, 1e-4)
}

func TestChain_FallsBackWhenPrimaryFails(t *testing.T) {
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer google.Close()
	nominatim := httptest.NewServer(nominatimOK(24.8, 121.0))
	defer nominatim.Close()

	chain := newChain(t, google.URL, nominatim.URL, "test-key")
	result := chain.Resolve(context.Background(), "新竹縣新埔鎮")

	require.NotNil(t, result)
	assert.Equal(t, geocode.SourceNominatim, result.Source)
	assert.Equal(t, 0.6, result.Confidence)
	assert.Equal(t, 24.8, result.Lat)
	assert.Equal(t, 121.0, result.Lng)
}

func TestChain_FallsBackWhenPrimaryHasNoMatch(t *testing.T) {
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": "ZERO_RESULTS", "results": []}`)
	}))
	defer google.Close()
	nominatim := httptest.NewServer(nominatimOK(23.5, 120.5))
	defer nominatim.Close()

	chain := newChain(t, google.URL, nominatim.URL, "test-key")
	result := chain.Resolve(context.Background(), "不存在的地址")

	require.NotNil(t, result)
	assert.Equal(t, geocode.SourceNominatim, result.Source)
}

func TestChain_WithoutAPIKeySkipsPrimary(t *testing.T) {
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("primary called without an API key")
	}))
	defer google.Close()
	nominatim := httptest.NewServer(nominatimOK(25.03, 121.56))
	defer nominatim.Close()

	chain := newChain(t, google.URL, nominatim.URL, "")
	result := chain.Resolve(context.Background(), "台北市信義區")

	require.NotNil(t, result)
	assert.Equal(t, geocode.SourceNominatim, result.Source)
}

func TestChain_DiscardsOutOfBoundsResult(t *testing.T) {
	// Tokyo: outside the Taiwan bounding box from every provider.
	google := httptest.NewServer(googleOK(35.68, 139.69, "ROOFTOP"))
	defer google.Close()
	nominatim := httptest.NewServer(nominatimOK(35.68, 139.69))
	defer nominatim.Close()

	chain := newChain(t, google.URL, nominatim.URL, "test-key")
	result := chain.Resolve(context.Background(), "東京都")

	assert.Nil(t, result)
	assert.Equal(t, int64(1), chain.Stats().Unresolved)
}

func TestChain_CachesResolvedAddresses(t *testing.T) {
	var calls int
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		googleOK(24.8, 121.0, "ROOFTOP")(w, r)
	}))
	defer google.Close()
	nominatim := httptest.NewServer(nominatimOK(24.8, 121.0))
	defer nominatim.Close()

	chain := newChain(t, google.URL, nominatim.URL, "test-key")

	first := chain.Resolve(context.Background(), "新竹縣新埔鎮")
	second := chain.Resolve(context.Background(), "新竹縣新埔鎮")

	require.NotNil(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	stats := chain.Stats()
	assert.Equal(t, int64(1), stats.Resolved)
	assert.Equal(t, int64(1), stats.CacheHits)
}

func TestChain_EmptyAddress(t *testing.T) {
	chain := newChain(t, "http://invalid.test", "http://invalid.test", "")
	assert.Nil(t, chain.Resolve(context.Background(), ""))
}
