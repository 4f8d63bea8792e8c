package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SourceNominatim identifies results resolved by OpenStreetMap Nominatim.
const SourceNominatim = "nominatim"

// nominatimConfidence is the fixed confidence for fallback results.
// Nominatim reports no precision classifier.
const nominatimConfidence = 0.6

// nominatimUserAgent identifies the crawler to the Nominatim usage policy.
const nominatimUserAgent = "Taiwan Activity Crawler/1.0"

// NominatimProvider resolves addresses against the OpenStreetMap Nominatim
// API. It is the open-data fallback used when the primary provider fails or
// has no configured credential.
type NominatimProvider struct {
	baseURL string
	client  *http.Client
}

// NewNominatimProvider creates a Nominatim provider.
func NewNominatimProvider(baseURL string, client *http.Client) *NominatimProvider {
	return &NominatimProvider{
		baseURL: baseURL,
		client:  client,
	}
}

// Name returns the provider name.
func (p *NominatimProvider) Name() string {
	return SourceNominatim
}

// nominatimResult is one entry of the search response.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address. Returns (nil, nil) when there is no match.
func (p *NominatimProvider) Geocode(ctx context.Context, address string) (*Result, error) {
	params := url.Values{}
	params.Set("q", address+countrySuffix)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "tw")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request returned status %d", resp.StatusCode)
	}

	var body []nominatimResult
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", decodeErr)
	}

	if len(body) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(body[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(body[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil, fmt.Errorf("malformed coordinates in geocoding response: %q/%q", body[0].Lat, body[0].Lon)
	}

	return &Result{
		Lat:        lat,
		Lng:        lng,
		Confidence: nominatimConfidence,
		Source:     SourceNominatim,
	}, nil
}
