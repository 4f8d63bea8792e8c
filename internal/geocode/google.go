package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// SourceGoogle identifies results resolved by the Google Maps API.
const SourceGoogle = "google_maps"

// locationTypeConfidence maps Google's location_type classifier to a
// confidence score.
var locationTypeConfidence = map[string]float64{
	"ROOFTOP":            0.9,
	"RANGE_INTERPOLATED": 0.8,
	"GEOMETRIC_CENTER":   0.7,
	"APPROXIMATE":        0.6,
}

// unknownLocationTypeConfidence is used for classifiers not in the table.
const unknownLocationTypeConfidence = 0.5

// GoogleProvider resolves addresses against the Google Maps Geocoding API.
type GoogleProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGoogleProvider creates a Google Maps provider.
func NewGoogleProvider(apiKey, baseURL string, client *http.Client) *GoogleProvider {
	return &GoogleProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
	}
}

// Name returns the provider name.
func (p *GoogleProvider) Name() string {
	return SourceGoogle
}

// googleResponse is the subset of the geocoding response we read.
type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address. Returns (nil, nil) when the API has no match.
func (p *GoogleProvider) Geocode(ctx context.Context, address string) (*Result, error) {
	params := url.Values{}
	params.Set("address", address+countrySuffix)
	params.Set("key", p.apiKey)
	params.Set("language", "zh-TW")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request returned status %d", resp.StatusCode)
	}

	var body googleResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", decodeErr)
	}

	if body.Status != "OK" || len(body.Results) == 0 {
		return nil, nil
	}

	first := body.Results[0]
	confidence, ok := locationTypeConfidence[first.Geometry.LocationType]
	if !ok {
		confidence = unknownLocationTypeConfidence
	}

	return &Result{
		Lat:        first.Geometry.Location.Lat,
		Lng:        first.Geometry.Location.Lng,
		Confidence: confidence,
		Source:     SourceGoogle,
	}, nil
}
