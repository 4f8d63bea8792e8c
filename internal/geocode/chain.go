package geocode

import (
	"context"
	"sync/atomic"

	"github.com/jonesrussell/tourcrawl/internal/config"
	"github.com/jonesrussell/tourcrawl/internal/domain"
	"github.com/jonesrussell/tourcrawl/internal/logger"
)

// Chain resolves addresses through a cache and an ordered provider list.
// Resolution never fails the caller: an address that no provider can place
// simply resolves to nil.
type Chain struct {
	cache     *Cache
	providers []Provider
	logger    logger.Interface

	resolved   atomic.Int64
	unresolved atomic.Int64
}

// NewChain builds the provider chain from configuration. Without a Google
// API key the chain consists of the fallback provider only.
func NewChain(cfg config.GeocodingConfig, log logger.Interface) *Chain {
	client := newHTTPClient(cfg.Timeout)

	var providers []Provider
	if cfg.GoogleAPIKey != "" {
		providers = append(providers, NewGoogleProvider(cfg.GoogleAPIKey, cfg.GoogleURL, client))
	} else {
		log.Warn("Google Maps API key not configured, geocoding with fallback provider only")
	}
	providers = append(providers, NewNominatimProvider(cfg.NominatimURL, client))

	return &Chain{
		cache:     NewCache(),
		providers: providers,
		logger:    log.WithComponent("geocode"),
	}
}

// Resolve maps an address to coordinates. Returns nil when every provider
// fails or the address cannot be placed inside Taiwan.
func (c *Chain) Resolve(ctx context.Context, address string) *Result {
	if address == "" {
		return nil
	}

	if cached, ok := c.cache.Get(address); ok {
		return cached
	}

	for _, provider := range c.providers {
		result, err := provider.Geocode(ctx, address)
		if err != nil {
			c.logger.Warn("geocoding provider failed",
				"provider", provider.Name(),
				"address", address,
				"error", err,
			)
			continue
		}
		if result == nil {
			c.logger.Debug("no geocoding match",
				"provider", provider.Name(),
				"address", address,
			)
			continue
		}
		if !inTaiwanBounds(result) {
			c.logger.Warn("geocoding result outside Taiwan, discarding",
				"provider", provider.Name(),
				"address", address,
				"lat", result.Lat,
				"lng", result.Lng,
			)
			continue
		}

		c.cache.Put(address, result)
		c.resolved.Add(1)
		c.logger.Debug("address resolved",
			"provider", provider.Name(),
			"address", address,
			"lat", result.Lat,
			"lng", result.Lng,
		)
		return result
	}

	c.unresolved.Add(1)
	return nil
}

// inTaiwanBounds reports whether the result falls inside the Taiwan
// bounding box.
func inTaiwanBounds(r *Result) bool {
	return r.Lat >= domain.MinLatitude && r.Lat <= domain.MaxLatitude &&
		r.Lng >= domain.MinLongitude && r.Lng <= domain.MaxLongitude
}

// Stats summarizes chain activity for the run report.
type Stats struct {
	Resolved   int64 `json:"resolved"`
	Unresolved int64 `json:"unresolved"`
	CacheHits  int64 `json:"cache_hits"`
}

// Stats returns a snapshot of chain activity.
func (c *Chain) Stats() Stats {
	return Stats{
		Resolved:   c.resolved.Load(),
		Unresolved: c.unresolved.Load(),
		CacheHits:  c.cache.Hits(),
	}
}
