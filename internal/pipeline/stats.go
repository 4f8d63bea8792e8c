package pipeline

import (
	"sync"
	"time"

	"github.com/jonesrussell/tourcrawl/internal/domain"
	"github.com/jonesrussell/tourcrawl/internal/geocode"
)

// Aggregator counts records by category, region, city and price type.
// Record never fails and never drops a record.
type Aggregator struct {
	mu         sync.Mutex
	startTime  time.Time
	total      int64
	categories map[string]int64
	regions    map[string]int64
	cities     map[string]int64
	priceTypes map[string]int64
}

// NewAggregator creates an aggregator with the run start time set to now.
func NewAggregator() *Aggregator {
	return &Aggregator{
		startTime:  time.Now(),
		categories: make(map[string]int64),
		regions:    make(map[string]int64),
		cities:     make(map[string]int64),
		priceTypes: make(map[string]int64),
	}
}

// Record counts one activity.
func (a *Aggregator) Record(activity *domain.Activity) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++

	for _, category := range activity.Categories {
		a.categories[category.Name]++
	}

	if loc := activity.Location; loc != nil {
		a.regions[string(loc.Region)]++
		a.cities[loc.City]++
	}

	a.priceTypes[string(activity.PriceType)]++
}

// Report is the aggregate statistics snapshot written at run end.
type Report struct {
	StartTime       time.Time        `json:"start_time"`
	EndTime         time.Time        `json:"end_time"`
	DurationSeconds float64          `json:"duration_seconds"`
	TotalItems      int64            `json:"total_items"`
	Categories      map[string]int64 `json:"categories_count"`
	Regions         map[string]int64 `json:"regions_count"`
	Cities          map[string]int64 `json:"cities_count"`
	PriceTypes      map[string]int64 `json:"price_types_count"`

	Validation  ValidatorStats `json:"validation"`
	Dedup       RegistryStats  `json:"deduplication"`
	Geocoding   geocode.Stats  `json:"geocoding"`
	Persistence PersistStats   `json:"persistence"`
}

// Snapshot assembles the final report. The end time is taken at the call.
func (a *Aggregator) Snapshot(validation ValidatorStats, dedup RegistryStats, geo geocode.Stats, persist PersistStats) Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	end := time.Now()
	return Report{
		StartTime:       a.startTime,
		EndTime:         end,
		DurationSeconds: end.Sub(a.startTime).Seconds(),
		TotalItems:      a.total,
		Categories:      copyCounts(a.categories),
		Regions:         copyCounts(a.regions),
		Cities:          copyCounts(a.cities),
		PriceTypes:      copyCounts(a.priceTypes),
		Validation:      validation,
		Dedup:           dedup,
		Geocoding:       geo,
		Persistence:     persist,
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
