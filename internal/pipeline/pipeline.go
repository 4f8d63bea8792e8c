package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/jonesrussell/tourcrawl/internal/domain"
	"github.com/jonesrussell/tourcrawl/internal/geocode"
	"github.com/jonesrussell/tourcrawl/internal/logger"
	"github.com/jonesrussell/tourcrawl/internal/metrics"
)

// Store persists one enriched record. A failure affects only that record.
type Store interface {
	Save(ctx context.Context, activity *domain.Activity) error
}

// State names how far a record got through the pipeline.
type State string

const (
	StateReceived     State = "received"
	StateValidated    State = "validated"
	StateDeduplicated State = "deduplicated"
	StateGeocoded     State = "geocoded"
	StatePersisted    State = "persisted"
	StateCounted      State = "counted"
	StateRejected     State = "rejected"
)

// Outcome reports the terminal state of one record.
type Outcome struct {
	State State
	// Reason is set when State is StateRejected.
	Reason string
	// Warnings from soft validation checks.
	Warnings []string
	// PersistErr is the per-record transaction failure, if any. It is
	// informational: the record still reaches StateCounted.
	PersistErr error
}

// Options toggles whole stages. Stage order is fixed.
type Options struct {
	ValidationEnabled bool
	GeocodingEnabled  bool
}

// PersistStats summarizes store activity for the run report.
type PersistStats struct {
	Persisted int64 `json:"items_saved"`
	Failures  int64 `json:"save_errors"`
}

// Pipeline sequences the stages over each incoming record:
// Received → Validated → Deduplicated → Geocoded → Persisted → Counted.
// Only validation and deduplication can reject; geocoding and persistence
// annotate the record and never drop it.
type Pipeline struct {
	opts      Options
	validator *Validator
	registry  *Registry
	geocoder  geocode.Resolver
	store     Store
	stats     *Aggregator
	metrics   *metrics.Metrics
	logger    logger.Interface

	persisted       atomic.Int64
	persistFailures atomic.Int64
}

// New creates a pipeline. The geocoder may be nil when the stage is
// disabled; the store is required.
func New(
	opts Options,
	geocoder geocode.Resolver,
	store Store,
	m *metrics.Metrics,
	log logger.Interface,
) *Pipeline {
	return &Pipeline{
		opts:      opts,
		validator: NewValidator(log),
		registry:  NewRegistry(),
		geocoder:  geocoder,
		store:     store,
		stats:     NewAggregator(),
		metrics:   m,
		logger:    log.WithComponent("pipeline"),
	}
}

// Process runs one record through every stage. Stages for a record run
// sequentially; Process itself is safe to call from concurrent workers.
func (p *Pipeline) Process(ctx context.Context, activity *domain.Activity) Outcome {
	p.metrics.RecordsProcessed.Inc()

	var warnings []string
	if p.opts.ValidationEnabled {
		verdict := p.validator.Validate(activity)
		if !verdict.Valid {
			p.metrics.RecordsRejected.WithLabelValues(verdict.Reason).Inc()
			return Outcome{State: StateRejected, Reason: verdict.Reason}
		}
		warnings = verdict.Warnings
	}

	// The fingerprint is derived once and never recomputed.
	if activity.Fingerprint == "" {
		activity.Fingerprint = Fingerprint(activity)
	}
	if !p.registry.CheckAndRegister(activity.Fingerprint) {
		p.metrics.RecordsRejected.WithLabelValues(ReasonDuplicate).Inc()
		p.logger.Info("duplicate record dropped",
			"name", activity.Name,
			"fingerprint", activity.Fingerprint,
		)
		return Outcome{State: StateRejected, Reason: ReasonDuplicate, Warnings: warnings}
	}

	if p.opts.GeocodingEnabled && p.geocoder != nil {
		p.geocodeLocation(ctx, activity)
	}

	outcome := Outcome{State: StateCounted, Warnings: warnings}
	if err := p.store.Save(ctx, activity); err != nil {
		p.persistFailures.Add(1)
		p.metrics.PersistFailures.Inc()
		p.logger.Error("failed to persist record",
			"id", activity.ID,
			"name", activity.Name,
			"error", err,
		)
		outcome.PersistErr = err
	} else {
		p.persisted.Add(1)
		p.metrics.RecordsPersisted.Inc()
	}

	// Statistics run for every record that got this far, persisted or not.
	p.stats.Record(activity)

	return outcome
}

// geocodeLocation enriches the record with coordinates. Skips entirely
// when the record already carries both. Never rejects: on total failure
// the record proceeds ungeocoded.
func (p *Pipeline) geocodeLocation(ctx context.Context, activity *domain.Activity) {
	loc := activity.Location
	if loc == nil || loc.HasCoordinates() || loc.Address == "" {
		return
	}

	result := p.geocoder.Resolve(ctx, loc.Address)
	if result == nil {
		loc.Geocoded = false
		return
	}

	loc.SetCoordinates(result.Lat, result.Lng)
	loc.Geocoded = true
	loc.GeocodingSource = result.Source
	loc.GeocodingConfidence = result.Confidence
	p.metrics.RecordsGeocoded.WithLabelValues(result.Source).Inc()
}

// Report assembles the run statistics snapshot.
func (p *Pipeline) Report() Report {
	var geoStats geocode.Stats
	if p.geocoder != nil {
		geoStats = p.geocoder.Stats()
	}

	return p.stats.Snapshot(
		p.validator.Stats(),
		p.registry.Stats(),
		geoStats,
		PersistStats{
			Persisted: p.persisted.Load(),
			Failures:  p.persistFailures.Load(),
		},
	)
}
