package pipeline

import (
	"sync/atomic"

	"github.com/jonesrussell/tourcrawl/internal/domain"
	"github.com/jonesrussell/tourcrawl/internal/logger"
)

// Validator performs the structural and semantic checks on a record.
// Hard failures short-circuit; soft failures attach warnings and let the
// record proceed.
type Validator struct {
	logger logger.Interface

	processed atomic.Int64
	validated atomic.Int64
	rejected  atomic.Int64
}

// NewValidator creates a validator.
func NewValidator(log logger.Interface) *Validator {
	return &Validator{logger: log.WithComponent("validator")}
}

// Validate checks a record and returns a verdict. Records failing a soft
// check are mutated so downstream stages see sane values: out-of-bounds
// coordinates are cleared.
func (v *Validator) Validate(activity *domain.Activity) Verdict {
	v.processed.Add(1)

	if !hasRequiredFields(activity) {
		v.rejected.Add(1)
		v.logger.Warn("record rejected", "reason", ReasonMissingRequiredFields, "name", activity.Name)
		return Reject(ReasonMissingRequiredFields)
	}

	if !hasValidFormats(activity) {
		v.rejected.Add(1)
		v.logger.Warn("record rejected", "reason", ReasonBadFormat, "name", activity.Name)
		return Reject(ReasonBadFormat)
	}

	var warnings []string

	if loc := activity.Location; loc.HasCoordinates() && !loc.InTaiwanBounds() {
		v.logger.Warn("coordinates outside Taiwan, clearing",
			"name", activity.Name,
			"lat", *loc.Latitude,
			"lng", *loc.Longitude,
		)
		loc.ClearCoordinates()
		warnings = append(warnings, WarningCoordinatesOutOfBounds)
	}

	if startAfterEnd(activity.Time) {
		v.logger.Warn("start date after end date",
			"name", activity.Name,
			"start_date", *activity.Time.StartDate,
			"end_date", *activity.Time.EndDate,
		)
		warnings = append(warnings, WarningStartAfterEnd)
	}

	v.validated.Add(1)
	return Accept(warnings...)
}

// hasRequiredFields checks that name is present and that a location, when
// given, carries at least an address or a city.
func hasRequiredFields(activity *domain.Activity) bool {
	if activity.Name == "" {
		return false
	}
	if loc := activity.Location; loc != nil {
		if loc.Address == "" && loc.City == "" {
			return false
		}
	}
	return true
}

// hasValidFormats checks price and price type.
func hasValidFormats(activity *domain.Activity) bool {
	if activity.Price < 0 {
		return false
	}
	return activity.PriceType.Valid()
}

// startAfterEnd reports whether both dates are present and out of order.
// ISO YYYY-MM-DD dates compare correctly as strings.
func startAfterEnd(info *domain.TimeInfo) bool {
	if info == nil || info.StartDate == nil || info.EndDate == nil {
		return false
	}
	return *info.StartDate > *info.EndDate
}

// ValidatorStats summarizes validator activity for the run report.
type ValidatorStats struct {
	Processed int64 `json:"items_processed"`
	Validated int64 `json:"items_validated"`
	Rejected  int64 `json:"items_rejected"`
}

// Stats returns a snapshot of validator counters.
func (v *Validator) Stats() ValidatorStats {
	return ValidatorStats{
		Processed: v.processed.Load(),
		Validated: v.validated.Load(),
		Rejected:  v.rejected.Load(),
	}
}
