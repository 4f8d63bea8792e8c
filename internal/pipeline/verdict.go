// Package pipeline implements the multi-stage item processing pipeline:
// validation, fingerprint deduplication, geocoding, persistence and run
// statistics.
package pipeline

// Rejection reasons reported when a record is intentionally dropped.
// A rejection is not an error condition for the run.
const (
	ReasonMissingRequiredFields = "missing_required_fields"
	ReasonBadFormat             = "bad_format"
	ReasonDuplicate             = "duplicate"
)

// Warning labels attached by soft validation checks.
const (
	WarningCoordinatesOutOfBounds = "coordinates_out_of_bounds"
	WarningStartAfterEnd          = "start_date_after_end_date"
)

// Verdict is the three-way result of validating a record.
type Verdict struct {
	// Valid is false when the record must be dropped.
	Valid bool
	// Reason names why an invalid record was dropped.
	Reason string
	// Warnings carries soft-check findings for records that proceed.
	Warnings []string
}

// Accept returns a passing verdict.
func Accept(warnings ...string) Verdict {
	return Verdict{Valid: true, Warnings: warnings}
}

// Reject returns a failing verdict with a reason.
func Reject(reason string) Verdict {
	return Verdict{Valid: false, Reason: reason}
}
