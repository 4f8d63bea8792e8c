// Package domain provides domain models used across the application.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Taiwan bounding box. Coordinates outside this box are never persisted.
const (
	MinLatitude  = 21.8
	MaxLatitude  = 25.4
	MinLongitude = 119.3
	MaxLongitude = 122.1
)

// Activity statuses as stored in the activities table.
const (
	StatusPending = "pending"
)

// Activity represents one tourism activity flowing through the pipeline.
type Activity struct {
	// Unique identifier, assigned once at creation and never reassigned
	ID string `json:"id"`
	// Name of the activity (required)
	Name string `json:"name"`
	// Full description text
	Description string `json:"description,omitempty"`
	// Short summary, often the first lines of the description
	Summary string `json:"summary,omitempty"`
	// Where the activity takes place
	Location *Location `json:"location,omitempty"`
	// When the activity takes place
	Time *TimeInfo `json:"time,omitempty"`
	// Ordered categories; may be empty
	Categories []Category `json:"categories,omitempty"`
	// Price in Currency units; 0 for free and donation entries
	Price float64 `json:"price"`
	// One of "free", "paid", "donation"
	PriceType PriceType `json:"price_type"`
	// ISO currency code
	Currency string `json:"currency"`
	// Contact details; carried on the record but not persisted
	Contact *Contact `json:"contact,omitempty"`
	// Image URLs
	Images []string `json:"images,omitempty"`
	// Video URLs
	Videos []string `json:"videos,omitempty"`
	// Where the record was scraped from (required)
	Source *Source `json:"source"`
	// Content fingerprint, set exactly once by the dedup stage
	Fingerprint string `json:"fingerprint,omitempty"`
	// When the record was scraped
	CrawledAt time.Time `json:"crawled_at"`
}

// Location holds the place information for an activity.
type Location struct {
	Address  string `json:"address"`
	District string `json:"district,omitempty"`
	City     string `json:"city"`
	Region   Region `json:"region"`
	Venue    string `json:"venue,omitempty"`
	// Latitude and Longitude are either both set or both nil.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Landmarks []string `json:"landmarks,omitempty"`
	// Geocoding outcome; Source and Confidence are meaningful only when Geocoded.
	Geocoded            bool    `json:"geocoded"`
	GeocodingSource     string  `json:"geocoding_source,omitempty"`
	GeocodingConfidence float64 `json:"geocoding_confidence,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// InTaiwanBounds reports whether the coordinates fall inside the Taiwan
// bounding box. Returns false when either coordinate is absent.
func (l *Location) InTaiwanBounds() bool {
	if !l.HasCoordinates() {
		return false
	}
	lat, lng := *l.Latitude, *l.Longitude
	return lat >= MinLatitude && lat <= MaxLatitude &&
		lng >= MinLongitude && lng <= MaxLongitude
}

// ClearCoordinates drops the coordinate pair and any geocoding result.
func (l *Location) ClearCoordinates() {
	l.Latitude = nil
	l.Longitude = nil
	l.Geocoded = false
	l.GeocodingSource = ""
	l.GeocodingConfidence = 0
}

// SetCoordinates stores a resolved coordinate pair.
func (l *Location) SetCoordinates(lat, lng float64) {
	l.Latitude = &lat
	l.Longitude = &lng
}

// TimeInfo holds the schedule information for an activity.
// Dates are ISO YYYY-MM-DD strings, times are HH:MM; nil means absent.
type TimeInfo struct {
	StartDate      *string `json:"start_date,omitempty"`
	EndDate        *string `json:"end_date,omitempty"`
	StartTime      *string `json:"start_time,omitempty"`
	EndTime        *string `json:"end_time,omitempty"`
	Timezone       string  `json:"timezone"`
	IsRecurring    bool    `json:"is_recurring"`
	IsAllDay       bool    `json:"is_all_day"`
	RecurrenceRule JSONMap `json:"recurrence_rule,omitempty"`
}

// DefaultTimezone is applied when the source carries no timezone.
const DefaultTimezone = "Asia/Taipei"

// Category is a normalized activity category, looked up by slug.
type Category struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ColorCode string `json:"color_code"`
	Icon      string `json:"icon,omitempty"`
}

// Contact holds contact details for an activity.
type Contact struct {
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Website   string `json:"website,omitempty"`
	Organizer string `json:"organizer,omitempty"`
}

// Source identifies where a record was scraped from. Immutable once set.
type Source struct {
	Website        string    `json:"website"`
	URL            string    `json:"url"`
	CrawledAt      time.Time `json:"crawled_at"`
	CrawlerVersion string    `json:"crawler_version"`
}

// NewActivityID generates an activity identifier.
func NewActivityID() string {
	return prefixedID("act")
}

// NewRowID generates a row identifier for a child table ("loc", "time",
// "cat", "ac", "src").
func NewRowID(prefix string) string {
	return prefixedID(prefix)
}

const idHexLen = 8

func prefixedID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.New().String()[:idHexLen])
}
