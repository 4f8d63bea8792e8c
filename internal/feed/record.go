// Package feed reads raw candidate records produced by the extraction
// step and turns them into typed domain activities.
package feed

import (
	"time"

	"github.com/jonesrussell/tourcrawl/internal/domain"
)

// RawRecord is one extracted candidate as handed off by the scraper,
// one JSON object per NDJSON line.
type RawRecord struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Summary     string       `json:"summary"`
	Location    *RawLocation `json:"location"`
	Time        *RawTime     `json:"time"`
	Categories  []string     `json:"categories"`
	Price       *float64     `json:"price"`
	PriceText   string       `json:"price_text"`
	PriceType   string       `json:"price_type"`
	Currency    string       `json:"currency"`
	Contact     *RawContact  `json:"contact"`
	Images      []string     `json:"images"`
	Videos      []string     `json:"videos"`
	Source      RawSource    `json:"source"`
	CrawledAt   *time.Time   `json:"crawled_at"`
}

// RawLocation mirrors the scraper's location block.
type RawLocation struct {
	Address   string   `json:"address"`
	District  string   `json:"district"`
	City      string   `json:"city"`
	Venue     string   `json:"venue"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Landmarks []string `json:"landmarks"`
}

// RawTime mirrors the scraper's time block.
type RawTime struct {
	StartDate      *string        `json:"start_date"`
	EndDate        *string        `json:"end_date"`
	StartTime      *string        `json:"start_time"`
	EndTime        *string        `json:"end_time"`
	Timezone       string         `json:"timezone"`
	IsRecurring    bool           `json:"is_recurring"`
	IsAllDay       bool           `json:"is_all_day"`
	RecurrenceRule map[string]any `json:"recurrence_rule"`
}

// RawContact mirrors the scraper's contact block.
type RawContact struct {
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Website   string `json:"website"`
	Organizer string `json:"organizer"`
}

// RawSource mirrors the scraper's source block.
type RawSource struct {
	Website        string `json:"website"`
	URL            string `json:"url"`
	CrawlerVersion string `json:"crawler_version"`
}

// ToActivity converts a raw record into a typed activity, applying the
// defaults and derivations the scraper leaves to the pipeline: identifier
// assignment, price-text parsing, city extraction and region bucketing,
// category normalization and the Asia/Taipei timezone.
func (r *RawRecord) ToActivity(crawlerVersion string) *domain.Activity {
	activity := &domain.Activity{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Summary:     r.Summary,
		Currency:    r.Currency,
		Images:      r.Images,
		Videos:      r.Videos,
		CrawledAt:   time.Now(),
	}

	if activity.ID == "" {
		activity.ID = domain.NewActivityID()
	}
	if activity.Currency == "" {
		activity.Currency = domain.DefaultCurrency
	}
	if r.CrawledAt != nil {
		activity.CrawledAt = *r.CrawledAt
	}

	activity.Price, activity.PriceType = resolvePrice(r)

	if r.Location != nil {
		activity.Location = resolveLocation(r.Location)
	}
	if r.Time != nil {
		activity.Time = resolveTime(r.Time)
	}
	if r.Contact != nil {
		activity.Contact = &domain.Contact{
			Phone:     r.Contact.Phone,
			Email:     r.Contact.Email,
			Website:   r.Contact.Website,
			Organizer: r.Contact.Organizer,
		}
	}

	for _, label := range r.Categories {
		if label == "" {
			continue
		}
		activity.Categories = append(activity.Categories, domain.NormalizeCategory(label))
	}

	version := r.Source.CrawlerVersion
	if version == "" {
		version = crawlerVersion
	}
	activity.Source = &domain.Source{
		Website:        r.Source.Website,
		URL:            r.Source.URL,
		CrawledAt:      activity.CrawledAt,
		CrawlerVersion: version,
	}

	return activity
}

// resolvePrice prefers an explicit numeric price and falls back to parsing
// the scraped price text.
func resolvePrice(r *RawRecord) (float64, domain.PriceType) {
	if r.Price != nil {
		priceType := domain.PriceType(r.PriceType)
		if priceType == "" {
			if *r.Price > 0 {
				priceType = domain.PricePaid
			} else {
				priceType = domain.PriceFree
			}
		}
		return *r.Price, priceType
	}

	if r.PriceType != "" {
		return 0, domain.PriceType(r.PriceType)
	}

	price, priceType, _ := domain.ParsePriceText(r.PriceText)
	return price, priceType
}

func resolveLocation(raw *RawLocation) *domain.Location {
	city := raw.City
	if city == "" {
		city = domain.CityFromAddress(raw.Address)
	}

	loc := &domain.Location{
		Address:   raw.Address,
		District:  raw.District,
		City:      city,
		Region:    domain.DetermineRegion(city),
		Venue:     raw.Venue,
		Landmarks: raw.Landmarks,
	}
	if raw.Latitude != nil && raw.Longitude != nil {
		loc.SetCoordinates(*raw.Latitude, *raw.Longitude)
	}
	return loc
}

func resolveTime(raw *RawTime) *domain.TimeInfo {
	timezone := raw.Timezone
	if timezone == "" {
		timezone = domain.DefaultTimezone
	}

	return &domain.TimeInfo{
		StartDate:      raw.StartDate,
		EndDate:        raw.EndDate,
		StartTime:      raw.StartTime,
		EndTime:        raw.EndTime,
		Timezone:       timezone,
		IsRecurring:    raw.IsRecurring,
		IsAllDay:       raw.IsAllDay,
		RecurrenceRule: domain.JSONMap(raw.RecurrenceRule),
	}
}
