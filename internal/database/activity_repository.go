package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/tourcrawl/internal/domain"
)

// ActivityRepository persists activities and their child rows.
// One Save call is one transaction: a failure anywhere rolls back every
// table touched for that record and leaves prior records committed.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Save writes one activity across the activities, locations, activity_times,
// categories, activity_categories and data_sources tables. Re-saving an
// identifier replaces the activity, location, time and source rows and
// leaves existing category links untouched.
func (r *ActivityRepository) Save(ctx context.Context, activity *domain.Activity) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if saveErr := r.saveInTx(ctx, tx, activity); saveErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback after %w: %w", saveErr, rbErr)
		}
		return saveErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("failed to commit transaction: %w", commitErr)
	}

	return nil
}

func (r *ActivityRepository) saveInTx(ctx context.Context, tx *sqlx.Tx, activity *domain.Activity) error {
	if err := saveActivity(ctx, tx, activity); err != nil {
		return err
	}
	if activity.Location != nil {
		if err := saveLocation(ctx, tx, activity.ID, activity.Location); err != nil {
			return err
		}
	}
	if activity.Time != nil {
		if err := saveTime(ctx, tx, activity.ID, activity.Time); err != nil {
			return err
		}
	}
	if err := saveCategories(ctx, tx, activity.ID, activity.Categories); err != nil {
		return err
	}
	if activity.Source != nil {
		if err := saveSource(ctx, tx, activity.ID, activity.Source); err != nil {
			return err
		}
	}
	return nil
}

func saveActivity(ctx context.Context, tx *sqlx.Tx, activity *domain.Activity) error {
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT OR REPLACE INTO activities (
			id, name, description, summary, status, quality_score,
			price, price_type, currency, view_count, favorite_count,
			click_count, popularity_score, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?, 0, 0, 0, 0, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		activity.ID,
		activity.Name,
		activity.Description,
		activity.Summary,
		domain.StatusPending,
		activity.Price,
		string(activity.PriceType),
		activity.Currency,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}

	return nil
}

func saveLocation(ctx context.Context, tx *sqlx.Tx, activityID string, loc *domain.Location) error {
	// Out-of-bounds coordinates are never stored.
	lat, lng := loc.Latitude, loc.Longitude
	if loc.HasCoordinates() && !loc.InTaiwanBounds() {
		lat, lng = nil, nil
	}

	query := `
		INSERT OR REPLACE INTO locations (
			id, activity_id, address, district, city, region,
			latitude, longitude, venue, landmarks
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		domain.NewRowID("loc"),
		activityID,
		loc.Address,
		loc.District,
		loc.City,
		string(loc.Region),
		lat,
		lng,
		loc.Venue,
		domain.JSONStrings(loc.Landmarks),
	)
	if err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}

	return nil
}

func saveTime(ctx context.Context, tx *sqlx.Tx, activityID string, info *domain.TimeInfo) error {
	query := `
		INSERT OR REPLACE INTO activity_times (
			id, activity_id, start_date, end_date, start_time,
			end_time, timezone, is_recurring, recurrence_rule
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		domain.NewRowID("time"),
		activityID,
		info.StartDate,
		info.EndDate,
		info.StartTime,
		info.EndTime,
		info.Timezone,
		info.IsRecurring,
		info.RecurrenceRule,
	)
	if err != nil {
		return fmt.Errorf("failed to save time: %w", err)
	}

	return nil
}

// saveCategories upserts each category by slug and links it to the
// activity. The first writer of a slug owns its name and color.
func saveCategories(ctx context.Context, tx *sqlx.Tx, activityID string, categories []domain.Category) error {
	for i := range categories {
		category := &categories[i]

		insert := `
			INSERT OR IGNORE INTO categories (id, name, slug, color_code, icon)
			VALUES (?, ?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(
			ctx,
			insert,
			domain.NewRowID("cat"),
			category.Name,
			category.Slug,
			category.ColorCode,
			category.Icon,
		); err != nil {
			return fmt.Errorf("failed to save category %q: %w", category.Slug, err)
		}

		// The slug may already exist with a different id.
		var categoryID string
		if err := tx.GetContext(
			ctx,
			&categoryID,
			`SELECT id FROM categories WHERE slug = ?`,
			category.Slug,
		); err != nil {
			return fmt.Errorf("failed to look up category %q: %w", category.Slug, err)
		}

		link := `
			INSERT OR IGNORE INTO activity_categories (id, activity_id, category_id)
			VALUES (?, ?, ?)
		`
		if _, err := tx.ExecContext(
			ctx,
			link,
			domain.NewRowID("ac"),
			activityID,
			categoryID,
		); err != nil {
			return fmt.Errorf("failed to link category %q: %w", category.Slug, err)
		}
	}

	return nil
}

func saveSource(ctx context.Context, tx *sqlx.Tx, activityID string, source *domain.Source) error {
	query := `
		INSERT OR REPLACE INTO data_sources (
			id, activity_id, website, url, crawled_at, crawler_version
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		domain.NewRowID("src"),
		activityID,
		source.Website,
		source.URL,
		source.CrawledAt.UTC().Format(time.RFC3339),
		source.CrawlerVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to save source: %w", err)
	}

	return nil
}
