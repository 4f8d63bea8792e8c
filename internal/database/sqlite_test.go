package database_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/tourcrawl/internal/database"
	"github.com/jonesrussell/tourcrawl/internal/domain"
)

// newTestDB opens an in-memory database with the schema applied.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.NewSQLiteConnection(context.Background(), database.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM "+table))
	return count
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// The connection already ran the schema once.
	require.NoError(t, database.Migrate(context.Background(), db))
}

func TestSave_ResaveReplacesChildRows(t *testing.T) {
	db := newTestDB(t)
	repo := database.NewActivityRepository(db)
	ctx := context.Background()

	activity := fullActivity()
	require.NoError(t, repo.Save(ctx, activity))

	activity.Description = "updated description"
	activity.Location.City = "台北市"
	require.NoError(t, repo.Save(ctx, activity))

	assert.Equal(t, 1, countRows(t, db, "activities"))
	assert.Equal(t, 1, countRows(t, db, "locations"))
	assert.Equal(t, 1, countRows(t, db, "activity_times"))
	assert.Equal(t, 1, countRows(t, db, "data_sources"))
	assert.Equal(t, 1, countRows(t, db, "activity_categories"))

	var city string
	require.NoError(t, db.Get(&city, "SELECT city FROM locations WHERE activity_id = ?", activity.ID))
	assert.Equal(t, "台北市", city)
}

func TestSave_CategorySlugShared(t *testing.T) {
	db := newTestDB(t)
	repo := database.NewActivityRepository(db)
	ctx := context.Background()

	first := fullActivity()
	require.NoError(t, repo.Save(ctx, first))

	second := fullActivity()
	second.ID = "act_99ff88ee"
	second.Name = "頭份義民祭"
	require.NoError(t, repo.Save(ctx, second))

	// One categories row for the shared slug, one link per activity.
	assert.Equal(t, 1, countRows(t, db, "categories"))
	assert.Equal(t, 2, countRows(t, db, "activity_categories"))

	// The first writer owns the category name.
	var name string
	require.NoError(t, db.Get(&name, "SELECT name FROM categories WHERE slug = ?", "traditional"))
	assert.Equal(t, "傳統節慶", name)
}

func TestSave_LandmarksRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := database.NewActivityRepository(db)
	ctx := context.Background()

	activity := fullActivity()
	activity.Location.Landmarks = []string{"義民廟", "新埔老街"}
	require.NoError(t, repo.Save(ctx, activity))

	var landmarks domain.JSONStrings
	require.NoError(t, db.Get(&landmarks, "SELECT landmarks FROM locations WHERE activity_id = ?", activity.ID))
	assert.Equal(t, domain.JSONStrings{"義民廟", "新埔老街"}, landmarks)
}

func TestSave_InBoundsCoordinatesPersisted(t *testing.T) {
	db := newTestDB(t)
	repo := database.NewActivityRepository(db)
	ctx := context.Background()

	activity := fullActivity()
	activity.Location.SetCoordinates(24.8259, 121.0714)
	require.NoError(t, repo.Save(ctx, activity))

	var row struct {
		Latitude  *float64 `db:"latitude"`
		Longitude *float64 `db:"longitude"`
	}
	require.NoError(t, db.Get(&row, "SELECT latitude, longitude FROM locations WHERE activity_id = ?", activity.ID))
	require.NotNil(t, row.Latitude)
	require.NotNil(t, row.Longitude)
	assert.InDelta(t, 24.8259, *row.Latitude, 1e-6)
	assert.InDelta(t, 121.0714, *row.Longitude, 1e-6)
}
