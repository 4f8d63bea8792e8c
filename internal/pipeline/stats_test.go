package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/tourcrawl/internal/domain"
	"github.com/jonesrussell/tourcrawl/internal/geocode"
	"github.com/jonesrussell/tourcrawl/internal/pipeline"
)

func TestAggregator_Record(t *testing.T) {
	agg := pipeline.NewAggregator()

	agg.Record(&domain.Activity{
		Name:      "義民祭",
		PriceType: domain.PriceFree,
		Categories: []domain.Category{
			{Name: "傳統節慶", Slug: "traditional"},
			{Name: "客家文化", Slug: "hakka"},
		},
		Location: &domain.Location{City: "新竹縣", Region: domain.RegionNorth},
	})
	agg.Record(&domain.Activity{
		Name:      "音樂會",
		PriceType: domain.PricePaid,
		Categories: []domain.Category{
			{Name: "傳統節慶", Slug: "traditional"},
		},
		Location: &domain.Location{City: "台中市", Region: domain.RegionCentral},
	})
	agg.Record(&domain.Activity{
		Name:      "展覽",
		PriceType: domain.PriceFree,
	})

	report := agg.Snapshot(
		pipeline.ValidatorStats{},
		pipeline.RegistryStats{},
		geocode.Stats{},
		pipeline.PersistStats{},
	)

	assert.Equal(t, int64(3), report.TotalItems)
	assert.Equal(t, int64(2), report.Categories["傳統節慶"])
	assert.Equal(t, int64(1), report.Categories["客家文化"])
	assert.Equal(t, int64(1), report.Regions["north"])
	assert.Equal(t, int64(1), report.Regions["central"])
	assert.Equal(t, int64(1), report.Cities["新竹縣"])
	assert.Equal(t, int64(2), report.PriceTypes["free"])
	assert.Equal(t, int64(1), report.PriceTypes["paid"])
	assert.False(t, report.EndTime.Before(report.StartTime))
}

func TestAggregator_SnapshotCopiesCounts(t *testing.T) {
	agg := pipeline.NewAggregator()
	agg.Record(&domain.Activity{Name: "a", PriceType: domain.PriceFree})

	report := agg.Snapshot(
		pipeline.ValidatorStats{},
		pipeline.RegistryStats{},
		geocode.Stats{},
		pipeline.PersistStats{},
	)
	report.PriceTypes["free"] = 99

	again := agg.Snapshot(
		pipeline.ValidatorStats{},
		pipeline.RegistryStats{},
		geocode.Stats{},
		pipeline.PersistStats{},
	)
	assert.Equal(t, int64(1), again.PriceTypes["free"])
}
