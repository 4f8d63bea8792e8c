package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/tourcrawl/internal/domain"
)

func TestDetermineRegion(t *testing.T) {
	tests := []struct {
		city string
		want domain.Region
	}{
		{"台北市", domain.RegionNorth},
		{"新竹縣", domain.RegionNorth},
		{"台中市", domain.RegionCentral},
		{"高雄市", domain.RegionSouth},
		{"花蓮縣", domain.RegionEast},
		{"澎湖縣", domain.RegionIslands},
		{"東京都", domain.RegionUnknown},
		{"", domain.RegionUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.DetermineRegion(tt.city), "city %q", tt.city)
	}
}

func TestCityFromAddress(t *testing.T) {
	assert.Equal(t, "新竹縣", domain.CityFromAddress("新竹縣竹北市光明六路10號"))
	assert.Equal(t, "台北市", domain.CityFromAddress("台北市信義區市府路1號"))
	assert.Empty(t, domain.CityFromAddress("somewhere else entirely"))
	assert.Empty(t, domain.CityFromAddress(""))
}

func TestParsePriceText_Free(t *testing.T) {
	price, priceType, currency := domain.ParsePriceText("免費")

	assert.Zero(t, price)
	assert.Equal(t, domain.PriceFree, priceType)
	assert.Equal(t, "TWD", currency)
}

func TestParsePriceText(t *testing.T) {
	tests := []struct {
		text      string
		wantPrice float64
		wantType  domain.PriceType
	}{
		{"", 0, domain.PriceFree},
		{"Free admission", 0, domain.PriceFree},
		{"不收費", 0, domain.PriceFree},
		{"樂捐", 0, domain.PriceDonation},
		{"隨喜", 0, domain.PriceDonation},
		{"NT$ 250", 250, domain.PricePaid},
		{"門票 1,200 元", 1200, domain.PricePaid},
		{"about that much", 0, domain.PriceFree},
	}

	for _, tt := range tests {
		price, priceType, currency := domain.ParsePriceText(tt.text)
		assert.Equal(t, tt.wantPrice, price, "text %q", tt.text)
		assert.Equal(t, tt.wantType, priceType, "text %q", tt.text)
		assert.Equal(t, domain.DefaultCurrency, currency, "text %q", tt.text)
	}
}

func TestNormalizeCategory_Known(t *testing.T) {
	category := domain.NormalizeCategory("節慶活動")

	assert.Equal(t, "傳統節慶", category.Name)
	assert.Equal(t, "traditional", category.Slug)
	assert.Equal(t, "#DC2626", category.ColorCode)
}

func TestNormalizeCategory_Fuzzy(t *testing.T) {
	category := domain.NormalizeCategory("客家活動專區")

	assert.Equal(t, "hakka", category.Slug)
}

func TestNormalizeCategory_Unknown(t *testing.T) {
	category := domain.NormalizeCategory("夜市活動")

	assert.Equal(t, "夜市活動", category.Name)
	assert.Equal(t, "夜市", category.Slug)
	assert.Equal(t, "#6B7280", category.ColorCode)
}

func TestPriceTypeValid(t *testing.T) {
	assert.True(t, domain.PriceFree.Valid())
	assert.True(t, domain.PricePaid.Valid())
	assert.True(t, domain.PriceDonation.Valid())
	assert.False(t, domain.PriceType("gratis").Valid())
	assert.False(t, domain.PriceType("").Valid())
}
