package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Region is one of five coarse geographic buckets derived from a city name.
type Region string

const (
	RegionNorth   Region = "north"
	RegionCentral Region = "central"
	RegionSouth   Region = "south"
	RegionEast    Region = "east"
	RegionIslands Region = "islands"
	RegionUnknown Region = "unknown"
)

// PriceType classifies how an activity is priced.
type PriceType string

const (
	PriceFree     PriceType = "free"
	PricePaid     PriceType = "paid"
	PriceDonation PriceType = "donation"
)

// Valid reports whether the price type is one of the known values.
func (p PriceType) Valid() bool {
	switch p {
	case PriceFree, PricePaid, PriceDonation:
		return true
	default:
		return false
	}
}

// DefaultCurrency is applied when the source carries no currency code.
const DefaultCurrency = "TWD"

// regionCities maps each region to the cities it contains.
var regionCities = map[Region][]string{
	RegionNorth:   {"台北市", "新北市", "基隆市", "桃園市", "新竹市", "新竹縣"},
	RegionCentral: {"苗栗縣", "台中市", "彰化縣", "南投縣", "雲林縣"},
	RegionSouth:   {"嘉義縣", "嘉義市", "台南市", "高雄市", "屏東縣"},
	RegionEast:    {"宜蘭縣", "花蓮縣", "台東縣"},
	RegionIslands: {"澎湖縣", "金門縣", "連江縣"},
}

// cityRegion is the inverse of regionCities, built once at init.
var cityRegion = func() map[string]Region {
	m := make(map[string]Region)
	for region, cities := range regionCities {
		for _, city := range cities {
			m[city] = region
		}
	}
	return m
}()

// DetermineRegion derives the region bucket from a Taiwanese city name.
func DetermineRegion(city string) Region {
	if region, ok := cityRegion[city]; ok {
		return region
	}
	return RegionUnknown
}

// CityFromAddress extracts the city name from a free-text address.
// Returns the empty string when no known city appears in the address.
func CityFromAddress(address string) string {
	if address == "" {
		return ""
	}
	for city := range cityRegion {
		if strings.Contains(address, city) {
			return city
		}
	}
	return ""
}

// categoryAliases maps scraped category labels to their canonical form.
// First-writer-wins for the name/color of a slug once persisted.
var categoryAliases = map[string]Category{
	"節慶活動":  {Name: "傳統節慶", Slug: "traditional", ColorCode: "#DC2626"},
	"文化活動":  {Name: "藝術文化", Slug: "art_culture", ColorCode: "#7C3AED"},
	"美食活動":  {Name: "美食饗宴", Slug: "cuisine", ColorCode: "#F59E0B"},
	"自然活動":  {Name: "自然生態", Slug: "nature", ColorCode: "#059669"},
	"養生活動":  {Name: "養生樂活", Slug: "wellness", ColorCode: "#10B981"},
	"浪漫活動":  {Name: "浪漫之旅", Slug: "romantic", ColorCode: "#EC4899"},
	"原住民活動": {Name: "原民慶典", Slug: "indigenous", ColorCode: "#B91C1C"},
	"客家活動":  {Name: "客家文化", Slug: "hakka", ColorCode: "#1E40AF"},
}

// fallbackCategoryColor is used for categories outside the alias table.
const fallbackCategoryColor = "#6B7280"

// NormalizeCategory maps a scraped category label to a canonical Category.
// Unknown labels produce a new category with a derived slug.
func NormalizeCategory(name string) Category {
	name = strings.TrimSpace(name)
	for alias, category := range categoryAliases {
		if strings.Contains(name, alias) || (name != "" && strings.Contains(alias, name)) {
			return category
		}
	}

	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, "活動", "")
	slug = strings.ReplaceAll(slug, " ", "_")
	return Category{
		Name:      name,
		Slug:      slug,
		ColorCode: fallbackCategoryColor,
	}
}

var (
	freeKeywords     = []string{"免費", "free", "不收費", "免費入場"}
	donationKeywords = []string{"樂捐", "隨喜", "自由捐獻"}
	priceNumber      = regexp.MustCompile(`\d+`)
)

// ParsePriceText extracts (price, price type, currency) from scraped price
// text such as "免費", "NT$ 200" or "樂捐".
func ParsePriceText(text string) (float64, PriceType, string) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0, PriceFree, DefaultCurrency
	}

	for _, keyword := range freeKeywords {
		if strings.Contains(text, keyword) {
			return 0, PriceFree, DefaultCurrency
		}
	}
	for _, keyword := range donationKeywords {
		if strings.Contains(text, keyword) {
			return 0, PriceDonation, DefaultCurrency
		}
	}

	if match := priceNumber.FindString(strings.ReplaceAll(text, ",", "")); match != "" {
		if price, err := strconv.ParseFloat(match, 64); err == nil {
			return price, PricePaid, DefaultCurrency
		}
	}

	return 0, PriceFree, DefaultCurrency
}
