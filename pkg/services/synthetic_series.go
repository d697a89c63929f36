package services

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sync"
	"time"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/models"
)

// DefaultPriceDataDays is the history window GeneratePriceData uses when none is given.
const DefaultPriceDataDays = 180

const (
	priceHistoryMonths  = 12
	categoryTrendMonths = 24
	priceStepDays       = 10
	forecastHorizon     = 60
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// seasonalityCurves are fixed monthly multipliers, Jan..Dec.
var seasonalityCurves = map[string][]float64{
	"Fruits & Vegetables": {1.2, 1.15, 1.1, 1.0, 0.9, 0.85, 0.8, 0.85, 0.9, 1.0, 1.1, 1.15},
	"Freezer":             {0.9, 0.9, 0.95, 1.0, 1.1, 1.2, 1.25, 1.2, 1.05, 0.95, 0.9, 0.95},
	"Drinks":              {0.85, 0.85, 0.9, 1.0, 1.1, 1.25, 1.3, 1.25, 1.05, 0.95, 0.9, 1.1},
}

// categoryBasePrices are the illustrative average unit prices per category.
var categoryBasePrices = map[string]float64{
	"Fruits & Vegetables": 2.5,
	"Dairy":               3.2,
	"Meat & Fish":         8.5,
	"Bakery":              2.8,
	"Freezer":             4.5,
	"Drinks":              1.8,
	"Snacks":              2.2,
	"Household":           5.0,
}

const defaultCategoryBasePrice = 4.0

// traitProfile shapes a record's synthetic price walk. Trend and volatility
// are per 10-day step, relative to the current price.
type traitProfile struct {
	basePrice  float64
	trend      float64
	volatility float64
}

var traitProfiles = map[string]traitProfile{
	models.TraitPremium:  {basePrice: 15, trend: 0.015, volatility: 0.02},
	models.TraitValue:    {basePrice: 5, trend: 0, volatility: 0.005},
	models.TraitOrganic:  {basePrice: 10, trend: 0.01, volatility: 0.02},
	models.TraitImported: {basePrice: 12, trend: 0, volatility: 0.06},
}

var defaultTraitProfile = traitProfile{basePrice: 8, trend: 0, volatility: 0.01}

func profileFor(trait string) traitProfile {
	if p, ok := traitProfiles[trait]; ok {
		return p
	}
	return defaultTraitProfile
}

var supplierNames = []string{
	"FreshFields Produce", "Nordic Dairy Co-op", "Atlantic Seafoods", "Golden Grain Bakers",
	"Polar Frozen Foods", "Crystal Springs Beverages", "Harvest Valley Farms", "Continental Imports",
	"GreenLeaf Organics", "Summit Meats", "Bright Home Supplies", "Coastal Trading Group",
}

var deliveryBuckets = []string{"1-2 days", "3-5 days", "1 week", "2 weeks"}

// SeriesGenerator produces the synthetic price, trend and seasonality series
// shown on the dashboard. All randomness comes from one seeded source so a
// fixed seed and clock give reproducible output. Safe for concurrent use.
type SeriesGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSeriesGenerator creates a generator. seed 0 seeds from the wall clock;
// a nil now uses time.Now.
func NewSeriesGenerator(seed int64, now func() time.Time) *SeriesGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if now == nil {
		now = time.Now
	}
	return &SeriesGenerator{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

func (g *SeriesGenerator) float() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

func (g *SeriesGenerator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

func (g *SeriesGenerator) perm(n int) []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Perm(n)
}

// jitter returns a uniform value in [-width/2, width/2).
func (g *SeriesGenerator) jitter(width float64) float64 {
	return (g.float() - 0.5) * width
}

// monthStart returns the first day of the month offset months from now.
func (g *SeriesGenerator) monthStart(offset int) time.Time {
	now := g.now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
}

// productBasePrice maps a product code onto a stable base price in [10, 60).
func productBasePrice(productCode string) float64 {
	h := fnv.New32a()
	h.Write([]byte(productCode))
	return 10 + float64(h.Sum32()%5000)/100
}

// GetProductPriceHistory returns 12 monthly prices ending with the current month.
// The base price is fixed per product code; monthly noise comes from the generator.
func (g *SeriesGenerator) GetProductPriceHistory(productCode string) []models.PriceHistoryPoint {
	base := productBasePrice(productCode)
	points := make([]models.PriceHistoryPoint, 0, priceHistoryMonths)
	for i := priceHistoryMonths - 1; i >= 0; i-- {
		price := base + g.jitter(5)
		points = append(points, models.PriceHistoryPoint{
			Date:  g.monthStart(-i).Format("2006-01"),
			Price: round2(math.Max(price, 0.01)),
		})
	}
	return points
}

// GetCategoryPriceTrend returns a 24-month index series starting at 100. Each
// month moves by the category trend (+0.5, -0.5 or 0) plus noise scaled by volatility.
func (g *SeriesGenerator) GetCategoryPriceTrend(category string) []models.CategoryTrendPoint {
	meta := config.LookupCategory(category)

	increment := 0.0
	switch meta.Trend {
	case models.TrendIncreasing:
		increment = 0.5
	case models.TrendDecreasing:
		increment = -0.5
	}

	noiseScale := 2.0
	switch meta.Volatility {
	case models.VolatilityLow:
		noiseScale = 1
	case models.VolatilityHigh:
		noiseScale = 3
	}

	points := make([]models.CategoryTrendPoint, 0, categoryTrendMonths)
	index := 100.0
	for i := 0; i < categoryTrendMonths; i++ {
		if i > 0 {
			index += increment + g.jitter(noiseScale)
		}
		points = append(points, models.CategoryTrendPoint{
			Date:  g.monthStart(i - categoryTrendMonths + 1).Format("2006-01"),
			Index: round2(index),
		})
	}
	return points
}

// GetSeasonalityFactors returns Jan..Dec multipliers. Known categories use a
// fixed curve; everything else gets 1.0 with at most ±0.05 jitter.
func (g *SeriesGenerator) GetSeasonalityFactors(category string) []models.SeasonalityFactor {
	curve, ok := seasonalityCurves[category]
	factors := make([]models.SeasonalityFactor, len(monthNames))
	for i, month := range monthNames {
		var factor float64
		if ok {
			factor = curve[i]
		} else {
			factor = round2(1 + g.jitter(0.1))
		}
		factors[i] = models.SeasonalityFactor{Month: month, Factor: factor}
	}
	return factors
}

// GetCategoryAveragePrice returns the illustrative average unit price of a
// category with ±0.25 jitter. Tender rows carry no prices, so records does not
// enter the calculation.
func (g *SeriesGenerator) GetCategoryAveragePrice(_ []models.TenderRecord, category string) float64 {
	base, ok := categoryBasePrices[category]
	if !ok {
		base = defaultCategoryBasePrice
	}
	return round2(base + g.jitter(0.5))
}

// GeneratePriceData returns a historical price walk from -days (default 180) to
// today on a 10 day grid anchored at today, followed by forecast points at
// +10..+60 days. When days is off the grid, -days is prepended as the first point.
// The walk's drift and noise come from the record's trait.
func (g *SeriesGenerator) GeneratePriceData(record models.TenderRecord, days int) []models.PricePoint {
	if days <= 0 {
		days = DefaultPriceDataDays
	}
	profile := profileFor(record.Trait)
	today := g.now()

	offsets := make([]int, 0, days/priceStepDays+1)
	for d := 0; d > -days; d -= priceStepDays {
		offsets = append([]int{d}, offsets...)
	}
	offsets = append([]int{-days}, offsets...)

	points := make([]models.PricePoint, 0, len(offsets)+forecastHorizon/priceStepDays)
	price := profile.basePrice
	for i, d := range offsets {
		if i > 0 {
			change := profile.trend + (g.float()*2-1)*profile.volatility
			price = math.Max(price*(1+change), 0.01)
		}
		p := round2(price)
		points = append(points, models.PricePoint{
			Date:  today.AddDate(0, 0, d).Format("2006-01-02"),
			Price: &p,
		})
	}

	last := price
	for d := priceStepDays; d <= forecastHorizon; d += priceStepDays {
		steps := float64(d / priceStepDays)
		predicted := last * math.Pow(1+profile.trend, steps)
		band := predicted * profile.volatility * math.Sqrt(steps) * 2
		pp, lo, hi := round2(predicted), round2(math.Max(predicted-band, 0)), round2(predicted+band)
		points = append(points, models.PricePoint{
			Date:           today.AddDate(0, 0, d).Format("2006-01-02"),
			PredictedPrice: &pp,
			LowerBound:     &lo,
			UpperBound:     &hi,
		})
	}
	return points
}

// GenerateSupplierData returns quotes from 3 or 4 distinct suppliers priced
// within ±10% of the record's trait base price.
func (g *SeriesGenerator) GenerateSupplierData(record models.TenderRecord) []models.SupplierQuote {
	profile := profileFor(record.Trait)
	count := 3 + g.intn(2)
	order := g.perm(len(supplierNames))

	quotes := make([]models.SupplierQuote, 0, count)
	for _, idx := range order[:count] {
		quotes = append(quotes, models.SupplierQuote{
			Name:     supplierNames[idx],
			Price:    round2(profile.basePrice * (0.9 + g.float()*0.2)),
			Delivery: deliveryBuckets[g.intn(len(deliveryBuckets))],
		})
	}
	return quotes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
