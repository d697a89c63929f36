package services

import (
	"testing"
	"time"

	"procure-chat-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)
}

func newTestGenerator(seed int64) *SeriesGenerator {
	return NewSeriesGenerator(seed, fixedClock)
}

func TestSeriesGeneratorIsReproducible(t *testing.T) {
	rec := models.TenderRecord{TenderID: "T1", Trait: models.TraitImported}
	a, b := newTestGenerator(42), newTestGenerator(42)

	assert.Equal(t, a.GeneratePriceData(rec, 180), b.GeneratePriceData(rec, 180))
	assert.Equal(t, a.GenerateSupplierData(rec), b.GenerateSupplierData(rec))
	assert.Equal(t, a.GetCategoryPriceTrend("Drinks"), b.GetCategoryPriceTrend("Drinks"))
	assert.Equal(t, a.GetProductPriceHistory("P-1"), b.GetProductPriceHistory("P-1"))
	assert.Equal(t, a.GetCategoryAveragePrice(nil, "Dairy"), b.GetCategoryAveragePrice(nil, "Dairy"))
}

func TestGetSeasonalityFactorsFixedCurves(t *testing.T) {
	g := newTestGenerator(1)

	factors := g.GetSeasonalityFactors("Fruits & Vegetables")
	require.Len(t, factors, 12)
	assert.Equal(t, models.SeasonalityFactor{Month: "Jan", Factor: 1.2}, factors[0])
	assert.Equal(t, "Dec", factors[11].Month)
	assert.Equal(t, 0.8, factors[6].Factor)

	assert.Equal(t, 1.25, g.GetSeasonalityFactors("Freezer")[6].Factor)
	assert.Equal(t, 1.3, g.GetSeasonalityFactors("Drinks")[6].Factor)
}

func TestGetSeasonalityFactorsOtherCategories(t *testing.T) {
	g := newTestGenerator(7)

	for _, category := range []string{"Dairy", "Bakery", "unknown"} {
		factors := g.GetSeasonalityFactors(category)
		require.Len(t, factors, 12)
		for i, f := range factors {
			assert.Equal(t, monthNames[i], f.Month)
			assert.InDelta(t, 1.0, f.Factor, 0.05+1e-9)
		}
	}
}

func TestGetCategoryPriceTrend(t *testing.T) {
	g := newTestGenerator(3)

	points := g.GetCategoryPriceTrend("Dairy")
	require.Len(t, points, 24)
	assert.Equal(t, 100.0, points[0].Index)
	assert.Equal(t, "2023-07", points[0].Date)
	assert.Equal(t, "2025-06", points[23].Date)

	// low volatility moves at most 0.5 per month
	for i := 1; i < len(points); i++ {
		assert.InDelta(t, points[i-1].Index, points[i].Index, 0.5+0.011)
	}
}

func TestGetCategoryPriceTrendDirection(t *testing.T) {
	var up, down float64
	for seed := int64(1); seed <= 20; seed++ {
		g := newTestGenerator(seed)
		inc := g.GetCategoryPriceTrend("Fruits & Vegetables")
		dec := g.GetCategoryPriceTrend("Household")
		up += inc[23].Index - inc[0].Index
		down += dec[23].Index - dec[0].Index
	}
	assert.Greater(t, up/20, 5.0)
	assert.Less(t, down/20, -5.0)
}

func TestGetProductPriceHistory(t *testing.T) {
	points := newTestGenerator(5).GetProductPriceHistory("FV-1001")
	require.Len(t, points, 12)
	assert.Equal(t, "2024-07", points[0].Date)
	assert.Equal(t, "2025-06", points[11].Date)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.Price, 7.5)
		assert.Less(t, p.Price, 62.5)
	}

	// the base price depends on the product code, not the seed
	other := newTestGenerator(99).GetProductPriceHistory("FV-1001")
	assert.InDelta(t, averageHistory(points), averageHistory(other), 5)
	assert.Equal(t, productBasePrice("FV-1001"), productBasePrice("FV-1001"))
	assert.NotEqual(t, productBasePrice("FV-1001"), productBasePrice("FV-1002"))
}

func averageHistory(points []models.PriceHistoryPoint) float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Price
	}
	return mean(values)
}

func TestGetCategoryAveragePrice(t *testing.T) {
	g := newTestGenerator(11)

	assert.InDelta(t, 3.2, g.GetCategoryAveragePrice(nil, "Dairy"), 0.25+1e-9)
	assert.InDelta(t, 8.5, g.GetCategoryAveragePrice(testRecords(), "Meat & Fish"), 0.25+1e-9)
	assert.InDelta(t, 4.0, g.GetCategoryAveragePrice(nil, "Ferments"), 0.25+1e-9)
}

func TestGeneratePriceDataShape(t *testing.T) {
	g := newTestGenerator(8)
	points := g.GeneratePriceData(models.TenderRecord{Trait: models.TraitImported}, 180)

	require.Len(t, points, 25)
	historical, forecast := points[:19], points[19:]

	assert.Equal(t, "2024-12-17", historical[0].Date)
	assert.Equal(t, "2025-06-15", historical[18].Date)
	for _, p := range historical {
		require.NotNil(t, p.Price)
		assert.Nil(t, p.PredictedPrice)
	}

	assert.Equal(t, "2025-06-25", forecast[0].Date)
	assert.Equal(t, "2025-08-14", forecast[5].Date)
	prevWidth := 0.0
	for _, p := range forecast {
		assert.Nil(t, p.Price)
		require.NotNil(t, p.PredictedPrice)
		require.NotNil(t, p.LowerBound)
		require.NotNil(t, p.UpperBound)
		assert.LessOrEqual(t, *p.LowerBound, *p.PredictedPrice)
		assert.GreaterOrEqual(t, *p.UpperBound, *p.PredictedPrice)
		width := *p.UpperBound - *p.LowerBound
		assert.Greater(t, width, prevWidth)
		prevWidth = width
	}

	// Imported has no drift, so the forecast stays at the last price
	assert.InDelta(t, *historical[18].Price, *forecast[0].PredictedPrice, 0.011)
}

func TestGeneratePriceDataDefaultDays(t *testing.T) {
	points := newTestGenerator(2).GeneratePriceData(models.TenderRecord{}, 0)
	assert.Len(t, points, 25)

	short := newTestGenerator(2).GeneratePriceData(models.TenderRecord{}, 30)
	assert.Len(t, short, 4+6)
}

func TestGeneratePriceDataPremiumTrendsUp(t *testing.T) {
	points := newTestGenerator(4).GeneratePriceData(models.TenderRecord{Trait: models.TraitPremium}, 180)
	stats := CalculatePriceStatistics(points)

	assert.Greater(t, stats.ForecastEnd, stats.LastPrice)
	assert.Greater(t, stats.LastPrice, 15.0)
}

func TestValueIsLessVolatileThanImported(t *testing.T) {
	var valueSD, importedSD float64
	const runs = 50
	for seed := int64(1); seed <= runs; seed++ {
		g := newTestGenerator(seed)
		valueSD += stdDev(HistoricalPrices(g.GeneratePriceData(models.TenderRecord{Trait: models.TraitValue}, 180)))
		importedSD += stdDev(HistoricalPrices(g.GeneratePriceData(models.TenderRecord{Trait: models.TraitImported}, 180)))
	}
	assert.Less(t, valueSD/runs, importedSD/runs)
}

func TestGenerateSupplierData(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		quotes := newTestGenerator(seed).GenerateSupplierData(models.TenderRecord{Trait: models.TraitPremium})

		require.GreaterOrEqual(t, len(quotes), 3)
		require.LessOrEqual(t, len(quotes), 4)

		names := make(map[string]bool)
		for _, q := range quotes {
			assert.Contains(t, supplierNames, q.Name)
			assert.Contains(t, deliveryBuckets, q.Delivery)
			assert.GreaterOrEqual(t, q.Price, 13.5-0.01)
			assert.LessOrEqual(t, q.Price, 16.5+0.01)
			names[q.Name] = true
		}
		assert.Len(t, names, len(quotes))
	}
}

func TestGeneratePriceDataOffGridStartsAtDays(t *testing.T) {
	points := newTestGenerator(3).GeneratePriceData(models.TenderRecord{}, 185)

	require.Len(t, points, 26)
	assert.Equal(t, "2024-12-12", points[0].Date)
	assert.Equal(t, "2024-12-17", points[1].Date)
	assert.Equal(t, "2025-06-15", points[19].Date)
	require.NotNil(t, points[19].Price)
	assert.Nil(t, points[20].Price)
}
