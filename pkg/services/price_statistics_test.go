package services

import (
	"testing"

	"procure-chat-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func price(v float64) *float64 { return &v }

func TestCalculatePriceStatistics(t *testing.T) {
	points := []models.PricePoint{
		{Date: "d1", Price: price(10)},
		{Date: "d2", Price: price(12)},
		{Date: "d3", Price: price(14)},
		{Date: "f1", PredictedPrice: price(15)},
		{Date: "f2", PredictedPrice: price(16)},
	}

	stats := CalculatePriceStatistics(points)

	assert.Equal(t, 3, stats.HistoricalPoints)
	assert.Equal(t, 2, stats.ForecastPoints)
	assert.Equal(t, 12.0, stats.AveragePrice)
	assert.Equal(t, 10.0, stats.MinPrice)
	assert.Equal(t, 14.0, stats.MaxPrice)
	assert.Equal(t, 1.63, stats.StandardDev)
	assert.Equal(t, 14.0, stats.LastPrice)
	assert.Equal(t, 16.0, stats.ForecastEnd)
	assert.Equal(t, 40.0, stats.ChangePercent)
}

func TestCalculatePriceStatisticsEmpty(t *testing.T) {
	assert.Equal(t, PriceStatistics{}, CalculatePriceStatistics(nil))

	onlyForecast := CalculatePriceStatistics([]models.PricePoint{{PredictedPrice: price(3)}})
	assert.Equal(t, 0, onlyForecast.HistoricalPoints)
	assert.Equal(t, 0.0, onlyForecast.AveragePrice)
	assert.Equal(t, 3.0, onlyForecast.ForecastEnd)
}

func TestMeanAndStdDev(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil))
	assert.Equal(t, 0.0, stdDev([]float64{5}))
	assert.Equal(t, 2.0, stdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}))
}
