package services

import (
	"math"

	"procure-chat-api/pkg/models"
)

// PriceStatistics summarizes the historical and forecast parts of a price series.
type PriceStatistics struct {
	HistoricalPoints int     `json:"historicalPoints"`
	ForecastPoints   int     `json:"forecastPoints"`
	AveragePrice     float64 `json:"averagePrice"`
	MinPrice         float64 `json:"minPrice"`
	MaxPrice         float64 `json:"maxPrice"`
	StandardDev      float64 `json:"standardDeviation"`
	LastPrice        float64 `json:"lastPrice"`
	ForecastEnd      float64 `json:"forecastEnd"`
	ChangePercent    float64 `json:"changePercent"`
}

// HistoricalPrices extracts the actual prices of a series in order.
func HistoricalPrices(points []models.PricePoint) []float64 {
	prices := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Price != nil {
			prices = append(prices, *p.Price)
		}
	}
	return prices
}

// CalculatePriceStatistics computes summary statistics. An empty series yields zeros.
func CalculatePriceStatistics(points []models.PricePoint) PriceStatistics {
	prices := HistoricalPrices(points)
	stats := PriceStatistics{HistoricalPoints: len(prices)}

	for _, p := range points {
		if p.PredictedPrice != nil {
			stats.ForecastPoints++
			stats.ForecastEnd = *p.PredictedPrice
		}
	}

	if len(prices) == 0 {
		return stats
	}

	stats.MinPrice, stats.MaxPrice = prices[0], prices[0]
	for _, p := range prices {
		stats.MinPrice = math.Min(stats.MinPrice, p)
		stats.MaxPrice = math.Max(stats.MaxPrice, p)
	}
	stats.AveragePrice = round2(mean(prices))
	stats.StandardDev = round2(stdDev(prices))
	stats.LastPrice = prices[len(prices)-1]
	if prices[0] != 0 {
		stats.ChangePercent = round2((stats.LastPrice - prices[0]) / prices[0] * 100)
	}
	return stats
}

// mean returns 0 for an empty slice
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation; 0 for fewer than two values.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		sumSq += (v - m) * (v - m)
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
