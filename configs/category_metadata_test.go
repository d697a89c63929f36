package config

import (
	"testing"

	"procure-chat-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestLookupCategory(t *testing.T) {
	testCases := []struct {
		category   string
		display    string
		trend      models.Trend
		volatility models.Volatility
	}{
		{"Fruits & Vegetables", "Fruits & Vegetables", models.TrendIncreasing, models.VolatilityHigh},
		{"Freezer", "Frozen Foods", models.TrendDecreasing, models.VolatilityMedium},
		{"Drinks", "Drinks & Beverages", models.TrendVolatile, models.VolatilityHigh},
		{"Pet Care", "Pet Care", models.TrendStable, models.VolatilityMedium},
		{"dairy", "dairy", models.TrendStable, models.VolatilityMedium},
	}

	for _, tc := range testCases {
		meta := LookupCategory(tc.category)
		assert.Equal(t, tc.display, meta.Display, tc.category)
		assert.Equal(t, tc.trend, meta.Trend, tc.category)
		assert.Equal(t, tc.volatility, meta.Volatility, tc.category)
	}
}

func TestIsKnownCategory(t *testing.T) {
	assert.True(t, IsKnownCategory("Bakery"))
	assert.False(t, IsKnownCategory("bakery"))
	assert.False(t, IsKnownCategory(""))
}
