package config

import "procure-chat-api/pkg/models"

// categoryMetadata maps a tender category to its display name and the shape
// used when synthesizing price series for it.
var categoryMetadata = map[string]models.CategoryMetadata{
	"Fruits & Vegetables": {Display: "Fruits & Vegetables", Trend: models.TrendIncreasing, Volatility: models.VolatilityHigh},
	"Dairy":               {Display: "Dairy & Eggs", Trend: models.TrendStable, Volatility: models.VolatilityLow},
	"Meat & Fish":         {Display: "Meat & Fish", Trend: models.TrendIncreasing, Volatility: models.VolatilityMedium},
	"Bakery":              {Display: "Bakery", Trend: models.TrendStable, Volatility: models.VolatilityLow},
	"Freezer":             {Display: "Frozen Foods", Trend: models.TrendDecreasing, Volatility: models.VolatilityMedium},
	"Drinks":              {Display: "Drinks & Beverages", Trend: models.TrendVolatile, Volatility: models.VolatilityHigh},
	"Snacks":              {Display: "Snacks & Confectionery", Trend: models.TrendStable, Volatility: models.VolatilityMedium},
	"Household":           {Display: "Household & Cleaning", Trend: models.TrendDecreasing, Volatility: models.VolatilityLow},
}

// LookupCategory returns the metadata for category. Unmapped categories fall
// back to the raw name with a stable trend and medium volatility.
func LookupCategory(category string) models.CategoryMetadata {
	if meta, ok := categoryMetadata[category]; ok {
		return meta
	}
	return models.CategoryMetadata{
		Display:    category,
		Trend:      models.TrendStable,
		Volatility: models.VolatilityMedium,
	}
}

// IsKnownCategory reports whether category has an entry in the metadata table.
func IsKnownCategory(category string) bool {
	_, ok := categoryMetadata[category]
	return ok
}
