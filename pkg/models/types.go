package models

// TenderRecord is one row of the tender catalogue: a procurement tender for a single product.
type TenderRecord struct {
	TenderID             string `json:"tenderId"`
	ProductCode          string `json:"productCode"`
	Product              string `json:"product"`
	Category             string `json:"category"`
	ProductDescription   string `json:"productDescription"`
	SecondaryDescription string `json:"secondaryDescription"`
	TenderStart          string `json:"tenderStart"`
	TenderEnd            string `json:"tenderEnd"`
	DeliveryStart        string `json:"deliveryStart"`
	DeliveryEnd          string `json:"deliveryEnd"`
	CaseSize             string `json:"caseSize"`
	UnitSize             string `json:"unitSize"`
	Origin               string `json:"origin"`
	SalesPackaging       string `json:"salesPackaging"`
	Storage              string `json:"storage"`
	TenderComment        string `json:"tenderComment"`
	Trait                string `json:"trait"`
}

// Trait values that shape synthetic price generation. Anything else is treated as default.
const (
	TraitPremium  = "Premium"
	TraitValue    = "Value"
	TraitOrganic  = "Organic"
	TraitImported = "Imported"
)

// Trend is the long-run price direction of a category.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
	TrendVolatile   Trend = "volatile"
)

// Volatility scales the noise added to synthetic category series.
type Volatility string

const (
	VolatilityLow    Volatility = "low"
	VolatilityMedium Volatility = "medium"
	VolatilityHigh   Volatility = "high"
)

// CategoryMetadata describes how a category is displayed and how its prices move.
type CategoryMetadata struct {
	Display    string     `json:"display"`
	Trend      Trend      `json:"trend"`
	Volatility Volatility `json:"volatility"`
}

// CategorySummary pairs a raw category with its metadata and record count.
type CategorySummary struct {
	Category     string           `json:"category"`
	Metadata     CategoryMetadata `json:"metadata"`
	ProductCount int              `json:"productCount"`
}

// PriceHistoryPoint is one month of a product's synthetic price history.
type PriceHistoryPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// CategoryTrendPoint is one month of a category price index (base 100).
type CategoryTrendPoint struct {
	Date  string  `json:"date"`
	Index float64 `json:"index"`
}

// SeasonalityFactor is the demand/price multiplier for one calendar month.
type SeasonalityFactor struct {
	Month  string  `json:"month"`
	Factor float64 `json:"factor"`
}

// PricePoint is a historical or forecast price. Historical points carry Price,
// forecast points carry PredictedPrice and bounds with Price left nil.
type PricePoint struct {
	Date           string   `json:"date"`
	Price          *float64 `json:"price"`
	PredictedPrice *float64 `json:"predictedPrice"`
	LowerBound     *float64 `json:"lowerBound,omitempty"`
	UpperBound     *float64 `json:"upperBound,omitempty"`
}

// SupplierQuote is a synthetic quote from one supplier for a tender.
type SupplierQuote struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Delivery string  `json:"delivery"`
}

// FileAnalysisResult summarizes an uploaded tender file.
type FileAnalysisResult struct {
	FileName           string              `json:"fileName"`
	RecordCount        int                 `json:"recordCount"`
	Categories         []CategorySummary   `json:"categories"`
	ProductsByCategory map[string][]string `json:"productsByCategory"`
	UnknownCategories  []string            `json:"unknownCategories,omitempty"`
}
