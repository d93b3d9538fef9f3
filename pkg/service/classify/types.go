package classify

import "github.com/spendgraph/spendgraph/pkg/domain/model"

// Item is a purchase line handed to the classifier. Both structured
// receipt items and lines recovered from raw text are converted into
// this shape before classification.
type Item struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// Classification is the per-item result. The slice returned by
// Classify always has exactly one entry per input item, in input
// order.
type Classification struct {
	Category    string
	Confidence  float64
	Brand       string
	ProductType string

	Warranty  *model.WarrantyInfo
	Expiry    *model.ExpiryInfo
	Nutrition *model.NutritionInfo
	Price     *model.PriceAnalysis
}

// BusinessAnalysis describes the merchant as inferred from the whole
// purchase, not a single item.
type BusinessAnalysis struct {
	BusinessCategory string `json:"business_category"`
	StoreType        string `json:"store_type"`
}

func defaultBusinessAnalysis() *BusinessAnalysis {
	return &BusinessAnalysis{
		BusinessCategory: "grocery_store",
		StoreType:        "supermarket",
	}
}
