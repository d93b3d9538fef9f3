package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/service/llm"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
)

// Classifier assigns a category and enrichment attributes to purchase
// items. With an LLM client it classifies the whole purchase in one
// batched call; without one, or when the call fails, it degrades to
// keyword matching.
type Classifier struct {
	llmClient          gollem.LLMClient
	categories         []string
	shelfLifeOverrides map[string]int
	now                func() time.Time
}

type Option func(*Classifier)

// WithCategories replaces the default category vocabulary offered to
// the model
func WithCategories(categories []string) Option {
	return func(x *Classifier) {
		if len(categories) > 0 {
			x.categories = categories
		}
	}
}

// WithShelfLife overrides shelf-life days for specific product keywords
func WithShelfLife(overrides map[string]int) Option {
	return func(x *Classifier) {
		x.shelfLifeOverrides = overrides
	}
}

// WithNow fixes the clock used for expiry prediction
func WithNow(now func() time.Time) Option {
	return func(x *Classifier) {
		x.now = now
	}
}

// New creates a Classifier. A nil llmClient disables the AI path and
// every call goes through keyword matching.
func New(llmClient gollem.LLMClient, options ...Option) *Classifier {
	x := &Classifier{
		llmClient:  llmClient,
		categories: DefaultCategories,
		now:        time.Now,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

// Classify returns one classification per input item, in input order,
// plus a purchase-level business analysis. It never fails: any AI
// error is logged and answered with the keyword fallback.
func (x *Classifier) Classify(ctx context.Context, merchantName string, items []Item) ([]Classification, *BusinessAnalysis) {
	if len(items) == 0 {
		return nil, defaultBusinessAnalysis()
	}

	now := x.now().UTC()

	if x.llmClient != nil {
		results, business, err := x.classifyWithLLM(ctx, merchantName, items, now)
		if err == nil {
			return results, business
		}
		logging.From(ctx).Warn("AI classification failed, using keyword fallback",
			"error", err, "items", len(items))
	}

	return x.fallbackClassify(items, now), defaultBusinessAnalysis()
}

func (x *Classifier) classifyWithLLM(ctx context.Context, merchantName string, items []Item, now time.Time) ([]Classification, *BusinessAnalysis, error) {
	prompt := x.buildClassificationPrompt(merchantName, items, now)

	response, err := llm.Generate(ctx, x.llmClient, prompt)
	if err != nil {
		return nil, nil, err
	}

	return x.parseClassificationResponse(response, items, now)
}

type classificationResponse struct {
	BusinessAnalysis    BusinessAnalysis     `json:"business_analysis"`
	ItemClassifications []classificationWire `json:"item_classifications"`
}

type classificationWire struct {
	Category      string        `json:"category"`
	Confidence    float64       `json:"confidence"`
	Brand         string        `json:"brand"`
	ProductType   string        `json:"product_type"`
	WarrantyInfo  warrantyWire  `json:"warranty_info"`
	ExpiryInfo    expiryWire    `json:"expiry_info"`
	Nutrition     nutritionWire `json:"nutritional_info"`
	PriceAnalysis priceWire     `json:"price_analysis"`
}

type warrantyWire struct {
	HasWarranty bool   `json:"has_warranty"`
	Period      string `json:"warranty_period"`
	Expiry      string `json:"warranty_expiry"`
}

type expiryWire struct {
	HasExpiry         bool    `json:"has_expiry"`
	ExpiryDate        string  `json:"expiry_date"`
	IsExpiringSoon    bool    `json:"is_expiring_soon"`
	DaysUntilExpiry   float64 `json:"days_until_expiry"`
	ShelfLifeAnalysis string  `json:"shelf_life_analysis"`
}

type nutritionWire struct {
	IsFood      bool     `json:"is_food"`
	Allergens   []string `json:"allergens"`
	DietaryTags []string `json:"dietary_tags"`
}

type priceWire struct {
	UnitPrice          float64 `json:"unit_price"`
	IsDiscounted       bool    `json:"is_discounted"`
	DiscountPercentage float64 `json:"discount_percentage"`
	OriginalPrice      float64 `json:"original_price"`
}

// parseClassificationResponse converts the model output into the
// internal result, padding or truncating so the result length always
// matches the input length.
func (x *Classifier) parseClassificationResponse(response string, items []Item, now time.Time) ([]Classification, *BusinessAnalysis, error) {
	var parsed classificationResponse
	if err := llm.ParseJSON(response, &parsed); err != nil {
		return nil, nil, err
	}

	results := make([]Classification, 0, len(items))
	for i, wire := range parsed.ItemClassifications {
		if i >= len(items) {
			break
		}
		results = append(results, x.toClassification(wire, items[i], now))
	}
	for len(results) < len(items) {
		results = append(results, x.paddingClassification(items[len(results)], now))
	}

	business := parsed.BusinessAnalysis
	if business.BusinessCategory == "" {
		business = *defaultBusinessAnalysis()
	}

	return results, &business, nil
}

func (x *Classifier) toClassification(wire classificationWire, item Item, now time.Time) Classification {
	c := Classification{
		Category:    wire.Category,
		Confidence:  clampConfidence(wire.Confidence),
		Brand:       wire.Brand,
		ProductType: wire.ProductType,
	}
	if c.Category == "" {
		c.Category = "other"
	}

	if wire.WarrantyInfo.HasWarranty {
		c.Warranty = &model.WarrantyInfo{
			HasWarranty: true,
			Period:      wire.WarrantyInfo.Period,
			Expiry:      wire.WarrantyInfo.Expiry,
		}
	}

	if wire.ExpiryInfo.HasExpiry {
		expiry := &model.ExpiryInfo{
			HasExpiry:         true,
			ExpiryDate:        wire.ExpiryInfo.ExpiryDate,
			IsExpiringSoon:    wire.ExpiryInfo.IsExpiringSoon,
			DaysUntilExpiry:   int(wire.ExpiryInfo.DaysUntilExpiry),
			ShelfLifeAnalysis: wire.ExpiryInfo.ShelfLifeAnalysis,
		}
		if expiry.ExpiryDate == "" {
			expiry.ExpiryDate, expiry.DaysUntilExpiry = predictExpiryDate(item.Name, now, x.shelfLifeOverrides)
			expiry.IsExpiringSoon = expiry.DaysUntilExpiry <= 3
		}
		c.Expiry = expiry
	}

	if wire.Nutrition.IsFood || len(wire.Nutrition.Allergens) > 0 || len(wire.Nutrition.DietaryTags) > 0 {
		c.Nutrition = &model.NutritionInfo{
			IsFood:      wire.Nutrition.IsFood,
			Allergens:   wire.Nutrition.Allergens,
			DietaryTags: wire.Nutrition.DietaryTags,
		}
	}

	price := &model.PriceAnalysis{
		UnitPrice:          wire.PriceAnalysis.UnitPrice,
		IsDiscounted:       wire.PriceAnalysis.IsDiscounted,
		DiscountPercentage: wire.PriceAnalysis.DiscountPercentage,
		OriginalPrice:      wire.PriceAnalysis.OriginalPrice,
	}
	if price.UnitPrice == 0 {
		price.UnitPrice = item.Price
	}
	c.Price = price

	return c
}

func clampConfidence(v float64) float64 {
	switch {
	case v <= 0:
		return fallbackConfidence
	case v > 1:
		return 1.0
	default:
		return v
	}
}

func (x *Classifier) buildClassificationPrompt(merchantName string, items []Item, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("Analyze this purchase and classify every item.\n\n")
	if merchantName != "" {
		fmt.Fprintf(&sb, "Store: %s\n", merchantName)
	}
	fmt.Fprintf(&sb, "Purchase date: %s\n\nItems:\n", now.Format("2006-01-02"))

	for i, item := range items {
		fmt.Fprintf(&sb, "%d. %s", i+1, item.Name)
		if item.Description != "" {
			fmt.Fprintf(&sb, " (%s)", item.Description)
		}
		if item.Price > 0 {
			fmt.Fprintf(&sb, " - %.2f", item.Price)
		}
		if item.Quantity > 1 {
			fmt.Fprintf(&sb, " x%d", item.Quantity)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, `
Choose each item's category from this list only:
%s

For food items, estimate expiry from typical shelf life counted from the
purchase date (dairy 3-10 days, bread 2-4 days, fresh produce 3-30 days,
meat and seafood 1-3 days, dry goods 180-730 days). Mark is_expiring_soon
when the item expires within 3 days. For electronics, include warranty
details when a standard warranty applies.

Confidence guidance: 0.9-1.0 for clear matches, 0.7-0.8 for probable
matches, 0.5-0.6 for guesses.

Respond with JSON only, exactly one classification per item in order:
{
  "business_analysis": {"business_category": "...", "store_type": "..."},
  "item_classifications": [
    {
      "category": "...",
      "confidence": 0.95,
      "brand": "...",
      "product_type": "...",
      "warranty_info": {"has_warranty": false, "warranty_period": "", "warranty_expiry": ""},
      "expiry_info": {"has_expiry": false, "expiry_date": "", "is_expiring_soon": false, "days_until_expiry": 0, "shelf_life_analysis": ""},
      "nutritional_info": {"is_food": false, "allergens": [], "dietary_tags": []},
      "price_analysis": {"unit_price": 0, "is_discounted": false, "discount_percentage": 0, "original_price": 0}
    }
  ]
}
`, strings.Join(x.categories, ", "))

	return sb.String()
}
