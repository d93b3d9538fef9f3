package classify

import (
	"strings"
	"time"

	"github.com/spendgraph/spendgraph/pkg/domain/model"
)

const (
	keywordConfidence  = 0.7
	fallbackConfidence = 0.5
	paddingConfidence  = 0.6
)

var foodKeywords = []string{
	"milk", "bread", "egg", "rice", "sugar", "tea", "coffee", "juice",
	"water", "cola", "soda", "snack", "biscuit", "chocolate", "fruit",
	"vegetable", "oil", "flour", "butter", "cheese", "meat", "chicken",
	"fish", "pasta",
}

var electronicsKeywords = []string{
	"laptop", "computer", "phone", "mobile", "tablet", "tv", "camera",
	"headphone", "speaker", "cable", "charger", "mouse", "keyboard",
}

var clothingKeywords = []string{
	"shirt", "pant", "dress", "shoe", "bag", "jacket", "cap", "hat",
	"trouser", "jean", "suit", "sock", "underwear",
}

var pharmacyKeywords = []string{
	"tablet", "capsule", "syrup", "medicine", "drug", "vitamin",
	"paracetamol", "aspirin", "cream", "ointment", "bandage",
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// fallbackClassify assigns categories by keyword matching on the item
// name. Items with no usable name get a generic record at low
// confidence so the result always lines up with the input.
func (x *Classifier) fallbackClassify(items []Item, now time.Time) []Classification {
	results := make([]Classification, 0, len(items))
	for _, item := range items {
		results = append(results, x.fallbackClassifyItem(item, now))
	}
	return results
}

func (x *Classifier) fallbackClassifyItem(item Item, now time.Time) Classification {
	name := strings.ToLower(strings.TrimSpace(item.Name))
	if name == "" {
		return Classification{
			Category:   "other",
			Confidence: fallbackConfidence,
			Price:      &model.PriceAnalysis{UnitPrice: item.Price},
		}
	}

	c := Classification{
		Confidence: keywordConfidence,
		Price:      &model.PriceAnalysis{UnitPrice: item.Price},
	}

	// Electronics is checked before pharmacy so that "tablet" keeps
	// its consumer-electronics meaning when both sets match.
	switch {
	case containsAny(name, foodKeywords):
		c.Category = "grocery"
		c.Expiry = x.predictedExpiry(item.Name, now)
		c.Nutrition = &model.NutritionInfo{IsFood: true}

	case containsAny(name, electronicsKeywords):
		c.Category = "electronics"
		c.Warranty = &model.WarrantyInfo{
			HasWarranty: true,
			Period:      "1 year",
			Expiry:      now.AddDate(1, 0, 0).Format("2006-01-02"),
		}

	case containsAny(name, clothingKeywords):
		c.Category = "clothing"

	case containsAny(name, pharmacyKeywords):
		c.Category = "pharmacy"
		c.Expiry = x.predictedExpiry(item.Name, now)

	default:
		c.Category = "other"
	}

	return c
}

// paddingClassification fills the tail when the model returns fewer
// records than items
func (x *Classifier) paddingClassification(item Item, now time.Time) Classification {
	return Classification{
		Category:   "food",
		Confidence: paddingConfidence,
		Expiry:     x.predictedExpiry(item.Name, now),
		Nutrition:  &model.NutritionInfo{IsFood: true},
		Price:      &model.PriceAnalysis{UnitPrice: item.Price},
	}
}

func (x *Classifier) predictedExpiry(name string, now time.Time) *model.ExpiryInfo {
	date, days := predictExpiryDate(name, now, x.shelfLifeOverrides)
	return &model.ExpiryInfo{
		HasExpiry:       true,
		ExpiryDate:      date,
		IsExpiringSoon:  days <= 3,
		DaysUntilExpiry: days,
	}
}
