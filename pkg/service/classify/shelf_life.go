package classify

import (
	"strings"
	"time"
)

// shelfLifeRule maps a product-name keyword to a typical shelf life in
// days. Rules are ordered: the first matching keyword wins, so more
// specific words (rice) must precede their substrings (ice).
type shelfLifeRule struct {
	keyword string
	days    int
}

const defaultShelfLifeDays = 30

var shelfLifeRules = []shelfLifeRule{
	// Dairy
	{"milk", 3}, {"yogurt", 5}, {"cream", 4}, {"butter", 7}, {"cheese", 10},
	// Bread and bakery
	{"bread", 3}, {"bun", 2}, {"cake", 4}, {"pastry", 2}, {"croissant", 2},
	// Fresh produce
	{"banana", 5}, {"apple", 14}, {"orange", 10}, {"tomato", 7},
	{"lettuce", 3}, {"potato", 30}, {"onion", 21}, {"carrot", 21},
	{"cucumber", 7},
	// Meat and seafood
	{"chicken", 2}, {"beef", 3}, {"pork", 3}, {"fish", 1}, {"shrimp", 1},
	// Processed foods
	{"pasta", 365}, {"rice", 365}, {"flour", 180}, {"sugar", 730},
	{"oil", 180}, {"vinegar", 730}, {"sauce", 90}, {"jam", 365},
	// Beverages
	{"juice", 7}, {"soda", 180}, {"water", 365}, {"tea", 730}, {"coffee", 365},
	// Frozen
	{"frozen", 90}, {"ice", 365},
	// Canned goods
	{"canned", 730}, {"can", 730},
	// Medicine and supplements
	{"tablet", 730}, {"capsule", 730}, {"syrup", 365}, {"vitamin", 730},
}

// shelfLifeDays returns the predicted shelf life for a product name
func shelfLifeDays(productName string, overrides map[string]int) int {
	lower := strings.ToLower(productName)

	for _, rule := range shelfLifeRules {
		if strings.Contains(lower, rule.keyword) {
			if days, ok := overrides[rule.keyword]; ok {
				return days
			}
			return rule.days
		}
	}
	return defaultShelfLifeDays
}

// predictExpiryDate predicts an expiry date for a product when the
// receipt carries none: shelf life days added to the current date,
// formatted as YYYY-MM-DD.
func predictExpiryDate(productName string, now time.Time, overrides map[string]int) (string, int) {
	days := shelfLifeDays(productName, overrides)
	return now.AddDate(0, 0, days).Format("2006-01-02"), days
}
