package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Boilerplate lines that never describe a purchased item. The list
// covers common header/footer words across receipt formats.
var skipWords = []string{
	"receipt", "company", "address", "date", "manager", "total", "thank",
	"description", "price", "lorem", "ipsum", "tax", "taxes", "subtotal",
	"amount", "payment", "cash", "card", "change", "bill", "invoice",
	"customer", "phone", "email", "website", "store", "shop", "market",
	"super", "time", "number", "id", "transaction", "reference", "inr",
	"usd", "currency", "balance", "tender", "received",
}

var separatorPattern = regexp.MustCompile(`^[*=\-:_~\s]+$`)

// sameLinePatterns match an item name with a trailing price on one line,
// e.g. "Basmati Rice 1kg  ₹120.00" or "Tea Powder  Rs. 85.50"
var sameLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.+?)\s+\$([0-9]+\.?[0-9]*)\s*$`),
	regexp.MustCompile(`(?i)^(.+?)\s+₹\s*([0-9]+\.?[0-9]*)\s*$`),
	regexp.MustCompile(`(?i)^(.+?)\s+INR\s+([0-9]+\.?[0-9]*)\s*$`),
	regexp.MustCompile(`(?i)^(.+?)\s+Rs\.?\s*([0-9]+\.?[0-9]*)\s*$`),
}

// priceOnlyPatterns match a line holding nothing but a price
var priceOnlyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\$([0-9]+\.?[0-9]*)\s*$`),
	regexp.MustCompile(`(?i)^₹\s*([0-9]+\.?[0-9]*)\s*$`),
	regexp.MustCompile(`(?i)^INR\s+([0-9]+\.?[0-9]*)\s*$`),
	regexp.MustCompile(`(?i)^Rs\.?\s*([0-9]+\.?[0-9]*)\s*$`),
	regexp.MustCompile(`^([0-9]+\.?[0-9]*)\s*$`),
}

// namePattern matches a plausible item name: starts with a letter,
// no digits, allows spaces, ampersands and hyphens
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z\s&\-]+$`)

const (
	minItemPrice = 1.0
	maxItemPrice = 10000.0
)

type lineRef struct {
	index int
	text  string
	price float64
}

// FallbackExtract is the deterministic, AI-independent extraction path.
// It classifies lines into same-line items, price-only lines and
// item-name candidates, then pairs names with the nearest unused price.
// For a fixed input it always produces the same ordered item list.
func FallbackExtract(rawText string, totalHint float64) []Item {
	var items []Item
	var nameLines []lineRef
	var priceLines []lineRef

	for i, raw := range strings.Split(rawText, "\n") {
		line := strings.TrimSpace(raw)
		if len(line) < 3 {
			continue
		}
		// Same-line matches are tried before the skip-word filter so a
		// currency marker like "INR" in the price part cannot veto the
		// whole line; skip words still apply to the extracted name.
		if item, ok := matchSameLine(line, totalHint); ok {
			items = append(items, item)
			continue
		}

		if isBoilerplate(line) || separatorPattern.MatchString(line) {
			continue
		}

		if price, ok := matchPriceOnly(line, totalHint); ok {
			priceLines = append(priceLines, lineRef{index: i, price: price})
			continue
		}

		if isNameCandidate(line) {
			nameLines = append(nameLines, lineRef{index: i, text: line})
		}
	}

	items = append(items, pairNamesWithPrices(nameLines, priceLines)...)
	return items
}

func isBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range skipWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func matchSameLine(line string, totalHint float64) (Item, bool) {
	for _, pattern := range sameLinePatterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		name := strings.TrimSpace(m[1])
		price, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}

		if len(name) < 3 || len(name) > 50 || !hasLetter(name) || isBoilerplate(name) {
			continue
		}
		if price < minItemPrice || price > maxItemPrice || isTotalAmount(price, totalHint) {
			continue
		}

		return Item{
			Name:       name,
			UnitPrice:  price,
			Quantity:   1,
			TotalPrice: price,
		}, true
	}
	return Item{}, false
}

func matchPriceOnly(line string, totalHint float64) (float64, bool) {
	for _, pattern := range priceOnlyPatterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		price, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if price < minItemPrice || price > maxItemPrice || isTotalAmount(price, totalHint) {
			continue
		}
		return price, true
	}
	return 0, false
}

func isNameCandidate(line string) bool {
	return len(line) >= 3 && len(line) <= 30 &&
		namePattern.MatchString(line) && hasLetter(line)
}

// pairNamesWithPrices pairs each name candidate with the nearest unused
// price line by absolute line distance. Unpaired names are dropped.
func pairNamesWithPrices(nameLines, priceLines []lineRef) []Item {
	var items []Item
	used := make(map[int]bool, len(priceLines))

	for _, name := range nameLines {
		best := -1
		bestDistance := math.MaxInt

		for j, price := range priceLines {
			if used[j] {
				continue
			}
			distance := name.index - price.index
			if distance < 0 {
				distance = -distance
			}
			if distance < bestDistance {
				bestDistance = distance
				best = j
			}
		}

		if best < 0 {
			continue
		}
		used[best] = true
		items = append(items, Item{
			Name:       name.text,
			UnitPrice:  priceLines[best].price,
			Quantity:   1,
			TotalPrice: priceLines[best].price,
		})
	}

	return items
}

func isTotalAmount(price, totalHint float64) bool {
	return totalHint > 0 && math.Abs(price-totalHint) < 0.01
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
