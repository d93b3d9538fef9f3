package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/gollem"
	"github.com/spendgraph/spendgraph/pkg/service/llm"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
)

// Extractor converts raw OCR receipt text into candidate purchased
// items. The AI-assisted parse runs first; any transport or parse
// failure falls through to the deterministic line heuristic, so
// extraction itself never fails.
type Extractor struct {
	llmClient gollem.LLMClient
}

// New creates an Extractor. A nil LLM client disables the AI path and
// routes every call through the deterministic fallback.
func New(llmClient gollem.LLMClient) *Extractor {
	return &Extractor{llmClient: llmClient}
}

// Extract returns the ordered items found in rawText. totalHint is the
// receipt's total amount when known (0 when absent); lines matching it
// within one cent are excluded as the merchant's own total.
func (x *Extractor) Extract(ctx context.Context, rawText string, totalHint float64) []Item {
	logger := logging.From(ctx)

	if strings.TrimSpace(rawText) == "" {
		return nil
	}

	if x.llmClient != nil {
		items, err := x.extractWithLLM(ctx, rawText, totalHint)
		if err == nil {
			logger.Debug("extracted items via LLM", "count", len(items))
			return items
		}
		logger.Warn("LLM extraction failed, using fallback extraction", "error", err.Error())
	}

	return FallbackExtract(rawText, totalHint)
}

func (x *Extractor) extractWithLLM(ctx context.Context, rawText string, totalHint float64) ([]Item, error) {
	prompt := buildExtractionPrompt(rawText, totalHint)

	response, err := llm.Generate(ctx, x.llmClient, prompt)
	if err != nil {
		return nil, err
	}

	return parseItemsResponse(response)
}

func parseItemsResponse(response string) ([]Item, error) {
	var wires []itemWire
	if err := llm.ParseJSON(response, &wires); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(wires))
	for _, w := range wires {
		if strings.TrimSpace(w.Name) == "" {
			continue
		}
		items = append(items, w.toItem())
	}
	return items, nil
}

func buildExtractionPrompt(rawText string, totalHint float64) string {
	var sb strings.Builder

	sb.WriteString("You are a universal receipt parser handling all business types: grocery, restaurant, electronics, retail, pharmacy, fuel, online and B2B purchases.\n\n")
	sb.WriteString("Receipt text:\n")
	sb.WriteString(rawText)
	sb.WriteString("\n\n")
	sb.WriteString("Respond with ONLY a valid JSON array. No explanations, no markdown, no extra text.\n\n")
	sb.WriteString("Extract every individual purchased item, product or service:\n")
	sb.WriteString(`[{"name": "Product Name", "price": 12.99, "quantity": 2, "total_price": 25.98}]` + "\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Include exact names as written on the receipt\n")
	sb.WriteString("- Convert all prices to plain numbers (strip $, ₹, €, £, Rs.)\n")
	sb.WriteString("- Handle quantity formats like \"2x\", \"qty 3\", \"3 @\"; default to 1\n")
	sb.WriteString("- Skip taxes, fees, totals, subtotals, merchant info and payment details\n")
	if totalHint > 0 {
		sb.WriteString(fmt.Sprintf("- The receipt total is %.2f; never emit it (or any amount within 1 cent of it) as an item\n", totalHint))
	}
	sb.WriteString("- Return [] only if absolutely no purchasable items are found\n")

	return sb.String()
}
