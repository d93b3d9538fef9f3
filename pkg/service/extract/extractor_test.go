package extract_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gt"
	"github.com/spendgraph/spendgraph/pkg/service/extract"
)

func TestParseItemsResponse(t *testing.T) {
	t.Run("fenced array with defaults applied", func(t *testing.T) {
		response := "```json\n[{\"name\": \"COCA COLA 2L\", \"price\": 2.50}]\n```"

		items, err := extract.ParseItemsResponse(response)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1).Required()
		gt.Value(t, items[0].Name).Equal("COCA COLA 2L")
		gt.Value(t, items[0].Quantity).Equal(1)
		gt.Value(t, items[0].TotalPrice).Equal(2.50)
	})

	t.Run("quantity and total preserved", func(t *testing.T) {
		response := `[{"name": "Eggs", "price": 3.0, "quantity": 2, "total_price": 6.0}]`

		items, err := extract.ParseItemsResponse(response)
		gt.NoError(t, err).Required()
		gt.Value(t, items[0].Quantity).Equal(2)
		gt.Value(t, items[0].TotalPrice).Equal(6.0)
	})

	t.Run("nameless entries are dropped", func(t *testing.T) {
		response := `[{"name": "", "price": 1.0}, {"name": "Bread", "price": 2.0}]`

		items, err := extract.ParseItemsResponse(response)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
	})

	t.Run("prose around the array is tolerated", func(t *testing.T) {
		response := "Here you go:\n[{\"name\": \"Milk\", \"price\": 1.2}]\nAnything else?"

		items, err := extract.ParseItemsResponse(response)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
	})

	t.Run("non-JSON response fails", func(t *testing.T) {
		_, err := extract.ParseItemsResponse("I could not find any items, sorry.")
		gt.Error(t, err)
	})
}

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := extract.BuildExtractionPrompt("MILK 1L  Rs. 55.00", 97.0)

	gt.Bool(t, strings.Contains(prompt, "MILK 1L")).True()
	gt.Bool(t, strings.Contains(prompt, "97.00")).True()

	noHint := extract.BuildExtractionPrompt("MILK 1L  Rs. 55.00", 0)
	gt.Bool(t, strings.Contains(noHint, "receipt total")).False()
}

func TestExtract_WithRealGemini(t *testing.T) {
	projectID := os.Getenv("TEST_GEMINI_PROJECT")
	if projectID == "" {
		t.Skip("TEST_GEMINI_PROJECT not set")
	}
	location := os.Getenv("TEST_GEMINI_LOCATION")
	if location == "" {
		t.Skip("TEST_GEMINI_LOCATION not set")
	}

	ctx := context.Background()

	llmClient, err := gemini.New(ctx, projectID, location)
	gt.NoError(t, err).Required()

	x := extract.New(llmClient)

	rawText := `FRESH MART
123 Main Street
MILK 1L          $3.49
WHOLE WHEAT BREAD $2.99
TOTAL            $6.48
Thank you!`

	items := x.Extract(ctx, rawText, 6.48)

	gt.Number(t, len(items)).GreaterOrEqual(2)
	for _, item := range items {
		gt.Value(t, item.Name).NotEqual("")
		gt.Number(t, item.Quantity).GreaterOrEqual(1)
	}
}
