package llm_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/spendgraph/spendgraph/pkg/service/llm"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain json passes through",
			input:    `[{"name":"Milk"}]`,
			expected: `[{"name":"Milk"}]`,
		},
		{
			name:     "json fence stripped",
			input:    "```json\n[{\"name\":\"Milk\"}]\n```",
			expected: `[{"name":"Milk"}]`,
		},
		{
			name:     "bare fence stripped",
			input:    "```\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "leading prose removed",
			input:    "Here are the items:\n[{\"name\":\"Milk\"}]\nLet me know!",
			expected: `[{"name":"Milk"}]`,
		},
		{
			name:     "object before array wins",
			input:    `{"items":[1,2]}`,
			expected: `{"items":[1,2]}`,
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, llm.CleanResponse(tt.input)).Equal(tt.expected)
		})
	}
}

func TestParseJSON(t *testing.T) {
	type item struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	t.Run("valid fenced array", func(t *testing.T) {
		var items []item
		err := llm.ParseJSON("```json\n[{\"name\":\"Milk\",\"price\":55}]\n```", &items)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
		gt.Value(t, items[0].Name).Equal("Milk")
	})

	t.Run("trailing comma repaired", func(t *testing.T) {
		var items []item
		err := llm.ParseJSON(`[{"name":"Milk","price":55},]`, &items)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
	})

	t.Run("unparseable text fails", func(t *testing.T) {
		var items []item
		err := llm.ParseJSON("no json here at all", &items)
		gt.Error(t, err)
	})

	t.Run("empty text fails", func(t *testing.T) {
		var items []item
		err := llm.ParseJSON("", &items)
		gt.Error(t, err)
	})
}
