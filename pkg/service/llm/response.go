package llm

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/m-mizutani/goerr/v2"
)

// CleanResponse strips markdown code fences and any leading or trailing
// prose around the first JSON value in an LLM response.
func CleanResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}
	cleaned = strings.TrimSpace(cleaned)

	// Cut to the outermost JSON value when the model added prose
	arrStart := strings.Index(cleaned, "[")
	objStart := strings.Index(cleaned, "{")

	start, closer := arrStart, "]"
	if arrStart < 0 || (objStart >= 0 && objStart < arrStart) {
		start, closer = objStart, "}"
	}

	if start >= 0 {
		if end := strings.LastIndex(cleaned, closer); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	return cleaned
}

// ParseJSON cleans a potentially malformed LLM response and unmarshals
// it into v, attempting a repair pass when strict parsing fails.
func ParseJSON(response string, v any) error {
	cleaned := CleanResponse(response)
	if cleaned == "" {
		return goerr.New("empty response after cleaning")
	}

	originalErr := json.Unmarshal([]byte(cleaned), v)
	if originalErr == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(cleaned)
	if err != nil {
		return goerr.Wrap(originalErr, "failed to parse LLM response",
			goerr.V("response", truncate(response, 500)))
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return goerr.Wrap(originalErr, "failed to parse repaired LLM response",
			goerr.V("response", truncate(response, 500)))
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
