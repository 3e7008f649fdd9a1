package scanning

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseTextJSON parses the JSON array of text fragments returned by an LLM
func parseTextJSON(text string) ([]string, error) {
	// Remove markdown code blocks if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Find the array boundaries - look for first [ and last ]
	startIdx := strings.Index(text, "[")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON array found in response")
	}
	endIdx := strings.LastIndex(text, "]")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON array in response")
	}
	text = text[startIdx : endIdx+1]

	var fragments []string
	if err := json.Unmarshal([]byte(text), &fragments); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	return compactFragments(fragments), nil
}

// compactFragments trims fragments and drops the blank ones
func compactFragments(fragments []string) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}
