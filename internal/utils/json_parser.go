package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// ParseModelJSON extracts a single JSON object from raw language-model
// output and unmarshals it into target. The model is asked for JSON only,
// but in practice the object may arrive wrapped in a markdown code fence
// or surrounded by prose, so parsing is attempted in order:
//  1. the input as-is
//  2. the contents of the first code fence
//  3. the first balanced top-level {...} substring
func ParseModelJSON(input string, target interface{}) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("empty input")
	}

	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if m := fenceRe.FindStringSubmatch(input); len(m) > 1 {
		if err := json.Unmarshal([]byte(m[1]), target); err == nil {
			return nil
		}
	}

	if obj := firstJSONObject(input); obj != "" {
		if err := json.Unmarshal([]byte(obj), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no parseable JSON object in input: %s", truncate(input, 100))
}

// firstJSONObject returns the first balanced {...} substring, tracking
// string literals and escapes so braces inside strings don't count.
func firstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(input); i++ {
		ch := input[i]

		if escaped {
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return input[start : i+1]
				}
			}
		}
	}

	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
