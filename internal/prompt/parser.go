package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// codeFencePattern matches ```json ... ``` and bare ``` ... ``` blocks.
var codeFencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\s*```")

// ParseResult is the discriminated outcome of response parsing. This
// boundary never throws: callers branch on Success.
type ParseResult struct {
	Success bool
	Data    interface{}
	Error   string
}

// Parse recovers a JSON value from raw model output. Stages, in order:
// strip markdown code fences, direct parse, then extraction of the
// first balanced {...} or [...] span. The stage ordering is a black-box
// contract; do not reorder.
func Parse(raw string) ParseResult {
	candidate := StripCodeFences(raw)

	if data, err := parseJSON(candidate); err == nil {
		return ParseResult{Success: true, Data: data}
	}

	span := ExtractBalancedSpan(candidate)
	if span == "" {
		return ParseResult{Success: false, Error: "no JSON object or array found in response"}
	}
	data, err := parseJSON(span)
	if err != nil {
		return ParseResult{Success: false, Error: fmt.Sprintf("extracted span is not valid JSON: %v", err)}
	}
	return ParseResult{Success: true, Data: data}
}

// ParseWithSchema parses and then validates the result against a
// schema, collecting every violation before failing.
func ParseWithSchema(raw string, schema Schema) ParseResult {
	result := Parse(raw)
	if !result.Success {
		return result
	}

	obj, ok := result.Data.(map[string]interface{})
	if !ok {
		return ParseResult{Success: false, Error: "response is not a JSON object"}
	}

	if violations := schema.Validate(obj); len(violations) > 0 {
		return ParseResult{
			Success: false,
			Error:   "schema validation failed: " + strings.Join(violations, "; "),
		}
	}
	return ParseResult{Success: true, Data: obj}
}

// StripCodeFences unwraps content from markdown code fences when the
// whole payload is fenced; otherwise the input passes through.
func StripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if matches := codeFencePattern.FindStringSubmatch(trimmed); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return trimmed
}

// ExtractBalancedSpan returns the first balanced {...} or [...] span in
// the input, respecting string literals and escapes. Empty when none.
func ExtractBalancedSpan(s string) string {
	start := -1
	var open, closing byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			open = s[i]
			if open == '{' {
				closing = '}'
			} else {
				closing = ']'
			}
			break
		}
	}
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			depth++
		case ch == closing:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func parseJSON(s string) (interface{}, error) {
	var data interface{}
	decoder := json.NewDecoder(strings.NewReader(s))
	decoder.UseNumber()
	if err := decoder.Decode(&data); err != nil {
		return nil, err
	}
	switch data.(type) {
	case map[string]interface{}, []interface{}:
		return normalizeNumbers(data), nil
	default:
		return nil, fmt.Errorf("top-level value is not an object or array")
	}
}

// normalizeNumbers converts json.Number values back to float64 so
// downstream type switches see the standard decoding shapes.
func normalizeNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return f
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	default:
		return v
	}
}
