package agent

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/prompt"
)

// RecoverAssessment recovers a validated assessment object from a raw
// provider response. The stage ordering is a black-box contract and
// must not be reordered; the chain short-circuits at the first stage
// whose parse result passes valid:
//
//  1. raw is already an object passing validation
//  2. raw has a "content" string field: tolerant parse of that string
//     (fences stripped, direct parse, then first balanced JSON span)
//  3. otherwise: coerce the whole response to a string and run the
//     same tolerant parse
//
// Returns false when every stage fails.
func RecoverAssessment(raw interface{}, valid func(map[string]interface{}) bool) (map[string]interface{}, bool) {
	if obj, ok := raw.(map[string]interface{}); ok {
		if valid(obj) {
			return obj, true
		}
		if content, ok := obj["content"].(string); ok {
			return recoverFromText(content, valid)
		}
		return nil, false
	}

	return recoverFromText(coerceString(raw), valid)
}

func recoverFromText(text string, valid func(map[string]interface{}) bool) (map[string]interface{}, bool) {
	result := prompt.Parse(text)
	if !result.Success {
		return nil, false
	}
	obj, ok := result.Data.(map[string]interface{})
	if !ok || !valid(obj) {
		return nil, false
	}
	return obj, true
}

func coerceString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		if b, err := json.Marshal(val); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", val)
	}
}

// truncatePreview bounds the echoed raw text in fallback assessments,
// never splitting a multi-byte rune at the cut.
func truncatePreview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
