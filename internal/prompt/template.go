// Package prompt builds provider message lists from templates and
// recovers structured data from model replies.
package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

// placeholderPattern matches {{dotted.path}} variables inside message content.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+(?:\.[a-zA-Z0-9_]+)*)\s*\}\}`)

// MessageTemplate is one templated message in a conversation.
type MessageTemplate struct {
	Role    string
	Content string
}

// Template is an ordered list of message templates. Rendering never
// fails: unresolved placeholders stay literal and are reported as
// warnings so the caller can log them.
type Template struct {
	Messages []MessageTemplate
}

// Render resolves placeholders against the variable bag and returns the
// final message list plus a warning per unresolved placeholder.
func (t Template) Render(vars map[string]interface{}) ([]core.ChatMessage, []string) {
	messages := make([]core.ChatMessage, 0, len(t.Messages))
	var warnings []string

	for _, mt := range t.Messages {
		content := placeholderPattern.ReplaceAllStringFunc(mt.Content, func(match string) string {
			path := placeholderPattern.FindStringSubmatch(match)[1]
			value, ok := lookupPath(vars, path)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("unresolved placeholder: %s", path))
				return match
			}
			return stringify(value)
		})
		messages = append(messages, core.ChatMessage{Role: mt.Role, Content: content})
	}

	return messages, warnings
}

// lookupPath walks a dotted path through nested maps.
func lookupPath(vars map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var current interface{} = vars
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// stringify renders a variable value for interpolation. Strings pass
// through untouched; everything else becomes compact JSON.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
