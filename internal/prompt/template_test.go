package prompt

import (
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

func TestRenderResolvesDottedPaths(t *testing.T) {
	tmpl := Template{
		Messages: []MessageTemplate{
			{Role: core.RoleSystem, Content: "You assess candidates."},
			{Role: core.RoleUser, Content: "Name: {{candidate.name}}, Scores: {{candidate.scores}}"},
		},
	}
	vars := map[string]interface{}{
		"candidate": map[string]interface{}{
			"name":   "Jordan",
			"scores": map[string]interface{}{"overall": 0.8},
		},
	}

	messages, warnings := tmpl.Render(vars)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[1].Content != `Name: Jordan, Scores: {"overall":0.8}` {
		t.Errorf("rendered = %q", messages[1].Content)
	}
}

func TestRenderUnresolvedPlaceholderStaysLiteral(t *testing.T) {
	tmpl := Template{
		Messages: []MessageTemplate{
			{Role: core.RoleUser, Content: "Hello {{missing.path}} and {{present}}"},
		},
	}
	messages, warnings := tmpl.Render(map[string]interface{}{"present": "here"})

	if len(warnings) != 1 || !strings.Contains(warnings[0], "missing.path") {
		t.Errorf("warnings = %v", warnings)
	}
	if messages[0].Content != "Hello {{missing.path}} and here" {
		t.Errorf("rendered = %q", messages[0].Content)
	}
}

func TestRenderWhitespaceInsidePlaceholder(t *testing.T) {
	tmpl := Template{
		Messages: []MessageTemplate{{Role: core.RoleUser, Content: "{{ name }}"}},
	}
	messages, warnings := tmpl.Render(map[string]interface{}{"name": "x"})
	if len(warnings) != 0 || messages[0].Content != "x" {
		t.Errorf("rendered = %q, warnings = %v", messages[0].Content, warnings)
	}
}

func TestRenderPathThroughNonMap(t *testing.T) {
	tmpl := Template{
		Messages: []MessageTemplate{{Role: core.RoleUser, Content: "{{a.b.c}}"}},
	}
	_, warnings := tmpl.Render(map[string]interface{}{
		"a": map[string]interface{}{"b": "not a map"},
	})
	if len(warnings) != 1 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestStringify(t *testing.T) {
	if got := stringify("plain"); got != "plain" {
		t.Errorf("string passthrough broken: %q", got)
	}
	if got := stringify(nil); got != "" {
		t.Errorf("nil = %q, want empty", got)
	}
	if got := stringify([]interface{}{1.0, "a"}); got != `[1,"a"]` {
		t.Errorf("slice = %q", got)
	}
}
