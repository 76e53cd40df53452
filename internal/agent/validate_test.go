package agent

import (
	"encoding/json"
	"strings"
	"testing"
)

func decodeObject(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		t.Fatalf("test fixture: %v", err)
	}
	return obj
}

const structurallyValid = `{
	"assessment": "text",
	"score": 0.5,
	"highlights": [{"text": "a", "relevance": 80}],
	"concerns": ["legacy string form"],
	"recommendations": {"for_recruiter": ["x"]}
}`

func TestValidStructure(t *testing.T) {
	if !ValidStructure(decodeObject(t, structurallyValid)) {
		t.Error("canonical object should validate")
	}
}

func TestValidStructureRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing field", func(o map[string]interface{}) { delete(o, "concerns") }},
		{"score above one", func(o map[string]interface{}) { o["score"] = 1.5 }},
		{"score below zero", func(o map[string]interface{}) { o["score"] = -0.1 }},
		{"score not numeric", func(o map[string]interface{}) { o["score"] = "0.5" }},
		{"highlights not a list", func(o map[string]interface{}) { o["highlights"] = "nope" }},
		{"insight without text", func(o map[string]interface{}) {
			o["highlights"] = []interface{}{map[string]interface{}{"relevance": 80.0}}
		}},
		{"relevance out of range", func(o map[string]interface{}) {
			o["highlights"] = []interface{}{map[string]interface{}{"text": "a", "relevance": 150.0}}
		}},
		{"recommendations scalar", func(o map[string]interface{}) { o["recommendations"] = "call them" }},
		{"flat list with non-string", func(o map[string]interface{}) {
			o["recommendations"] = []interface{}{"ok", 3.0}
		}},
		{"bucket not a list", func(o map[string]interface{}) {
			o["recommendations"] = map[string]interface{}{"for_recruiter": "x"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := decodeObject(t, structurallyValid)
			tt.mutate(obj)
			if ValidStructure(obj) {
				t.Error("mutated object should not validate")
			}
		})
	}
}

func TestValidResponseKeywordHeuristic(t *testing.T) {
	role := roleByName(t, RoleCulture)

	obj := decodeObject(t, structurallyValid)
	obj["assessment"] = "The candidate shows a collaborative working style and strong values alignment with the team, based on clear evidence of long and productive tenures."
	if !role.ValidResponse(obj) {
		t.Error("assessment with role keywords should validate")
	}

	obj["assessment"] = strings.Repeat("Nothing relevant here. ", 10)
	if role.ValidResponse(obj) {
		t.Error("assessment without role keywords should not validate")
	}

	obj["assessment"] = "team fit"
	if role.ValidResponse(obj) {
		t.Error("short assessment should not validate")
	}
}
