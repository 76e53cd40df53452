package core

import (
	"testing"
)

func TestJobContextExtraction(t *testing.T) {
	input := EvaluationInput{
		StructuredData: map[string]interface{}{
			"positionAppliedFor": map[string]interface{}{
				"roleType":    "engineer",
				"domainFocus": "backend",
			},
		},
	}
	ctx := input.JobContext()
	if ctx.RoleType != "engineer" || ctx.DomainFocus != "backend" {
		t.Errorf("got %+v", ctx)
	}
}

func TestJobContextMissingFields(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
	}{
		{"nil structured data", nil},
		{"no position", map[string]interface{}{}},
		{"position wrong type", map[string]interface{}{"positionAppliedFor": "staff engineer"}},
		{"fields wrong type", map[string]interface{}{
			"positionAppliedFor": map[string]interface{}{"roleType": 3},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := EvaluationInput{StructuredData: tt.data}.JobContext()
			if ctx != (JobContext{}) {
				t.Errorf("got %+v, want zero value", ctx)
			}
		})
	}
}

func TestInsightFromValueLegacyString(t *testing.T) {
	ins, ok := InsightFromValue("Strong communicator", InsightStrength)
	if !ok {
		t.Fatal("legacy string rejected")
	}
	if ins.Relevance != DefaultLegacyRelevance {
		t.Errorf("relevance = %d, want %d", ins.Relevance, DefaultLegacyRelevance)
	}
	if ins.Type != InsightStrength || ins.Text != "Strong communicator" {
		t.Errorf("got %+v", ins)
	}
}

func TestInsightFromValueObject(t *testing.T) {
	ins, ok := InsightFromValue(map[string]interface{}{
		"text":      "Deep Go expertise",
		"relevance": 92.0,
		"reasoning": "Ten years of production Go",
	}, InsightConcern)
	if !ok {
		t.Fatal("object form rejected")
	}
	if ins.Relevance != 92 || ins.Reasoning != "Ten years of production Go" || ins.Type != InsightConcern {
		t.Errorf("got %+v", ins)
	}
}

func TestInsightFromValueObjectDefaults(t *testing.T) {
	ins, ok := InsightFromValue(map[string]interface{}{"text": "Bare text"}, InsightStrength)
	if !ok {
		t.Fatal("text-only object rejected")
	}
	if ins.Relevance != DefaultLegacyRelevance {
		t.Errorf("relevance = %d, want default", ins.Relevance)
	}
}

func TestInsightFromValueRejections(t *testing.T) {
	invalid := []interface{}{
		"",
		map[string]interface{}{"relevance": 50.0},
		map[string]interface{}{"text": ""},
		42,
		nil,
		[]interface{}{"list"},
	}
	for _, v := range invalid {
		if _, ok := InsightFromValue(v, InsightStrength); ok {
			t.Errorf("InsightFromValue(%v) accepted, want rejection", v)
		}
	}
}
