package agent

import (
	"strings"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/prompt"
)

// assessmentSchema gates the coarse shape of an assessment object.
// The range and alternate-form checks below go beyond what a type
// schema can express.
var assessmentSchema = prompt.Schema{
	"assessment":      {Type: prompt.TypeString, Required: true},
	"score":           {Type: prompt.TypeNumber, Required: true},
	"highlights":      {Type: prompt.TypeArray, Required: true},
	"concerns":        {Type: prompt.TypeArray, Required: true},
	"recommendations": {Type: prompt.TypeAny, Required: true},
}

// ValidStructure is the generic structural check shared by all roles:
// five top-level fields, score in [0,1], insight lists in either the
// legacy string form or the {text, relevance, reasoning} form, and
// recommendations as either the three-bucket object or a flat list.
func ValidStructure(obj map[string]interface{}) bool {
	if len(assessmentSchema.Validate(obj)) > 0 {
		return false
	}

	score, ok := numericScore(obj["score"])
	if !ok || score < 0 || score > 1 {
		return false
	}

	if !validInsightList(obj["highlights"]) || !validInsightList(obj["concerns"]) {
		return false
	}

	return validRecommendations(obj["recommendations"])
}

// ValidResponse layers the role heuristic on top of the structural
// check: the assessment must exceed 100 characters and mention at
// least one role keyword.
func (r Role) ValidResponse(obj map[string]interface{}) bool {
	if !ValidStructure(obj) {
		return false
	}

	assessment, _ := obj["assessment"].(string)
	if len(assessment) <= 100 {
		return false
	}

	lower := strings.ToLower(assessment)
	for _, keyword := range r.Keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func validInsightList(v interface{}) bool {
	list, ok := v.([]interface{})
	if !ok {
		return false
	}
	for _, item := range list {
		switch val := item.(type) {
		case string:
			// legacy form
		case map[string]interface{}:
			if _, ok := val["text"].(string); !ok {
				return false
			}
			if rel, present := val["relevance"]; present {
				n, ok := numericScore(rel)
				if !ok || n < 0 || n > 100 {
					return false
				}
			}
		default:
			return false
		}
	}
	return true
}

func validRecommendations(v interface{}) bool {
	switch val := v.(type) {
	case []interface{}:
		// legacy flat list
		for _, item := range val {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	case map[string]interface{}:
		for _, bucket := range []string{"for_recruiter", "for_candidate", "interview_focus"} {
			if entry, present := val[bucket]; present {
				if _, ok := entry.([]interface{}); !ok {
					return false
				}
			}
		}
		return true
	default:
		return false
	}
}

func numericScore(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
