// Package agent implements the role-specialized evaluation agents. The
// three roles share one evaluator; only the data in the Role table
// varies, not the control flow.
package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

// Role parameterizes the generic evaluator: identity, system prompt,
// prompt augmentation, and the validation keyword set.
type Role struct {
	Name        string
	Description string
	System      string
	Keywords    []string
	Augment     func(core.EvaluationInput) string
}

// Agent names. The coordinator registry is keyed by these.
const (
	RoleLeadership = "leadership"
	RoleTechnical  = "technical"
	RoleCulture    = "culture"
)

const responseContract = `Respond with a single JSON object containing exactly these fields:
- "assessment": a thorough written evaluation (at least two paragraphs)
- "score": a number between 0 and 1
- "highlights": list of {"text", "relevance" (0-100), "reasoning"} objects
- "concerns": list of {"text", "relevance" (0-100), "reasoning"} objects
- "recommendations": {"for_recruiter": [], "for_candidate": [], "interview_focus": []}`

// Roles returns the full role table in registry order.
func Roles() []Role {
	return []Role{
		{
			Name:        RoleLeadership,
			Description: "Senior hiring manager assessing leadership and business impact",
			System: `You are a senior hiring manager evaluating a candidate's leadership potential,
strategic thinking, and business impact. Weigh career progression, scope of
ownership, and evidence of outcomes over titles.

` + responseContract,
			Keywords: []string{"leadership", "strategic", "business", "growth", "impact"},
			Augment:  augmentLeadership,
		},
		{
			Name:        RoleTechnical,
			Description: "Principal engineer assessing technical depth and breadth",
			System: `You are a principal engineer evaluating a candidate's technical depth,
engineering judgment, and stack fit. Weigh hands-on evidence over claimed
skills and look for architecture and code-quality signals.

` + responseContract,
			Keywords: []string{"technical", "engineering", "architecture", "code", "stack", "skills"},
			Augment:  augmentTechnical,
		},
		{
			Name:        RoleCulture,
			Description: "People partner assessing team and culture fit",
			System: `You are an experienced people partner evaluating a candidate's culture
contribution, collaboration style, and team fit. Weigh tenure patterns,
communication evidence, and values alignment.

` + responseContract,
			Keywords: []string{"culture", "team", "collaboration", "values", "communication", "fit"},
			Augment:  augmentCulture,
		},
	}
}

// augmentLeadership surfaces the target position and seniority signals.
func augmentLeadership(input core.EvaluationInput) string {
	var b strings.Builder
	if pos, ok := input.StructuredData["positionAppliedFor"].(map[string]interface{}); ok {
		if title, ok := pos["title"].(string); ok && title != "" {
			fmt.Fprintf(&b, "Target position: %s", title)
			if level, ok := pos["level"].(string); ok && level != "" {
				fmt.Fprintf(&b, " (%s level)", level)
			}
			b.WriteString(".\n")
		}
	}
	if titles := positionTitles(input); len(titles) > 0 {
		fmt.Fprintf(&b, "Career progression by title: %s.\n", strings.Join(titles, " -> "))
	}
	if b.Len() == 0 {
		return ""
	}
	return "Leadership context:\n" + b.String()
}

// augmentTechnical lists the candidate's declared tech stack.
func augmentTechnical(input core.EvaluationInput) string {
	skills := collectSkills(input.StructuredData["skillsAndSpecialties"])
	if len(skills) == 0 {
		return ""
	}
	return fmt.Sprintf("Declared tech stack: %s.", strings.Join(skills, ", "))
}

// augmentCulture computes career-tenure statistics from work history.
func augmentCulture(input core.EvaluationInput) string {
	experience, ok := input.StructuredData["workExperience"].([]interface{})
	if !ok || len(experience) == 0 {
		return ""
	}

	positions := len(experience)
	var totalYears float64
	var counted int
	for _, entry := range experience {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		for _, key := range []string{"years", "tenureYears", "durationYears"} {
			if years, ok := numericField(m, key); ok {
				totalYears += years
				counted++
				break
			}
		}
	}

	stats := fmt.Sprintf("Career tenure: %d positions held", positions)
	if counted > 0 {
		stats += fmt.Sprintf(", average tenure %.1f years", totalYears/float64(counted))
	}
	return stats + "."
}

func positionTitles(input core.EvaluationInput) []string {
	experience, ok := input.StructuredData["workExperience"].([]interface{})
	if !ok {
		return nil
	}
	var titles []string
	for _, entry := range experience {
		if m, ok := entry.(map[string]interface{}); ok {
			if title, ok := m["title"].(string); ok && title != "" {
				titles = append(titles, title)
			}
		}
	}
	return titles
}

// collectSkills flattens skillsAndSpecialties, which arrives either as
// a list of strings or as a category->list map.
func collectSkills(v interface{}) []string {
	switch val := v.(type) {
	case []interface{}:
		var skills []string
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				skills = append(skills, s)
			}
		}
		return skills
	case map[string]interface{}:
		categories := make([]string, 0, len(val))
		for category := range val {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		var skills []string
		for _, category := range categories {
			skills = append(skills, collectSkills(val[category])...)
		}
		return skills
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	default:
		return nil
	}
}

func numericField(m map[string]interface{}, key string) (float64, bool) {
	switch n := m[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
