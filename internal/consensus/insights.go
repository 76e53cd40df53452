package consensus

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

// nearTieMargin: insights whose weighted relevance differs by at most
// this much are ranked by occurrence count instead.
const nearTieMargin = 5.0

// mergedInsight accumulates one deduplicated insight across agents.
type mergedInsight struct {
	key       string
	text      string
	insType   core.InsightType
	reasoning string
	weighted  float64 // maximum weighted relevance seen
	count     int
	agents    []string
}

// aggregateInsights collects, weights, deduplicates, filters, ranks
// and truncates insights from the valid agents. names must be sorted;
// that ordering anchors every tie-break, so the result is independent
// of map insertion order.
func aggregateInsights(names []string, results map[string]core.AgentResult, profile RoleProfile) []core.RankedInsight {
	merged := make(map[string]*mergedInsight)
	var order []string // key insertion order over sorted names, for stable ranking

	add := func(agent string, ins core.Insight, typ core.InsightType) {
		text := strings.TrimSpace(ins.Text)
		if text == "" {
			return
		}
		weighted := math.Min(100, float64(ins.Relevance)*profile.multiplierFor(agent))
		key := string(typ) + "|" + dedupKey(text)

		entry, ok := merged[key]
		if !ok {
			entry = &mergedInsight{
				key:       key,
				text:      text,
				insType:   typ,
				reasoning: ins.Reasoning,
				weighted:  weighted,
			}
			merged[key] = entry
			order = append(order, key)
		}
		entry.count++
		if weighted > entry.weighted {
			entry.weighted = weighted
			entry.text = text
			entry.reasoning = ins.Reasoning
		}
		if !containsString(entry.agents, agent) {
			entry.agents = append(entry.agents, agent)
		}
	}

	for _, name := range names {
		result := results[name]
		for _, ins := range result.Highlights {
			add(name, ins, core.InsightStrength)
		}
		for _, ins := range result.Concerns {
			add(name, ins, core.InsightConcern)
		}
	}

	// Threshold filter, in stable key order
	survivors := make([]*mergedInsight, 0, len(order))
	for _, key := range order {
		entry := merged[key]
		if entry.weighted >= float64(profile.MinRelevance) {
			survivors = append(survivors, entry)
		}
	}

	// Weighted relevance descending; near-ties by occurrence count
	// descending. Stable sort over the deterministic initial order.
	sort.SliceStable(survivors, func(i, j int) bool {
		a, b := survivors[i], survivors[j]
		if math.Abs(a.weighted-b.weighted) <= nearTieMargin {
			if a.count != b.count {
				return a.count > b.count
			}
			return false // keep stable order
		}
		return a.weighted > b.weighted
	})

	if len(survivors) > profile.MaxInsights {
		survivors = survivors[:profile.MaxInsights]
	}

	ranked := make([]core.RankedInsight, 0, len(survivors))
	for _, entry := range survivors {
		agents := append([]string(nil), entry.agents...)
		sort.Strings(agents)
		ranked = append(ranked, core.RankedInsight{
			Text:      entry.text,
			Type:      entry.insType,
			Relevance: int(math.Round(entry.weighted)),
			Reasoning: entry.reasoning,
			Count:     entry.count,
			Agents:    agents,
		})
	}
	return ranked
}

// splitByType separates a ranked mixed list back into strengths and
// concerns, preserving rank order.
func splitByType(mixed []core.RankedInsight) (strengths, concerns []core.RankedInsight) {
	strengths = make([]core.RankedInsight, 0, len(mixed))
	concerns = make([]core.RankedInsight, 0, len(mixed))
	for _, ins := range mixed {
		if ins.Type == core.InsightConcern {
			concerns = append(concerns, ins)
		} else {
			strengths = append(strengths, ins)
		}
	}
	return strengths, concerns
}

// dedupKey normalizes insight text to its merge key: lowercase,
// punctuation stripped, first three words.
func dedupKey(text string) string {
	var builder strings.Builder
	prevSpace := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			builder.WriteRune(r)
			prevSpace = false
		} else if !prevSpace {
			builder.WriteRune(' ')
			prevSpace = true
		}
	}

	words := strings.Fields(builder.String())
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
