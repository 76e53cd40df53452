// Package consensus reconciles independent agent assessments into one
// recommendation. The engine is purely synchronous and deterministic:
// the same agent-result map yields byte-identical output regardless of
// insertion or completion order.
package consensus

// Weights maps agent names to their share of the weighted score.
type Weights map[string]float64

// DefaultAgentWeight applies to agents missing from the weight table.
const DefaultAgentWeight = 0.33

// DefaultWeights returns the default agent weight table.
func DefaultWeights() Weights {
	return Weights{
		"leadership": 0.34,
		"technical":  0.33,
		"culture":    0.33,
	}
}

func (w Weights) weightFor(agent string) float64 {
	if weight, ok := w[agent]; ok {
		return weight
	}
	return DefaultAgentWeight
}

// RoleProfile tunes insight aggregation for one hiring role type. The
// multipliers and thresholds are heuristic constants tuned by
// inspection; they are configuration, not derived values.
type RoleProfile struct {
	MinRelevance int                // insights below this weighted relevance are dropped
	MaxInsights  int                // surviving-insight cap
	Multipliers  map[string]float64 // agent name -> expertise multiplier
}

// RoleProfiles maps normalized role types to their profiles.
type RoleProfiles map[string]RoleProfile

// DefaultRoleProfiles returns the expertise table: technical judgment
// counts more for individual-contributor roles, leadership judgment
// for executive roles.
func DefaultRoleProfiles() RoleProfiles {
	return RoleProfiles{
		"individual_contributor": {
			MinRelevance: 60,
			MaxInsights:  5,
			Multipliers:  map[string]float64{"technical": 1.3, "leadership": 0.9, "culture": 1.0},
		},
		"executive": {
			MinRelevance: 65,
			MaxInsights:  5,
			Multipliers:  map[string]float64{"leadership": 1.3, "technical": 0.9, "culture": 1.1},
		},
		"management": {
			MinRelevance: 60,
			MaxInsights:  6,
			Multipliers:  map[string]float64{"leadership": 1.2, "technical": 1.0, "culture": 1.2},
		},
		"general": {
			MinRelevance: 50,
			MaxInsights:  6,
			Multipliers:  map[string]float64{"leadership": 1.0, "technical": 1.0, "culture": 1.0},
		},
	}
}

// roleTypeAliases folds caller vocabulary onto profile keys.
var roleTypeAliases = map[string]string{
	"ic":          "individual_contributor",
	"engineer":    "individual_contributor",
	"engineering": "individual_contributor",
	"technical":   "individual_contributor",
	"leadership":  "executive",
	"director":    "executive",
	"manager":     "management",
}

func (p RoleProfiles) profileFor(roleType string) RoleProfile {
	if alias, ok := roleTypeAliases[roleType]; ok {
		roleType = alias
	}
	if profile, ok := p[roleType]; ok {
		return profile
	}
	return p["general"]
}

func (p RoleProfile) multiplierFor(agent string) float64 {
	if m, ok := p.Multipliers[agent]; ok {
		return m
	}
	return 1.0
}
