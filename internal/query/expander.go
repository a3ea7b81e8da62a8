package query

import (
	"strings"

	"github.com/jonathan/talent-search/internal/skillgraph"
	"github.com/jonathan/talent-search/internal/types"
)

// Skill expansion defaults.
const (
	DefaultExpandDepth         = 1
	DefaultExpandMinConfidence = 0.8
	DefaultExpandMaxPerSkill   = 3
	DefaultExpandDecay         = 0.6
)

// Expander turns explicit query skills into weighted candidate skills via
// the ontology. Explicit skills always carry weight 1.0; expanded skills
// carry ontology confidence discounted by the decay factor.
type Expander struct {
	graph         *skillgraph.Expander
	depth         int
	minConfidence float64
	maxPerSkill   int
	decay         float64
}

// ExpanderConfig tunes skill expansion. Zero values use the defaults.
type ExpanderConfig struct {
	Depth         int
	MinConfidence float64
	MaxPerSkill   int
	Decay         float64
}

// NewExpander creates a query skill expander over the ontology.
func NewExpander(graph *skillgraph.Expander, cfg ExpanderConfig) *Expander {
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultExpandDepth
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = DefaultExpandMinConfidence
	}
	if cfg.MaxPerSkill <= 0 {
		cfg.MaxPerSkill = DefaultExpandMaxPerSkill
	}
	if cfg.Decay <= 0 {
		cfg.Decay = DefaultExpandDecay
	}
	return &Expander{
		graph:         graph,
		depth:         cfg.Depth,
		minConfidence: cfg.MinConfidence,
		maxPerSkill:   cfg.MaxPerSkill,
		decay:         cfg.Decay,
	}
}

// ExpandSkills returns the weighted expansion of the explicit skills.
// Expansions are deduplicated case-insensitively against both the explicit
// skills and earlier expansions.
func (e *Expander) ExpandSkills(explicit []string) []types.WeightedSkill {
	if e.graph == nil || len(explicit) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(explicit))
	for _, skill := range explicit {
		seen[strings.ToLower(skill)] = true
	}

	var expanded []types.WeightedSkill
	for _, seed := range explicit {
		result := e.graph.Expand(seed, e.depth, skillgraph.DefaultMaxResults)
		kept := 0
		for _, es := range result.Expanded {
			if kept >= e.maxPerSkill {
				break
			}
			if es.Confidence < e.minConfidence {
				continue
			}
			key := strings.ToLower(es.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			expanded = append(expanded, types.WeightedSkill{
				Name:   es.Name,
				Weight: es.Confidence * e.decay,
				Source: seed,
			})
			kept++
		}
	}
	return expanded
}
