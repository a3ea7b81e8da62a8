package skillgraph

import (
	"sort"
	"time"
)

// Relationship classifies how an expanded skill relates to the seed.
const (
	RelationshipDirect   = "direct"   // distance 1
	RelationshipIndirect = "indirect" // distance >= 2
)

// Expansion defaults.
const (
	DefaultMaxDepth   = 2
	DefaultMaxResults = 10

	directConfidence   = 0.9
	indirectConfidence = 0.6
	criticalBonus      = 0.1
)

// ExpandedSkill is one skill discovered by BFS from a seed skill.
type ExpandedSkill struct {
	SkillID      string  `json:"skill_id"`
	Name         string  `json:"name"`
	Relationship string  `json:"relationship"`
	Distance     int     `json:"distance"`
	Confidence   float64 `json:"confidence"`
}

// ExpansionResult is the cached outcome of expanding one seed skill.
type ExpansionResult struct {
	Skill    string          `json:"skill"`
	Expanded []ExpandedSkill `json:"expanded"`
}

// Expander wraps a graph with a result cache for hot-path expansion.
type Expander struct {
	graph *Graph
	cache *expansionCache
}

// NewExpander creates an expander over the given graph with the given
// cache capacity and TTL.
func NewExpander(graph *Graph, cacheCapacity int, cacheTTL time.Duration) *Expander {
	return &Expander{
		graph: graph,
		cache: newExpansionCache(cacheCapacity, cacheTTL),
	}
}

// Expand runs a BFS expansion from the named skill. maxDepth and maxResults
// fall back to the defaults when non-positive. An unknown seed skill
// returns an empty result, not an error. Results are served from the cache
// when a fresh entry exists for (normalized name, depth).
func (e *Expander) Expand(skill string, maxDepth, maxResults int) ExpansionResult {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	key := cacheKey(skill, maxDepth)
	if cached, ok := e.cache.get(key); ok {
		return truncated(cached, maxResults)
	}

	result := e.expand(skill, maxDepth)
	e.cache.put(key, result)
	return truncated(result, maxResults)
}

// CacheStats exposes hit/miss counters for diagnostics.
func (e *Expander) CacheStats() (hits, misses uint64) {
	return e.cache.stats()
}

// expand is the uncached BFS. The visited set is required: the ontology may
// contain cycles, and a node must be reported at most once, at its shortest
// distance.
func (e *Expander) expand(skill string, maxDepth int) ExpansionResult {
	result := ExpansionResult{Skill: skill}

	seed, ok := e.graph.Lookup(skill)
	if !ok {
		return result
	}

	visited := map[string]bool{seed.ID: true}
	frontier := []string{seed.ID}

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for _, neighborID := range e.graph.edges[id] {
				if visited[neighborID] {
					continue
				}
				visited[neighborID] = true
				node := e.graph.nodes[neighborID]
				result.Expanded = append(result.Expanded, ExpandedSkill{
					SkillID:      node.ID,
					Name:         node.Name,
					Relationship: relationshipFor(depth),
					Distance:     depth,
					Confidence:   confidenceFor(depth, node.MarketDemand),
				})
				next = append(next, neighborID)
			}
		}
		frontier = next
	}

	// Descending by confidence, id tiebreak for deterministic ordering.
	sort.SliceStable(result.Expanded, func(i, j int) bool {
		if result.Expanded[i].Confidence != result.Expanded[j].Confidence {
			return result.Expanded[i].Confidence > result.Expanded[j].Confidence
		}
		return result.Expanded[i].SkillID < result.Expanded[j].SkillID
	})

	return result
}

func relationshipFor(distance int) string {
	if distance == 1 {
		return RelationshipDirect
	}
	return RelationshipIndirect
}

// confidenceFor returns 0.9 at distance 1 and 0.6 at distance >= 2, plus
// 0.1 for critical market demand, capped at 1.0.
func confidenceFor(distance int, demand string) float64 {
	confidence := indirectConfidence
	if distance == 1 {
		confidence = directConfidence
	}
	if demand == DemandCritical {
		confidence += criticalBonus
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// truncated copies the result capped at maxResults so cached slices are
// never shared with callers.
func truncated(result ExpansionResult, maxResults int) ExpansionResult {
	out := ExpansionResult{Skill: result.Skill}
	n := len(result.Expanded)
	if n > maxResults {
		n = maxResults
	}
	out.Expanded = make([]ExpandedSkill, n)
	copy(out.Expanded, result.Expanded[:n])
	return out
}
