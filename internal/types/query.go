package types

import "time"

// ParseMethod records which path produced a ParsedQuery.
type ParseMethod string

// Parse methods.
const (
	ParseMethodNLP             ParseMethod = "nlp"
	ParseMethodKeywordFallback ParseMethod = "keyword_fallback"
)

// Intent is the routed purpose of a free-text search query.
type Intent string

// Query intents.
const (
	IntentStructured Intent = "structured_search"
	IntentSimilarity Intent = "similarity_search"
	IntentFallback   Intent = "fallback"
)

// WeightedSkill is a search skill with its relative weight. Explicit skills
// carry weight 1.0; graph-expanded skills carry a decayed weight.
type WeightedSkill struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	// Source names the explicit skill this expansion came from; empty for
	// explicit skills.
	Source string `json:"source,omitempty"`
}

// QueryEntities holds the structured entities extracted from a free-text
// query after grounding and normalization.
type QueryEntities struct {
	Role           string          `json:"role,omitempty"`
	Skills         []string        `json:"skills,omitempty"`
	ExpandedSkills []WeightedSkill `json:"expanded_skills,omitempty"`
	Seniority      Level           `json:"seniority,omitempty"`
	Location       string          `json:"location,omitempty"`
	ExperienceMin  int             `json:"experience_min,omitempty"`
	ExperienceMax  int             `json:"experience_max,omitempty"`
	Remote         *bool           `json:"remote,omitempty"`
}

// Empty reports whether no entity was extracted.
func (e QueryEntities) Empty() bool {
	return e.Role == "" && len(e.Skills) == 0 && e.Seniority.IsUnknown() &&
		e.Location == "" && e.ExperienceMin == 0 && e.ExperienceMax == 0 && e.Remote == nil
}

// ParsedQuery is the result of running a free-text query through the
// query-understanding pipeline. One per search request.
type ParsedQuery struct {
	OriginalQuery string                   `json:"original_query"`
	Method        ParseMethod              `json:"method"`
	Intent        Intent                   `json:"intent"`
	Confidence    float64                  `json:"confidence"`
	Entities      QueryEntities            `json:"entities"`
	StageTimings  map[string]time.Duration `json:"stage_timings,omitempty"`
}
