package types

// FunctionTag is one entry of a multi-function classification attached to a
// candidate, with the classifier's confidence for that function.
type FunctionTag struct {
	Function   string  `json:"function"`
	Confidence float64 `json:"confidence"`
}

// CandidateProfile is the canonical candidate record at the retrieval
// boundary. Profiles are merged from the document store and the relational
// specialty store by the per-source normalizers; this core only reads them.
type CandidateProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`

	// Level is the nominal level; LevelUnknown when the source record has
	// no explicit level data.
	Level   Level  `json:"level,omitempty"`
	Company string `json:"company,omitempty"`

	// Function is the legacy single-function tag; FunctionTags is the
	// multi-function form with per-function confidence. Records carry one
	// or the other.
	Function     string        `json:"function,omitempty"`
	FunctionTags []FunctionTag `json:"function_tags,omitempty"`

	// Specialties is nil or empty when the specialty store has no row for
	// this candidate, which means "no data", never "no specialties".
	Specialties []string `json:"specialties,omitempty"`
}

// FunctionConfidence returns the classification confidence for fn.
// Legacy single-function records score 1.0 on their tagged function.
func (p *CandidateProfile) FunctionConfidence(fn string) float64 {
	for _, tag := range p.FunctionTags {
		if tag.Function == fn {
			return tag.Confidence
		}
	}
	if p.Function == fn {
		return 1.0
	}
	return 0.0
}

// HasSpecialtyData reports whether the candidate has explicit specialty
// data. Candidates without data must never be hard-filtered on specialty.
func (p *CandidateProfile) HasSpecialtyData() bool {
	return len(p.Specialties) > 0
}

// HasSpecialty reports whether tag is among the candidate's specialties.
func (p *CandidateProfile) HasSpecialty(tag string) bool {
	for _, s := range p.Specialties {
		if s == tag {
			return true
		}
	}
	return false
}

// CandidateScoreEntry accumulates per-signal partial scores for one
// candidate across retrieval pools. A candidate appearing in both pools
// accumulates additively; scores are never overwritten.
type CandidateScoreEntry struct {
	Profile CandidateProfile

	FunctionScore  float64
	VectorScore    float64
	CompanyScore   float64
	LevelScore     float64
	SpecialtyScore float64

	// Sources records which retrieval pools surfaced the candidate
	// ("function_index", "vector_similarity").
	Sources []string
}

// AddSource appends a pool source, skipping duplicates.
func (e *CandidateScoreEntry) AddSource(source string) {
	for _, s := range e.Sources {
		if s == source {
			return
		}
	}
	e.Sources = append(e.Sources, source)
}
