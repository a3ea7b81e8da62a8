// Package ranking merges the retrieval pools into per-candidate composite
// scores and applies the career-trajectory filter.
package ranking

// WeightProfile holds the per-signal weights for one retrieval mode.
// Sub-scores are normalized to [0,1] before weighting, so each weight is
// the signal's maximum contribution to the retrieval score.
type WeightProfile struct {
	Function  float64
	Vector    float64
	Company   float64
	Level     float64
	Specialty float64
}

// Total returns the sum of the profile's weights.
func (w WeightProfile) Total() float64 {
	return w.Function + w.Vector + w.Company + w.Level + w.Specialty
}

// ExecutiveWeights is the weight profile for executive searches. The
// function index is the primary signal; specialties don't apply to
// leadership roles. Totals 125.
var ExecutiveWeights = WeightProfile{
	Function:  50,
	Vector:    15,
	Company:   25,
	Level:     35,
	Specialty: 0,
}

// ICWeights is the weight profile for IC searches. Function and vector
// pools weigh equally, and specialty fit matters as much as either.
// Totals 100.
var ICWeights = WeightProfile{
	Function:  25,
	Vector:    25,
	Company:   10,
	Level:     15,
	Specialty: 25,
}

// Raw company pedigree scores, normalized by companyScoreMax.
const (
	companyScoreTarget     = 30 // sourcing-strategy target company
	companyScoreTopTier    = 20
	companyScoreNotable    = 12
	companyScoreRecognized = 8
	companyScoreMax        = 30
)

// Raw level scores by tier-adjusted distance, normalized by levelScoreMax.
const (
	levelScoreExact    = 40
	levelScoreOneStep  = 25
	levelScoreTwoSteps = 15
	levelScoreFar      = 5
	levelScoreNeutral  = 20 // unknown level data: neutral half, never zero
	levelScoreMax      = 40
)

// Specialty sub-scores, already in [0,1].
const (
	specialtyScoreDirect    = 1.0
	specialtyScoreFullstack = 0.8
	specialtyScoreAdjacent  = 0.4
	specialtyScoreNeutral   = 0.5 // no specialty data
	specialtyScoreMismatch  = 0.0 // explicit exclusive opposite only
)
