package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/talent-search/internal/retrieval"
	"github.com/jonathan/talent-search/internal/seniority"
	"github.com/jonathan/talent-search/internal/types"
)

// ScoredCandidate is a candidate with its composite retrieval score and
// the per-signal breakdown for explainability.
type ScoredCandidate struct {
	Entry          types.CandidateScoreEntry
	RetrievalScore float64
	Breakdown      map[string]float64
}

// Score merges the retrieval pools into per-candidate composite scores
// using the weight profile for the pool mode. Candidates appearing in both
// pools accumulate both pool sub-scores; nothing is overwritten. Output is
// sorted descending by retrieval score with candidate-id tiebreak, so
// ordering is deterministic given deterministic inputs.
func Score(pools *retrieval.Pools, classification types.JobClassification, targetSpecialties, targetCompanies []string) []ScoredCandidate {
	weights := ICWeights
	if pools.Mode == retrieval.ModeExecutive {
		weights = ExecutiveWeights
	}

	entries := make(map[string]*types.CandidateScoreEntry)
	order := make([]string, 0, len(pools.Function)+len(pools.Vector))

	merge := func(profile types.CandidateProfile, source string) *types.CandidateScoreEntry {
		entry, ok := entries[profile.ID]
		if !ok {
			entry = &types.CandidateScoreEntry{Profile: profile}
			entries[profile.ID] = entry
			order = append(order, profile.ID)
		} else if !entry.Profile.HasSpecialtyData() && profile.HasSpecialtyData() {
			entry.Profile.Specialties = profile.Specialties
		}
		entry.AddSource(source)
		return entry
	}

	for _, profile := range pools.Function {
		entry := merge(profile, retrieval.SourceFunctionIndex)
		entry.FunctionScore += weights.Function * profile.FunctionConfidence(classification.Function)
	}
	for _, profile := range pools.Vector {
		entry := merge(profile, retrieval.SourceVectorSimilarity)
		entry.VectorScore += weights.Vector
	}

	scored := make([]ScoredCandidate, 0, len(order))
	for _, id := range order {
		entry := entries[id]
		entry.CompanyScore = weights.Company * companySubScore(entry.Profile.Company, targetCompanies)
		entry.LevelScore = weights.Level * levelSubScore(&entry.Profile, classification.Level, pools.Mode)
		entry.SpecialtyScore = weights.Specialty * specialtySubScore(&entry.Profile, targetSpecialties)

		total := entry.FunctionScore + entry.VectorScore + entry.CompanyScore +
			entry.LevelScore + entry.SpecialtyScore

		scored = append(scored, ScoredCandidate{
			Entry:          *entry,
			RetrievalScore: total,
			Breakdown: map[string]float64{
				"function":  entry.FunctionScore,
				"vector":    entry.VectorScore,
				"company":   entry.CompanyScore,
				"level":     entry.LevelScore,
				"specialty": entry.SpecialtyScore,
			},
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].RetrievalScore != scored[j].RetrievalScore {
			return scored[i].RetrievalScore > scored[j].RetrievalScore
		}
		return scored[i].Entry.Profile.ID < scored[j].Entry.Profile.ID
	})

	return scored
}

// companySubScore returns the normalized company pedigree score in [0,1].
// Sourcing-strategy target companies outrank any tier.
func companySubScore(company string, targetCompanies []string) float64 {
	if company == "" {
		return 0
	}
	for _, target := range targetCompanies {
		if strings.EqualFold(strings.TrimSpace(target), strings.TrimSpace(company)) {
			return float64(companyScoreTarget) / companyScoreMax
		}
	}
	switch seniority.TierOf(company) {
	case seniority.TierTop:
		return float64(companyScoreTopTier) / companyScoreMax
	case seniority.TierNotable:
		return float64(companyScoreNotable) / companyScoreMax
	}
	if seniority.IsRecognized(company) {
		return float64(companyScoreRecognized) / companyScoreMax
	}
	return 0
}

// levelSubScore returns the normalized level match score in [0,1] based on
// the tier-adjusted distance between the candidate's effective level and
// the target. Executive searches floor IC candidates below effective
// senior to 0: they should not have reached the pool, but this protects
// against pool leakage.
func levelSubScore(profile *types.CandidateProfile, target types.Level, mode retrieval.Mode) float64 {
	if profile.Level.IsUnknown() {
		return float64(levelScoreNeutral) / levelScoreMax
	}

	effective := seniority.EffectiveLevel(profile.Level, profile.Company)

	if mode == retrieval.ModeExecutive && seniority.TrackOf(effective) == seniority.TrackIC {
		if belowSenior(effective) {
			return 0
		}
	}

	distance, comparable := seniority.Distance(effective, target)
	if !comparable {
		return float64(levelScoreFar) / levelScoreMax
	}
	switch distance {
	case 0:
		return float64(levelScoreExact) / levelScoreMax
	case 1:
		return float64(levelScoreOneStep) / levelScoreMax
	case 2:
		return float64(levelScoreTwoSteps) / levelScoreMax
	default:
		return float64(levelScoreFar) / levelScoreMax
	}
}

func belowSenior(level types.Level) bool {
	rank, ok := seniority.Rank(level)
	if !ok {
		return false
	}
	seniorRank, _ := seniority.Rank(types.LevelSenior)
	return rank < seniorRank
}

// specialtySubScore returns the specialty fit in [0,1]: direct match 1.0,
// fullstack covering a backend/frontend target 0.8, documented adjacency
// 0.4, no data 0.5 (neutral), explicit exclusive mismatch 0.
func specialtySubScore(profile *types.CandidateProfile, targets []string) float64 {
	if len(targets) == 0 || !profile.HasSpecialtyData() {
		return specialtyScoreNeutral
	}

	best := specialtyScoreMismatch
	for _, target := range targets {
		for _, tag := range profile.Specialties {
			switch {
			case tag == target:
				return specialtyScoreDirect
			case tag == types.SpecialtyFullstack && (target == types.SpecialtyBackend || target == types.SpecialtyFrontend):
				if specialtyScoreFullstack > best {
					best = specialtyScoreFullstack
				}
			case adjacentSpecialties(tag, target):
				if specialtyScoreAdjacent > best {
					best = specialtyScoreAdjacent
				}
			}
		}
	}
	return best
}

// specialtyAdjacency documents which neighboring specialties earn partial
// credit.
var specialtyAdjacency = map[string]string{
	types.SpecialtyDevOps: types.SpecialtyBackend,
	types.SpecialtyData:   types.SpecialtyBackend,
	types.SpecialtyMobile: types.SpecialtyFrontend,
}

func adjacentSpecialties(a, b string) bool {
	return specialtyAdjacency[a] == b || specialtyAdjacency[b] == a
}

// SynthesizeRationale builds a human-readable explanation from the score
// breakdown and pool sources, used when the rerank service supplies none.
func SynthesizeRationale(sc *ScoredCandidate) string {
	var parts []string

	if sc.Breakdown["function"] > 0 {
		parts = append(parts, "strong function match")
	}
	for _, source := range sc.Entry.Sources {
		if source == retrieval.SourceVectorSimilarity {
			parts = append(parts, "surfaced by similarity search")
			break
		}
	}
	if sc.Breakdown["company"] > 0 {
		parts = append(parts, fmt.Sprintf("relevant experience at %s", sc.Entry.Profile.Company))
	}
	if sc.Breakdown["specialty"] > 0 && sc.Entry.Profile.HasSpecialtyData() {
		parts = append(parts, fmt.Sprintf("specialty fit (%s)", strings.Join(sc.Entry.Profile.Specialties, ", ")))
	}

	if len(parts) == 0 {
		return "Matched on retrieval signals."
	}
	rationale := strings.Join(parts, "; ")
	return strings.ToUpper(rationale[:1]) + rationale[1:] + "."
}
