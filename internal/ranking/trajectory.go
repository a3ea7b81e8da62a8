package ranking

import (
	"github.com/jonathan/talent-search/internal/seniority"
	"github.com/jonathan/talent-search/internal/types"
)

// FilterTrajectory removes candidates whose nominal level is strictly
// above the target under the disjoint IC/management ordering: a Principal
// will not accept a Senior role even if technically qualified. The nominal
// level is used deliberately, not the tier-adjusted one: stepping down is
// about the title the candidate holds today. Unknown levels always pass.
// Applied in IC mode only; the caller enforces that. Returns the kept
// candidates and the removed count for diagnostics.
func FilterTrajectory(candidates []ScoredCandidate, target types.Level) ([]ScoredCandidate, int) {
	kept := make([]ScoredCandidate, 0, len(candidates))
	removed := 0
	for _, candidate := range candidates {
		if seniority.IsAbove(candidate.Entry.Profile.Level, target) {
			removed++
			continue
		}
		kept = append(kept, candidate)
	}
	return kept, removed
}
