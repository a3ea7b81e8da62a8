package retrieval

import "github.com/jonathan/talent-search/internal/types"

// passesSpecialtyFilter implements the IC/engineering specialty pre-filter.
// Candidates without specialty data always pass (neutral). Candidates
// matching any target, or tagged fullstack when the target is backend or
// frontend, pass. The sole hard exclusion on explicit data in the whole
// pipeline: candidates whose specialty data is exclusively the opposite of
// the target (pure frontend for a backend search, or vice versa).
func passesSpecialtyFilter(profile *types.CandidateProfile, targets []string) bool {
	if len(targets) == 0 || !profile.HasSpecialtyData() {
		return true
	}

	targetSet := make(map[string]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}

	for _, s := range profile.Specialties {
		if targetSet[s] {
			return true
		}
		if s == types.SpecialtyFullstack && (targetSet[types.SpecialtyBackend] || targetSet[types.SpecialtyFrontend]) {
			return true
		}
	}

	opposite := oppositeOf(targets)
	if opposite == "" {
		return true
	}
	for _, s := range profile.Specialties {
		if s != opposite {
			// Mixed or unrelated data is not an exclusive mismatch.
			return true
		}
	}
	return false
}

// oppositeOf returns the specialty that contradicts the target set, or ""
// when the targets have no defined opposite. Only the backend/frontend
// pair is contradictory; a fullstack target accepts both sides.
func oppositeOf(targets []string) string {
	hasBackend, hasFrontend, hasFullstack := false, false, false
	for _, t := range targets {
		switch t {
		case types.SpecialtyBackend:
			hasBackend = true
		case types.SpecialtyFrontend:
			hasFrontend = true
		case types.SpecialtyFullstack:
			hasFullstack = true
		}
	}
	if hasFullstack || (hasBackend && hasFrontend) {
		return ""
	}
	if hasBackend {
		return types.SpecialtyFrontend
	}
	if hasFrontend {
		return types.SpecialtyBackend
	}
	return ""
}
