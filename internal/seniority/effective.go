package seniority

import "github.com/jonathan/talent-search/internal/types"

// tierStepDown maps a company tier to how many IC levels the nominal level
// is discounted by.
var tierStepDown = map[CompanyTier]int{
	TierTop:        0,
	TierNotable:    1,
	TierUnverified: 2,
}

// EffectiveLevel adjusts a candidate's nominal level by employer tier so
// seniority is comparable across companies. The adjustment applies only
// when BOTH explicit level data and explicit company data exist, and only
// on the IC track: a Manager is a Manager regardless of employer. Unknown
// data is returned unmodified, never defaulted to the bottom of the scale.
func EffectiveLevel(nominal types.Level, company string) types.Level {
	if nominal.IsUnknown() {
		return nominal
	}
	tier := TierOf(company)
	if tier == TierUnknown {
		return nominal
	}
	if TrackOf(nominal) != TrackIC {
		return nominal
	}
	steps := tierStepDown[tier]
	rank := icRank[nominal] - steps
	if rank < 0 {
		rank = 0
	}
	return icOrder[rank]
}

// Distance returns the absolute rank distance between two levels on the
// same track and whether they are comparable at all.
func Distance(a, b types.Level) (int, bool) {
	trackA, trackB := TrackOf(a), TrackOf(b)
	if trackA == TrackNone || trackA != trackB {
		return 0, false
	}
	ra, _ := Rank(a)
	rb, _ := Rank(b)
	if ra > rb {
		return ra - rb, true
	}
	return rb - ra, true
}
