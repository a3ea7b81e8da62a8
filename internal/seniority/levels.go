// Package seniority encodes the level ordering, acceptable-level ranges,
// and company-tier adjustment rules used by retrieval and scoring.
package seniority

import "github.com/jonathan/talent-search/internal/types"

// Track identifies which disjoint level ordering a level belongs to.
type Track int

// Tracks. TrackNone is returned for unknown or unrecognized levels.
const (
	TrackNone Track = iota
	TrackIC
	TrackManagement
)

var icOrder = []types.Level{
	types.LevelIntern,
	types.LevelJunior,
	types.LevelMid,
	types.LevelSenior,
	types.LevelStaff,
	types.LevelPrincipal,
}

var managementOrder = []types.Level{
	types.LevelManager,
	types.LevelDirector,
	types.LevelVP,
	types.LevelCLevel,
}

var icRank = buildRank(icOrder)
var managementRank = buildRank(managementOrder)

func buildRank(order []types.Level) map[types.Level]int {
	m := make(map[types.Level]int, len(order))
	for i, l := range order {
		m[l] = i
	}
	return m
}

// TrackOf returns the track a level belongs to.
func TrackOf(level types.Level) Track {
	if _, ok := icRank[level]; ok {
		return TrackIC
	}
	if _, ok := managementRank[level]; ok {
		return TrackManagement
	}
	return TrackNone
}

// Rank returns the position of level within its track (0 = lowest) and
// whether the level is recognized.
func Rank(level types.Level) (int, bool) {
	if r, ok := icRank[level]; ok {
		return r, true
	}
	if r, ok := managementRank[level]; ok {
		return r, true
	}
	return 0, false
}

// IsAbove reports whether a is strictly above b. Levels on different
// tracks, and unknown levels, are not comparable and report false.
func IsAbove(a, b types.Level) bool {
	trackA, trackB := TrackOf(a), TrackOf(b)
	if trackA == TrackNone || trackA != trackB {
		return false
	}
	ra, _ := Rank(a)
	rb, _ := Rank(b)
	return ra > rb
}

// AcceptableLevels returns the nominal levels a recruiter would show for a
// target level: candidates stepping up or moving laterally, never stepping
// down. For both tracks that is {one level below, exact}; a c-level target
// has no level above it, so the exact level doubles as the ceiling.
func AcceptableLevels(target types.Level) []types.Level {
	switch TrackOf(target) {
	case TrackIC:
		return rangeBelowAndExact(icOrder, icRank[target])
	case TrackManagement:
		return rangeBelowAndExact(managementOrder, managementRank[target])
	default:
		return nil
	}
}

func rangeBelowAndExact(order []types.Level, rank int) []types.Level {
	levels := make([]types.Level, 0, 2)
	if rank > 0 {
		levels = append(levels, order[rank-1])
	}
	levels = append(levels, order[rank])
	return levels
}

// InRange reports whether level is within the acceptable range for target.
// Unknown levels are always in range: missing data never excludes.
func InRange(level, target types.Level) bool {
	if level.IsUnknown() {
		return true
	}
	for _, l := range AcceptableLevels(target) {
		if l == level {
			return true
		}
	}
	return false
}
