package types

// Level is a seniority rung. The IC track (intern → principal) and the
// management track (manager → c-level) are disjoint orderings; cross-track
// comparisons are undefined and must be treated as "not comparable".
type Level string

// IC track levels, lowest to highest.
const (
	LevelIntern    Level = "intern"
	LevelJunior    Level = "junior"
	LevelMid       Level = "mid"
	LevelSenior    Level = "senior"
	LevelStaff     Level = "staff"
	LevelPrincipal Level = "principal"
)

// Management track levels, lowest to highest.
const (
	LevelManager  Level = "manager"
	LevelDirector Level = "director"
	LevelVP       Level = "vp"
	LevelCLevel   Level = "c-level"
)

// LevelUnknown marks candidates with no explicit level data. Unknown levels
// are never defaulted to the bottom of a scale.
const LevelUnknown Level = ""

// IsUnknown reports whether the level carries no explicit data.
func (l Level) IsUnknown() bool {
	return l == LevelUnknown
}
