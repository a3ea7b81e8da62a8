// Package retrieval builds the candidate pools for a classified job: the
// function-indexed pool from the profile store and the externally supplied
// vector-similarity pool, with mode-dependent sizing and pre-filtering.
package retrieval

import "github.com/jonathan/talent-search/internal/types"

// Mode selects the retrieval strategy for a search.
type Mode string

// Retrieval modes.
const (
	// ModeExecutive makes the function-indexed pool primary.
	ModeExecutive Mode = "executive"
	// ModeIC makes the vector pool primary, pre-filtered by effective
	// level range.
	ModeIC Mode = "ic"
)

// Function pool sizing per mode.
const (
	ExecutiveFunctionPoolSize = 300
	ICFunctionPoolSize        = 100
)

// ModeFor returns the retrieval mode for a target level.
func ModeFor(target types.Level) Mode {
	switch target {
	case types.LevelCLevel, types.LevelVP, types.LevelDirector:
		return ModeExecutive
	default:
		return ModeIC
	}
}

// FunctionPoolSizeFor returns the function pool size for a mode.
func FunctionPoolSizeFor(mode Mode) int {
	if mode == ModeExecutive {
		return ExecutiveFunctionPoolSize
	}
	return ICFunctionPoolSize
}

// Pool source names recorded on score entries.
const (
	SourceFunctionIndex    = "function_index"
	SourceVectorSimilarity = "vector_similarity"
)

// Pools holds the two candidate pools produced for one request.
type Pools struct {
	Mode     Mode
	Function []types.CandidateProfile
	Vector   []types.CandidateProfile
}
