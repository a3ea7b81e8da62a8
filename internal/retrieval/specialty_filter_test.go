package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-search/internal/types"
)

func TestModeFor_ExecutiveLevels(t *testing.T) {
	assert.Equal(t, ModeExecutive, ModeFor(types.LevelDirector))
	assert.Equal(t, ModeExecutive, ModeFor(types.LevelVP))
	assert.Equal(t, ModeExecutive, ModeFor(types.LevelCLevel))
}

func TestModeFor_ICLevels(t *testing.T) {
	assert.Equal(t, ModeIC, ModeFor(types.LevelSenior))
	assert.Equal(t, ModeIC, ModeFor(types.LevelManager))
	assert.Equal(t, ModeIC, ModeFor(types.LevelUnknown))
}

func TestFunctionPoolSizeFor(t *testing.T) {
	assert.Equal(t, 300, FunctionPoolSizeFor(ModeExecutive))
	assert.Equal(t, 100, FunctionPoolSizeFor(ModeIC))
}

func TestPassesSpecialtyFilter_NoDataAlwaysPasses(t *testing.T) {
	p := types.CandidateProfile{}
	assert.True(t, passesSpecialtyFilter(&p, []string{types.SpecialtyBackend}))
}

func TestPassesSpecialtyFilter_NoTargetsAlwaysPasses(t *testing.T) {
	p := types.CandidateProfile{Specialties: []string{"frontend"}}
	assert.True(t, passesSpecialtyFilter(&p, nil))
}

func TestPassesSpecialtyFilter_DirectMatch(t *testing.T) {
	p := types.CandidateProfile{Specialties: []string{"backend"}}
	assert.True(t, passesSpecialtyFilter(&p, []string{types.SpecialtyBackend}))
}

func TestPassesSpecialtyFilter_FullstackCoversBothSides(t *testing.T) {
	p := types.CandidateProfile{Specialties: []string{"fullstack"}}
	assert.True(t, passesSpecialtyFilter(&p, []string{types.SpecialtyBackend}))
	assert.True(t, passesSpecialtyFilter(&p, []string{types.SpecialtyFrontend}))
}

func TestPassesSpecialtyFilter_ExclusiveOppositeExcluded(t *testing.T) {
	pureFrontend := types.CandidateProfile{Specialties: []string{"frontend"}}
	assert.False(t, passesSpecialtyFilter(&pureFrontend, []string{types.SpecialtyBackend}))

	pureBackend := types.CandidateProfile{Specialties: []string{"backend"}}
	assert.False(t, passesSpecialtyFilter(&pureBackend, []string{types.SpecialtyFrontend}))
}

func TestPassesSpecialtyFilter_MixedDataPasses(t *testing.T) {
	// frontend + devops is not an exclusive mismatch for a backend search.
	p := types.CandidateProfile{Specialties: []string{"frontend", "devops"}}
	assert.True(t, passesSpecialtyFilter(&p, []string{types.SpecialtyBackend}))
}

func TestPassesSpecialtyFilter_FullstackTargetHasNoOpposite(t *testing.T) {
	p := types.CandidateProfile{Specialties: []string{"frontend"}}
	assert.True(t, passesSpecialtyFilter(&p, []string{types.SpecialtyFullstack}))
}

func TestPassesSpecialtyFilter_BackendAndFrontendTargetsAcceptEither(t *testing.T) {
	p := types.CandidateProfile{Specialties: []string{"frontend"}}
	assert.True(t, passesSpecialtyFilter(&p, []string{types.SpecialtyBackend, types.SpecialtyFrontend}))
}

func TestOppositeOf(t *testing.T) {
	assert.Equal(t, types.SpecialtyFrontend, oppositeOf([]string{types.SpecialtyBackend}))
	assert.Equal(t, types.SpecialtyBackend, oppositeOf([]string{types.SpecialtyFrontend}))
	assert.Equal(t, "", oppositeOf([]string{types.SpecialtyFullstack}))
	assert.Equal(t, "", oppositeOf([]string{types.SpecialtyDevOps}))
	assert.Equal(t, "", oppositeOf([]string{types.SpecialtyBackend, types.SpecialtyFrontend}))
}
