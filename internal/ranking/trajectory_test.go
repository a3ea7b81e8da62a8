package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-search/internal/types"
)

func candidateAtLevel(id string, level types.Level) ScoredCandidate {
	return ScoredCandidate{
		Entry: types.CandidateScoreEntry{
			Profile: types.CandidateProfile{ID: id, Level: level},
		},
	}
}

func TestFilterTrajectory_RemovesLevelsAboveTarget(t *testing.T) {
	candidates := []ScoredCandidate{
		candidateAtLevel("principal", types.LevelPrincipal),
		candidateAtLevel("staff", types.LevelStaff),
		candidateAtLevel("senior", types.LevelSenior),
		candidateAtLevel("mid", types.LevelMid),
	}

	kept, removed := FilterTrajectory(candidates, types.LevelSenior)

	assert.Equal(t, 2, removed)
	require.Len(t, kept, 2)
	assert.Equal(t, "senior", kept[0].Entry.Profile.ID)
	assert.Equal(t, "mid", kept[1].Entry.Profile.ID)
}

func TestFilterTrajectory_UnknownLevelAlwaysKept(t *testing.T) {
	candidates := []ScoredCandidate{
		candidateAtLevel("mystery", types.LevelUnknown),
	}

	kept, removed := FilterTrajectory(candidates, types.LevelJunior)

	assert.Equal(t, 0, removed)
	assert.Len(t, kept, 1)
}

func TestFilterTrajectory_CrossTrackKept(t *testing.T) {
	// A manager is not "above" a senior IC: the tracks are not comparable,
	// so the trajectory filter leaves them alone.
	candidates := []ScoredCandidate{
		candidateAtLevel("mgr", types.LevelManager),
	}

	kept, removed := FilterTrajectory(candidates, types.LevelSenior)

	assert.Equal(t, 0, removed)
	assert.Len(t, kept, 1)
}

func TestFilterTrajectory_UsesNominalLevelNotEffective(t *testing.T) {
	// Stepping down is about the title held today: a principal at an
	// unverified company is still a principal for trajectory purposes.
	principal := candidateAtLevel("p", types.LevelPrincipal)
	principal.Entry.Profile.Company = "Tiny Agency"

	kept, removed := FilterTrajectory([]ScoredCandidate{principal}, types.LevelSenior)

	assert.Equal(t, 1, removed)
	assert.Empty(t, kept)
}

func TestFilterTrajectory_EmptyInput(t *testing.T) {
	kept, removed := FilterTrajectory(nil, types.LevelSenior)
	assert.Equal(t, 0, removed)
	assert.Empty(t, kept)
}
