package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-search/internal/types"
)

type fakeProfileStore struct {
	profiles []types.CandidateProfile
	err      error

	gotFunction string
	gotLevels   []types.Level
	gotLimit    int
}

func (s *fakeProfileStore) QueryByFunction(_ context.Context, function string, levels []types.Level, limit int) ([]types.CandidateProfile, error) {
	s.gotFunction = function
	s.gotLevels = levels
	s.gotLimit = limit
	return s.profiles, s.err
}

type fakeSpecialtyStore struct {
	rows map[string][]string
	err  error
}

func (s *fakeSpecialtyStore) SpecialtiesFor(_ context.Context, slugs []string) (map[string][]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string][]string)
	for _, slug := range slugs {
		if tags, ok := s.rows[slug]; ok {
			out[slug] = tags
		}
	}
	return out, nil
}

func engineeringJob(level types.Level) types.JobClassification {
	return types.JobClassification{Function: types.FunctionEngineering, Level: level, Confidence: 0.9}
}

func TestRetrieve_ExecutiveModePoolSize(t *testing.T) {
	profiles := &fakeProfileStore{}
	o := NewOrchestrator(profiles, nil, Config{}, nil)

	pools, err := o.Retrieve(context.Background(), engineeringJob(types.LevelVP), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, ModeExecutive, pools.Mode)
	assert.Equal(t, ExecutiveFunctionPoolSize, profiles.gotLimit)
	assert.Equal(t, types.FunctionEngineering, profiles.gotFunction)
	// One level below plus exact.
	assert.Equal(t, []types.Level{types.LevelDirector, types.LevelVP}, profiles.gotLevels)
}

func TestRetrieve_ICModePoolSize(t *testing.T) {
	profiles := &fakeProfileStore{}
	o := NewOrchestrator(profiles, nil, Config{}, nil)

	pools, err := o.Retrieve(context.Background(), engineeringJob(types.LevelSenior), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, ModeIC, pools.Mode)
	assert.Equal(t, ICFunctionPoolSize, profiles.gotLimit)
}

func TestRetrieve_ConfiguredPoolSizes(t *testing.T) {
	profiles := &fakeProfileStore{}
	o := NewOrchestrator(profiles, nil, Config{ExecutivePoolSize: 40, ICPoolSize: 7}, nil)

	_, err := o.Retrieve(context.Background(), engineeringJob(types.LevelDirector), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, profiles.gotLimit)

	_, err = o.Retrieve(context.Background(), engineeringJob(types.LevelMid), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, profiles.gotLimit)
}

func TestRetrieve_FunctionPoolFailureIsRecoverable(t *testing.T) {
	profiles := &fakeProfileStore{err: errors.New("store down")}
	o := NewOrchestrator(profiles, nil, Config{}, nil)

	vectorPool := []types.CandidateProfile{{ID: "ana", Level: types.LevelSenior}}
	pools, err := o.Retrieve(context.Background(), engineeringJob(types.LevelSenior), nil, vectorPool)

	require.NoError(t, err)
	assert.Empty(t, pools.Function)
	assert.Len(t, pools.Vector, 1)
}

func TestRetrieve_SpecialtyLookupFailureIsRecoverable(t *testing.T) {
	profiles := &fakeProfileStore{profiles: []types.CandidateProfile{{ID: "bea"}}}
	specialties := &fakeSpecialtyStore{err: errors.New("db down")}
	o := NewOrchestrator(profiles, specialties, Config{}, nil)

	pools, err := o.Retrieve(context.Background(), engineeringJob(types.LevelSenior), nil, nil)

	require.NoError(t, err)
	require.Len(t, pools.Function, 1)
	assert.False(t, pools.Function[0].HasSpecialtyData())
}

func TestRetrieve_AttachesSpecialtiesBySlug(t *testing.T) {
	vectorPool := []types.CandidateProfile{
		{ID: "x", ProfileURL: "https://example.com/in/maria-silva/"},
	}
	specialties := &fakeSpecialtyStore{rows: map[string][]string{
		"maria-silva": {"backend"},
	}}
	o := NewOrchestrator(&fakeProfileStore{}, specialties, Config{}, nil)

	pools, err := o.Retrieve(context.Background(), engineeringJob(types.LevelSenior), nil, vectorPool)

	require.NoError(t, err)
	require.Len(t, pools.Vector, 1)
	assert.Equal(t, []string{"backend"}, pools.Vector[0].Specialties)
}

func TestRetrieve_ICVectorPoolFilteredByEffectiveLevel(t *testing.T) {
	vectorPool := []types.CandidateProfile{
		{ID: "keep-exact", Level: types.LevelSenior, Company: "Google"},
		{ID: "keep-unknown"},
		// Nominal senior at an unverified shop is effectively junior, out
		// of range for a senior target.
		{ID: "drop-discounted", Level: types.LevelSenior, Company: "Tiny Agency"},
	}
	o := NewOrchestrator(&fakeProfileStore{}, nil, Config{}, nil)

	pools, err := o.Retrieve(context.Background(), engineeringJob(types.LevelSenior), nil, vectorPool)
	require.NoError(t, err)

	ids := make([]string, 0, len(pools.Vector))
	for _, p := range pools.Vector {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"keep-exact", "keep-unknown"}, ids)
}

func TestRetrieve_ExecutiveVectorPoolNotLevelFiltered(t *testing.T) {
	vectorPool := []types.CandidateProfile{
		{ID: "ic-in-exec-pool", Level: types.LevelSenior, Company: "Tiny Agency"},
	}
	o := NewOrchestrator(&fakeProfileStore{}, nil, Config{}, nil)

	pools, err := o.Retrieve(context.Background(), engineeringJob(types.LevelVP), nil, vectorPool)
	require.NoError(t, err)
	assert.Len(t, pools.Vector, 1)
}

func TestRetrieve_ICEngineeringSpecialtyFilterApplied(t *testing.T) {
	profiles := &fakeProfileStore{profiles: []types.CandidateProfile{
		{ID: "pure-frontend", Specialties: []string{"frontend"}},
		{ID: "no-data"},
	}}
	o := NewOrchestrator(profiles, nil, Config{}, nil)

	pools, err := o.Retrieve(context.Background(), engineeringJob(types.LevelSenior),
		[]string{types.SpecialtyBackend}, nil)
	require.NoError(t, err)

	require.Len(t, pools.Function, 1)
	assert.Equal(t, "no-data", pools.Function[0].ID)
}

func TestRetrieve_SpecialtyFilterSkippedForNonEngineering(t *testing.T) {
	profiles := &fakeProfileStore{profiles: []types.CandidateProfile{
		{ID: "pure-frontend", Specialties: []string{"frontend"}},
	}}
	o := NewOrchestrator(profiles, nil, Config{}, nil)

	classification := types.JobClassification{Function: types.FunctionProduct, Level: types.LevelSenior}
	pools, err := o.Retrieve(context.Background(), classification, []string{types.SpecialtyBackend}, nil)
	require.NoError(t, err)
	assert.Len(t, pools.Function, 1)
}
