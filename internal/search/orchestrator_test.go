package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-search/internal/classify"
	"github.com/jonathan/talent-search/internal/rerank"
	"github.com/jonathan/talent-search/internal/retrieval"
	"github.com/jonathan/talent-search/internal/store"
	"github.com/jonathan/talent-search/internal/types"
)

type fakeClassifier struct {
	classification *types.JobClassification
	err            error
}

func (c *fakeClassifier) Classify(_ context.Context, _, _ string) (*types.JobClassification, error) {
	return c.classification, c.err
}

type fakeRerankService struct {
	results []Result
	err     error
}

// Result aliases keep the fake readable.
type Result = rerank.Result

func (s *fakeRerankService) Rerank(_ context.Context, _ rerank.JobContext, _ []rerank.Candidate) ([]Result, error) {
	return s.results, s.err
}

func newTestOrchestrator(classifier classify.Classifier, profiles []types.CandidateProfile, rerankService rerank.Service) *Orchestrator {
	retriever := retrieval.NewOrchestrator(store.NewFileProfileStore(profiles), nil, retrieval.Config{}, nil)
	adapter := rerank.NewAdapter(rerankService, 10, time.Second, nil)
	return NewOrchestrator(classifier, retriever, adapter, nil)
}

func seniorEngineeringClassifier() *fakeClassifier {
	return &fakeClassifier{classification: &types.JobClassification{
		Function:   types.FunctionEngineering,
		Level:      types.LevelSenior,
		Confidence: 0.9,
	}}
}

func backendJob() types.JobDescription {
	return types.JobDescription{
		Title:       "Senior Backend Engineer",
		Description: "Build APIs with Go and PostgreSQL.",
	}
}

func TestSearch_EndToEnd(t *testing.T) {
	profiles := []types.CandidateProfile{
		{ID: "ana", Name: "Ana", Function: "engineering", Level: types.LevelSenior, Company: "Nubank", Specialties: []string{"backend"}},
		{ID: "bob", Name: "Bob", Function: "engineering", Level: types.LevelMid},
	}
	rerankService := &fakeRerankService{results: []Result{
		{CandidateID: "ana", Score: 95, Rationale: "Excellent backend background at Nubank."},
		{CandidateID: "bob", Score: 60},
	}}
	o := newTestOrchestrator(seniorEngineeringClassifier(), profiles, rerankService)

	response, err := o.Search(context.Background(), Request{Job: backendJob()})
	require.NoError(t, err)

	assert.NotEmpty(t, response.RequestID)
	assert.Equal(t, 2, response.TotalConsidered)
	require.Len(t, response.Matches, 2)
	assert.Equal(t, "ana", response.Matches[0].CandidateID)
	assert.Equal(t, "Excellent backend background at Nubank.", response.Matches[0].Rationale)
	assert.True(t, response.Strategy.RerankExecuted)
	assert.Equal(t, 2, response.Strategy.RerankedCount)
	assert.Equal(t, string(retrieval.ModeIC), response.Strategy.Mode)
	// Title detection: "backend" in the title.
	assert.Equal(t, []string{types.SpecialtyBackend}, response.Strategy.TargetSpecialties)
}

func TestSearch_ClassificationFailureIsFatal(t *testing.T) {
	classifier := &fakeClassifier{err: &classify.Error{Message: "model unavailable"}}
	o := newTestOrchestrator(classifier, nil, nil)

	_, err := o.Search(context.Background(), Request{Job: backendJob()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not classify job, try again")
	var cerr *classify.Error
	assert.ErrorAs(t, err, &cerr)
}

func TestSearch_EmptyJobRejected(t *testing.T) {
	o := newTestOrchestrator(seniorEngineeringClassifier(), nil, nil)

	_, err := o.Search(context.Background(), Request{Job: types.JobDescription{}})
	assert.Error(t, err)
}

func TestSearch_LimitOutOfRangeRejected(t *testing.T) {
	o := newTestOrchestrator(seniorEngineeringClassifier(), nil, nil)

	_, err := o.Search(context.Background(), Request{Job: backendJob(), Limit: 10000})
	assert.Error(t, err)
}

func TestSearch_RerankFailureDegradesToRetrievalScores(t *testing.T) {
	profiles := []types.CandidateProfile{
		{ID: "ana", Function: "engineering", Level: types.LevelSenior},
	}
	o := newTestOrchestrator(seniorEngineeringClassifier(), profiles, &fakeRerankService{err: errors.New("timeout")})

	response, err := o.Search(context.Background(), Request{Job: backendJob()})
	require.NoError(t, err)

	assert.False(t, response.Strategy.RerankExecuted)
	assert.Contains(t, response.Strategy.RerankError, "timeout")
	require.Len(t, response.Matches, 1)
	assert.Equal(t, response.Matches[0].RetrievalScore, response.Matches[0].OverallScore)
	assert.Nil(t, response.Matches[0].RerankScore)
	assert.NotEmpty(t, response.Matches[0].Rationale)
}

func TestSearch_TrajectoryFilterAppliedInICMode(t *testing.T) {
	profiles := []types.CandidateProfile{
		{ID: "keep", Function: "engineering", Level: types.LevelSenior},
		{ID: "too-senior", Function: "engineering", Level: types.LevelStaff},
	}
	o := newTestOrchestrator(seniorEngineeringClassifier(), profiles, nil)

	response, err := o.Search(context.Background(), Request{Job: backendJob()})
	require.NoError(t, err)

	// Staff is outside the acceptable query range already, but had it
	// leaked in, the trajectory count would report it. Here only the
	// in-range senior survives retrieval.
	require.Len(t, response.Matches, 1)
	assert.Equal(t, "keep", response.Matches[0].CandidateID)
}

func TestSearch_TrajectoryRemovesSeniorFromVectorPool(t *testing.T) {
	// The vector pool is externally supplied and may contain candidates
	// above the target level; the trajectory filter removes them.
	// A nominal principal at an unverified shop is effectively senior, so
	// level-range retrieval keeps them; the trajectory filter then removes
	// them on the nominal title.
	vectorPool := []types.CandidateProfile{
		{ID: "principal", Level: types.LevelPrincipal, Company: "Tiny Agency"},
		{ID: "mid", Level: types.LevelMid, Company: "Google"},
	}
	o := newTestOrchestrator(seniorEngineeringClassifier(), nil, nil)

	response, err := o.Search(context.Background(), Request{Job: backendJob(), VectorPool: vectorPool})
	require.NoError(t, err)

	require.Len(t, response.Matches, 1)
	assert.Equal(t, "mid", response.Matches[0].CandidateID)
	assert.Equal(t, 1, response.Strategy.TrajectoryRemoved)
}

func TestSearch_ResultLimitApplied(t *testing.T) {
	profiles := make([]types.CandidateProfile, 0, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		profiles = append(profiles, types.CandidateProfile{ID: id, Function: "engineering", Level: types.LevelSenior})
	}
	o := newTestOrchestrator(seniorEngineeringClassifier(), profiles, nil)

	response, err := o.Search(context.Background(), Request{Job: backendJob(), Limit: 3})
	require.NoError(t, err)

	assert.Len(t, response.Matches, 3)
	assert.Equal(t, 5, response.TotalConsidered)
}

func TestSearch_EmitsStageEvents(t *testing.T) {
	o := newTestOrchestrator(seniorEngineeringClassifier(), nil, nil)
	events, cancel := o.Events().Subscribe()
	defer cancel()

	_, err := o.Search(context.Background(), Request{Job: backendJob()})
	require.NoError(t, err)

	stages := make(map[string]bool)
	for len(events) > 0 {
		event := <-events
		stages[event.Stage] = true
		assert.NotEmpty(t, event.RequestID)
	}
	for _, stage := range []string{StageClassify, StageSpecialty, StageRetrieve, StageScore, StageTrajectory, StageRerank, StageAssemble} {
		assert.True(t, stages[stage], "missing stage event %s", stage)
	}
}

func TestBroadcaster_NonBlockingEmit(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe()
	defer cancel()

	// Overflow the buffer; Emit must not block.
	for i := 0; i < 100; i++ {
		b.Emit(StageEvent{Stage: StageScore})
	}
	assert.Len(t, ch, 32)
}

func TestBroadcaster_CancelClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Emitting after cancel must not panic.
	b.Emit(StageEvent{Stage: StageScore})
}

func TestAssembleMatches_DeduplicatesKeepingHigherScore(t *testing.T) {
	blended := []rerank.Blended{
		blendedMatch("ana", 50),
		blendedMatch("ana", 80),
		blendedMatch("bob", 60),
	}

	matches := assembleMatches(blended, 10)

	require.Len(t, matches, 2)
	assert.Equal(t, "ana", matches[0].CandidateID)
	assert.Equal(t, 80.0, matches[0].OverallScore)
	assert.Equal(t, "bob", matches[1].CandidateID)
}

func TestAssembleMatches_ResortsAfterBlending(t *testing.T) {
	// Blending can reorder: bob's overall beats ana's despite retrieval
	// order.
	blended := []rerank.Blended{
		blendedMatch("ana", 55),
		blendedMatch("bob", 70),
	}

	matches := assembleMatches(blended, 10)

	assert.Equal(t, "bob", matches[0].CandidateID)
	assert.Equal(t, "ana", matches[1].CandidateID)
}

func blendedMatch(id string, overall float64) rerank.Blended {
	b := rerank.Blended{OverallScore: overall}
	b.Entry.Profile.ID = id
	return b
}
