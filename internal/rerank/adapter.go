package rerank

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talent-search/internal/ranking"
)

// Blending and sizing defaults.
const (
	DefaultTopN    = 75
	DefaultTimeout = 20 * time.Second

	rerankBlendWeight    = 0.7
	retrievalBlendWeight = 0.3
)

// Blended is a scored candidate with its final overall score. RerankScore
// is nil when the candidate was not reranked, in which case the overall
// score equals the retrieval score.
type Blended struct {
	ranking.ScoredCandidate
	OverallScore float64
	RerankScore  *float64
	Rationale    string
}

// Outcome reports what the adapter actually did, for response metadata.
// Silent rerank skipping must be visible here, never hidden.
type Outcome struct {
	Executed      bool
	RerankedCount int
	Error         string
}

// Adapter calls the rerank service for the top-N candidates by retrieval
// score and blends the results. The rerank call is the one blocking
// network round-trip in the critical path, so it runs under its own
// timeout, and any failure degrades quality rather than availability.
type Adapter struct {
	service Service
	topN    int
	timeout time.Duration
	logger  *zap.Logger
}

// NewAdapter creates a rerank adapter. A nil service disables reranking;
// every candidate then keeps its retrieval score.
func NewAdapter(service Service, topN int, timeout time.Duration, logger *zap.Logger) *Adapter {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{service: service, topN: topN, timeout: timeout, logger: logger}
}

// Apply reranks the top-N candidates and blends: overall = 0.7 × rerank +
// 0.3 × retrieval. Candidates missing from the response, and every
// candidate when the call fails, fall back to overall = retrieval score
// with a synthesized rationale. Candidates beyond the top N keep their
// retrieval score unmodified. Apply never fails the request.
func (a *Adapter) Apply(ctx context.Context, job JobContext, candidates []ranking.ScoredCandidate) ([]Blended, Outcome) {
	blended := make([]Blended, len(candidates))
	for i, sc := range candidates {
		blended[i] = Blended{
			ScoredCandidate: sc,
			OverallScore:    sc.RetrievalScore,
			Rationale:       ranking.SynthesizeRationale(&sc),
		}
	}

	if a.service == nil || len(candidates) == 0 {
		return blended, Outcome{Executed: false}
	}

	n := a.topN
	if n > len(candidates) {
		n = len(candidates)
	}
	batch := make([]Candidate, n)
	for i := 0; i < n; i++ {
		profile := candidates[i].Entry.Profile
		batch[i] = Candidate{
			ID:             profile.ID,
			Name:           profile.Name,
			Level:          profile.Level,
			Company:        profile.Company,
			Specialties:    profile.Specialties,
			RetrievalScore: candidates[i].RetrievalScore,
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	results, err := a.service.Rerank(callCtx, job, batch)
	if err != nil {
		a.logger.Warn("rerank failed, falling back to retrieval scores", zap.Error(err))
		return blended, Outcome{Executed: false, Error: err.Error()}
	}

	byID := make(map[string]Result, len(results))
	for _, r := range results {
		byID[r.CandidateID] = r
	}

	reranked := 0
	for i := 0; i < n; i++ {
		result, ok := byID[blended[i].Entry.Profile.ID]
		if !ok {
			continue // partial response: keep the retrieval fallback
		}
		score := result.Score
		blended[i].RerankScore = &score
		blended[i].OverallScore = rerankBlendWeight*score + retrievalBlendWeight*blended[i].RetrievalScore
		if result.Rationale != "" {
			blended[i].Rationale = result.Rationale
		}
		reranked++
	}

	return blended, Outcome{Executed: true, RerankedCount: reranked}
}
