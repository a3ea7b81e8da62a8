package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-search/internal/classify"
	"github.com/jonathan/talent-search/internal/ranking"
	"github.com/jonathan/talent-search/internal/rerank"
	"github.com/jonathan/talent-search/internal/retrieval"
	"github.com/jonathan/talent-search/internal/specialty"
	"github.com/jonathan/talent-search/internal/types"
)

// DefaultResultLimit caps the response when the request specifies none.
const DefaultResultLimit = 50

// Request is one candidate search.
type Request struct {
	Job types.JobDescription `validate:"required"`
	// VectorPool is the candidate list supplied by the external vector
	// search provider for this job.
	VectorPool []types.CandidateProfile
	Limit      int `validate:"gte=0,lte=500"`
}

// Match is one ranked candidate in the response, with the score and source
// breakdown for explainability.
type Match struct {
	CandidateID    string             `json:"candidate_id"`
	Name           string             `json:"name,omitempty"`
	OverallScore   float64            `json:"overall_score"`
	RetrievalScore float64            `json:"retrieval_score"`
	RerankScore    *float64           `json:"rerank_score,omitempty"`
	Rationale      string             `json:"rationale"`
	Breakdown      map[string]float64 `json:"breakdown"`
	Sources        []string           `json:"sources"`
}

// Strategy describes which retrieval and rerank strategy actually
// executed. Rerank skipping is reported here explicitly, never silently.
type Strategy struct {
	Mode              string   `json:"mode"`
	TargetSpecialties []string `json:"target_specialties,omitempty"`
	FunctionPoolSize  int      `json:"function_pool_size"`
	VectorPoolSize    int      `json:"vector_pool_size"`
	TrajectoryRemoved int      `json:"trajectory_removed"`
	RerankExecuted    bool     `json:"rerank_executed"`
	RerankedCount     int      `json:"reranked_count"`
	RerankError       string   `json:"rerank_error,omitempty"`
}

// Response is the ordered match list with observability metadata.
type Response struct {
	RequestID       string                   `json:"request_id"`
	Matches         []Match                  `json:"matches"`
	TotalConsidered int                      `json:"total_considered"`
	Latency         time.Duration            `json:"latency"`
	Classification  *types.JobClassification `json:"classification"`
	Strategy        Strategy                 `json:"strategy"`
}

// Orchestrator runs the search pipeline end to end.
type Orchestrator struct {
	classifier classify.Classifier
	retriever  *retrieval.Orchestrator
	reranker   *rerank.Adapter
	validate   *validator.Validate
	events     *Broadcaster
	logger     *zap.Logger
}

// NewOrchestrator wires the pipeline. All collaborators are injected; the
// orchestrator holds no hidden global state.
func NewOrchestrator(classifier classify.Classifier, retriever *retrieval.Orchestrator, reranker *rerank.Adapter, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		classifier: classifier,
		retriever:  retriever,
		reranker:   reranker,
		validate:   validator.New(),
		events:     NewBroadcaster(),
		logger:     logger,
	}
}

// Events returns the stage-event subscription interface.
func (o *Orchestrator) Events() *Broadcaster {
	return o.events
}

// Search runs the pipeline for one request. Classification failure is
// fatal to the request; every later stage degrades instead of failing.
func (o *Orchestrator) Search(ctx context.Context, req Request) (*Response, error) {
	if err := o.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}
	if strings.TrimSpace(req.Job.Title) == "" && strings.TrimSpace(req.Job.Description) == "" {
		return nil, fmt.Errorf("invalid search request: job title and description are both empty")
	}

	requestID := uuid.NewString()
	start := time.Now()
	logger := o.logger.With(zap.String("request_id", requestID))

	// Classification is the one fail-fast stage: a degraded default
	// classification would corrupt every downstream filter.
	o.emit(requestID, StageClassify, req.Job.Title)
	classification, err := o.classifier.Classify(ctx, req.Job.Title, req.Job.Description)
	if err != nil {
		logger.Error("job classification failed", zap.Error(err))
		return nil, fmt.Errorf("could not classify job, try again: %w", err)
	}
	logger.Debug("job classified",
		zap.String("function", classification.Function),
		zap.String("level", string(classification.Level)),
		zap.Float64("confidence", classification.Confidence))

	o.emit(requestID, StageSpecialty, "")
	targetSpecialties := specialty.Detect(req.Job.Title, req.Job.Description)

	o.emit(requestID, StageRetrieve, "")
	pools, err := o.retriever.Retrieve(ctx, *classification, targetSpecialties, req.VectorPool)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	var targetCompanies []string
	if req.Job.Sourcing != nil {
		targetCompanies = req.Job.Sourcing.TargetCompanies
	}

	o.emit(requestID, StageScore, "")
	scored := ranking.Score(pools, *classification, targetSpecialties, targetCompanies)
	totalConsidered := len(scored)

	trajectoryRemoved := 0
	if pools.Mode == retrieval.ModeIC {
		o.emit(requestID, StageTrajectory, "")
		scored, trajectoryRemoved = ranking.FilterTrajectory(scored, classification.Level)
		if trajectoryRemoved > 0 {
			logger.Debug("trajectory filter removed candidates", zap.Int("removed", trajectoryRemoved))
		}
	}

	o.emit(requestID, StageRerank, "")
	blended, outcome := o.reranker.Apply(ctx, rerank.JobContext{
		Title:          req.Job.Title,
		Function:       classification.Function,
		Level:          classification.Level,
		RequiredSkills: req.Job.RequiredSkills,
		AvoidedSkills:  req.Job.AvoidedSkills,
		CompanyContext: companyContext(classification, req.Job.Sourcing),
	}, scored)

	o.emit(requestID, StageAssemble, "")
	matches := assembleMatches(blended, resultLimit(req.Limit))

	response := &Response{
		RequestID:       requestID,
		Matches:         matches,
		TotalConsidered: totalConsidered,
		Latency:         time.Since(start),
		Classification:  classification,
		Strategy: Strategy{
			Mode:              string(pools.Mode),
			TargetSpecialties: targetSpecialties,
			FunctionPoolSize:  len(pools.Function),
			VectorPoolSize:    len(pools.Vector),
			TrajectoryRemoved: trajectoryRemoved,
			RerankExecuted:    outcome.Executed,
			RerankedCount:     outcome.RerankedCount,
			RerankError:       outcome.Error,
		},
	}

	logger.Info("search completed",
		zap.Int("matches", len(matches)),
		zap.Int("considered", totalConsidered),
		zap.Bool("rerank_executed", outcome.Executed),
		zap.Duration("latency", response.Latency))

	return response, nil
}

// assembleMatches deduplicates by candidate id (keeping the higher overall
// score), re-sorts after blending, and applies the result limit.
func assembleMatches(blended []rerank.Blended, limit int) []Match {
	best := make(map[string]int, len(blended))
	deduped := make([]rerank.Blended, 0, len(blended))
	for _, b := range blended {
		id := b.Entry.Profile.ID
		if idx, ok := best[id]; ok {
			if b.OverallScore > deduped[idx].OverallScore {
				deduped[idx] = b
			}
			continue
		}
		best[id] = len(deduped)
		deduped = append(deduped, b)
	}

	// Stable re-sort: blending may reorder the retrieval ranking.
	for i := 1; i < len(deduped); i++ {
		for j := i; j > 0; j-- {
			prev, cur := &deduped[j-1], &deduped[j]
			if cur.OverallScore > prev.OverallScore ||
				(cur.OverallScore == prev.OverallScore && cur.Entry.Profile.ID < prev.Entry.Profile.ID) {
				deduped[j-1], deduped[j] = deduped[j], deduped[j-1]
			} else {
				break
			}
		}
	}

	if len(deduped) > limit {
		deduped = deduped[:limit]
	}

	matches := make([]Match, len(deduped))
	for i, b := range deduped {
		matches[i] = Match{
			CandidateID:    b.Entry.Profile.ID,
			Name:           b.Entry.Profile.Name,
			OverallScore:   b.OverallScore,
			RetrievalScore: b.RetrievalScore,
			RerankScore:    b.RerankScore,
			Rationale:      b.Rationale,
			Breakdown:      b.Breakdown,
			Sources:        b.Entry.Sources,
		}
	}
	return matches
}

// companyContext builds the company-stage/industry context string for the
// rerank prompt from classification domains and the sourcing strategy.
func companyContext(classification *types.JobClassification, sourcing *types.SourcingStrategy) string {
	var parts []string
	parts = append(parts, classification.Domains...)
	if sourcing != nil {
		parts = append(parts, sourcing.TargetIndustries...)
	}
	return strings.Join(parts, ", ")
}

func resultLimit(requested int) int {
	if requested <= 0 {
		return DefaultResultLimit
	}
	return requested
}

func (o *Orchestrator) emit(requestID, stage, message string) {
	o.events.Emit(StageEvent{
		RequestID: requestID,
		Stage:     stage,
		Message:   message,
		At:        time.Now(),
	})
}
