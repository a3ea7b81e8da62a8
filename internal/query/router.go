// Package query implements the query-understanding pipeline: intent
// routing, LLM entity extraction with hallucination guarding, bilingual
// normalization, and ontology-backed skill expansion.
package query

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/jonathan/talent-search/internal/embeddings"
	"github.com/jonathan/talent-search/internal/types"
)

// DefaultRouteThreshold is the minimum route confidence for NLP parsing.
const DefaultRouteThreshold = 0.6

// Route declares one intent with its exemplar utterances. Exemplars are
// embedded once at initialization and averaged into the route vector.
type Route struct {
	Intent     types.Intent
	Utterances []string
	// LowValue forces keyword fallback even when the route wins: a pure
	// similarity query gains nothing from entity extraction.
	LowValue bool
}

// DefaultRoutes returns the built-in intent routes.
func DefaultRoutes() []Route {
	return []Route{
		{
			Intent: types.IntentStructured,
			Utterances: []string{
				"senior backend engineer with go and kubernetes in sao paulo",
				"find me a staff frontend developer who knows react",
				"data engineer python spark remote",
				"engineering manager fintech 8 years experience",
				"desenvolvedor pleno java remoto",
			},
		},
		{
			Intent:   types.IntentSimilarity,
			LowValue: true,
			Utterances: []string{
				"candidates similar to this profile",
				"more people like maria",
				"profiles that look like this one",
			},
		},
	}
}

// RouteResult is the routing decision for one query.
type RouteResult struct {
	Intent     types.Intent
	Confidence float64
	// Fallback is set when confidence is below threshold or the winning
	// route is flagged low-value; the parser must use keyword parsing.
	Fallback bool
}

type routeVector struct {
	route  Route
	vector []float32
}

// Router classifies a query into an intent by cosine similarity against
// precomputed route embeddings. The hot path never calls an LLM.
type Router struct {
	embedder  embeddings.Embedder
	routes    []routeVector
	threshold float64
	logger    *zap.Logger
}

// NewRouter builds a router, embedding all route exemplars concurrently.
func NewRouter(ctx context.Context, embedder embeddings.Embedder, routes []Route, threshold float64, logger *zap.Logger) (*Router, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}
	if threshold <= 0 {
		threshold = DefaultRouteThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	vectors, err := embedRoutes(ctx, embedder, routes)
	if err != nil {
		return nil, err
	}

	return &Router{
		embedder:  embedder,
		routes:    vectors,
		threshold: threshold,
		logger:    logger,
	}, nil
}

// embedRoutes embeds every exemplar utterance in parallel and averages
// them per route.
func embedRoutes(ctx context.Context, embedder embeddings.Embedder, routes []Route) ([]routeVector, error) {
	total := 0
	for _, r := range routes {
		total += len(r.Utterances)
	}
	if total == 0 {
		return nil, fmt.Errorf("routes have no exemplar utterances")
	}

	poolSize := total
	if poolSize > 8 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding pool: %w", err)
	}
	defer pool.Release()

	type utteranceVector struct {
		routeIdx int
		vector   []float32
		err      error
	}

	var wg sync.WaitGroup
	results := make([]utteranceVector, 0, total)
	var mu sync.Mutex

	for ri, route := range routes {
		for _, utterance := range route.Utterances {
			ri, utterance := ri, utterance
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				vec, embedErr := embedder.Embed(ctx, utterance)
				mu.Lock()
				results = append(results, utteranceVector{routeIdx: ri, vector: vec, err: embedErr})
				mu.Unlock()
			}); err != nil {
				wg.Done()
				return nil, fmt.Errorf("failed to submit embedding task: %w", err)
			}
		}
	}
	wg.Wait()

	sums := make([][]float64, len(routes))
	counts := make([]int, len(routes))
	for _, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("failed to embed route exemplar: %w", r.err)
		}
		if sums[r.routeIdx] == nil {
			sums[r.routeIdx] = make([]float64, len(r.vector))
		}
		for i, v := range r.vector {
			sums[r.routeIdx][i] += float64(v)
		}
		counts[r.routeIdx]++
	}

	vectors := make([]routeVector, len(routes))
	for i, route := range routes {
		avg := make([]float32, len(sums[i]))
		for j, s := range sums[i] {
			avg[j] = float32(s / float64(counts[i]))
		}
		vectors[i] = routeVector{route: route, vector: avg}
	}
	return vectors, nil
}

// Route classifies a query. A precomputed embedding skips the embed call;
// otherwise the query is embedded here. Embedding failure returns an error
// so the parser can fall back to keyword parsing.
func (r *Router) Route(ctx context.Context, query string, precomputed []float32) (RouteResult, error) {
	vector := precomputed
	if len(vector) == 0 {
		var err error
		vector, err = r.embedder.Embed(ctx, query)
		if err != nil {
			return RouteResult{}, fmt.Errorf("failed to embed query: %w", err)
		}
	}

	best := RouteResult{Intent: types.IntentFallback}
	var bestRoute Route
	for _, rv := range r.routes {
		// Cosine similarity mapped from [-1,1] into [0,1].
		confidence := (cosine(vector, rv.vector) + 1) / 2
		if confidence > best.Confidence {
			best.Confidence = confidence
			best.Intent = rv.route.Intent
			bestRoute = rv.route
		}
	}

	if best.Confidence < r.threshold || bestRoute.LowValue {
		best.Fallback = true
	}
	return best, nil
}

// cosine computes cosine similarity; mismatched or zero vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
