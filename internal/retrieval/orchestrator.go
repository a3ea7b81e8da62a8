package retrieval

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-search/internal/seniority"
	"github.com/jonathan/talent-search/internal/store"
	"github.com/jonathan/talent-search/internal/types"
)

// Orchestrator produces the two candidate pools for a classified job. Pool
// failures are recoverable-partial: an empty pool degrades the search, it
// never aborts it.
type Orchestrator struct {
	profiles    store.ProfileStore
	specialties store.SpecialtyStore
	logger      *zap.Logger

	executivePoolSize int
	icPoolSize        int
}

// Config tunes pool sizing. Zero values use the mode defaults.
type Config struct {
	ExecutivePoolSize int
	ICPoolSize        int
}

// NewOrchestrator creates a retrieval orchestrator.
func NewOrchestrator(profiles store.ProfileStore, specialties store.SpecialtyStore, cfg Config, logger *zap.Logger) *Orchestrator {
	if cfg.ExecutivePoolSize <= 0 {
		cfg.ExecutivePoolSize = ExecutiveFunctionPoolSize
	}
	if cfg.ICPoolSize <= 0 {
		cfg.ICPoolSize = ICFunctionPoolSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		profiles:          profiles,
		specialties:       specialties,
		logger:            logger,
		executivePoolSize: cfg.ExecutivePoolSize,
		icPoolSize:        cfg.ICPoolSize,
	}
}

// Retrieve builds the function-indexed and vector-similarity pools for a
// classification. The vector pool is supplied by the caller (external
// vector search); the function pool is queried from the profile store. The
// store query and the vector-pool specialty lookup run concurrently.
func (o *Orchestrator) Retrieve(ctx context.Context, classification types.JobClassification, targetSpecialties []string, vectorPool []types.CandidateProfile) (*Pools, error) {
	mode := ModeFor(classification.Level)
	poolSize := o.icPoolSize
	if mode == ModeExecutive {
		poolSize = o.executivePoolSize
	}
	acceptable := seniority.AcceptableLevels(classification.Level)

	var functionPool []types.CandidateProfile
	vectorSpecialties := make(map[string][]string)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pool, err := o.profiles.QueryByFunction(gctx, classification.Function, acceptable, poolSize)
		if err != nil {
			// Recoverable-partial: continue with an empty function pool.
			o.logger.Warn("function pool query failed, continuing without it",
				zap.String("function", classification.Function), zap.Error(err))
			return nil
		}
		functionPool = pool
		return nil
	})
	g.Go(func() error {
		specialties, err := o.lookupSpecialties(gctx, vectorPool)
		if err != nil {
			return nil // already logged; missing data is neutral
		}
		vectorSpecialties = specialties
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	attachSpecialties(vectorPool, vectorSpecialties)

	// Function pool slugs overlap the vector pool heavily; the cached
	// specialty store makes this second batch cheap.
	if specialties, err := o.lookupSpecialties(ctx, functionPool); err == nil {
		attachSpecialties(functionPool, specialties)
	}

	pools := &Pools{Mode: mode, Function: functionPool}

	vector := vectorPool
	if mode == ModeIC {
		vector = filterByEffectiveLevel(vector, classification.Level)
	}
	pools.Vector = vector

	if mode == ModeIC && classification.Function == types.FunctionEngineering {
		pools.Function = filterBySpecialty(pools.Function, targetSpecialties)
		pools.Vector = filterBySpecialty(pools.Vector, targetSpecialties)
	}

	o.logger.Debug("retrieval pools built",
		zap.String("mode", string(mode)),
		zap.Int("function_pool", len(pools.Function)),
		zap.Int("vector_pool", len(pools.Vector)))

	return pools, nil
}

// lookupSpecialties batch-fetches specialty tags for a pool, one query for
// all candidates. Failures are logged and reported so callers treat the
// pool as having no specialty data.
func (o *Orchestrator) lookupSpecialties(ctx context.Context, pool []types.CandidateProfile) (map[string][]string, error) {
	if o.specialties == nil || len(pool) == 0 {
		return map[string][]string{}, nil
	}
	slugs := make([]string, 0, len(pool))
	for i := range pool {
		if slug := slugFor(&pool[i]); slug != "" {
			slugs = append(slugs, slug)
		}
	}
	specialties, err := o.specialties.SpecialtiesFor(ctx, slugs)
	if err != nil {
		o.logger.Warn("specialty lookup failed, treating pool as having no specialty data", zap.Error(err))
		return nil, err
	}
	return specialties, nil
}

func attachSpecialties(pool []types.CandidateProfile, specialties map[string][]string) {
	for i := range pool {
		if tags, ok := specialties[slugFor(&pool[i])]; ok && len(pool[i].Specialties) == 0 {
			pool[i].Specialties = tags
		}
	}
}

func slugFor(profile *types.CandidateProfile) string {
	if slug := store.SlugFromURL(profile.ProfileURL); slug != "" {
		return slug
	}
	return profile.ID
}

// filterByEffectiveLevel keeps candidates whose tier-adjusted level falls
// in the acceptable range for the target. Unknown levels always pass.
func filterByEffectiveLevel(pool []types.CandidateProfile, target types.Level) []types.CandidateProfile {
	filtered := make([]types.CandidateProfile, 0, len(pool))
	for _, profile := range pool {
		effective := seniority.EffectiveLevel(profile.Level, profile.Company)
		if seniority.InRange(effective, target) {
			filtered = append(filtered, profile)
		}
	}
	return filtered
}

func filterBySpecialty(pool []types.CandidateProfile, targets []string) []types.CandidateProfile {
	filtered := make([]types.CandidateProfile, 0, len(pool))
	for i := range pool {
		if passesSpecialtyFilter(&pool[i], targets) {
			filtered = append(filtered, pool[i])
		}
	}
	return filtered
}
