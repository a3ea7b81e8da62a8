package query

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talent-search/internal/synonyms"
	"github.com/jonathan/talent-search/internal/types"
)

// Parser sequences the query-understanding pipeline: intent routing, then
// entity extraction and skill expansion for qualifying intents, with a
// keyword fallback whenever routing is unavailable, unsuitable, or below
// threshold.
type Parser struct {
	router    *Router
	extractor *Extractor
	expander  *Expander
	cache     *parseCache
	logger    *zap.Logger
}

// ParserConfig tunes the parser cache. Zero values use the defaults.
type ParserConfig struct {
	CacheCapacity int
	CacheTTL      time.Duration
}

// NewParser creates a parser. The router may be nil (embedding backend
// unavailable), in which case every query takes the keyword fallback.
func NewParser(router *Router, extractor *Extractor, expander *Expander, cfg ParserConfig, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		router:    router,
		extractor: extractor,
		expander:  expander,
		cache:     newParseCache(cfg.CacheCapacity, cfg.CacheTTL),
		logger:    logger,
	}
}

// Parse turns a free-text query into a ParsedQuery. A precomputed query
// embedding may be supplied to skip the embed call during routing. Parse
// never fails: every error path degrades to the keyword fallback.
func (p *Parser) Parse(ctx context.Context, rawQuery string, precomputedEmbedding []float32) *types.ParsedQuery {
	parsed := &types.ParsedQuery{
		OriginalQuery: rawQuery,
		Method:        types.ParseMethodNLP,
		Intent:        types.IntentFallback,
		StageTimings:  make(map[string]time.Duration),
	}

	routeStart := time.Now()
	route, routeErr := p.route(ctx, rawQuery, precomputedEmbedding)
	parsed.StageTimings["route"] = time.Since(routeStart)

	if routeErr != nil {
		p.logger.Warn("intent routing failed, using keyword fallback",
			zap.String("query", rawQuery), zap.Error(routeErr))
		return p.keywordFallback(parsed)
	}

	parsed.Intent = route.Intent
	parsed.Confidence = route.Confidence
	if route.Fallback {
		return p.keywordFallback(parsed)
	}

	normalized := normalizeQuery(rawQuery)
	if cached, ok := p.cache.get(normalized); ok {
		parsed.Entities = cached
		parsed.StageTimings["cache"] = 0
		return parsed
	}

	extractStart := time.Now()
	entities := p.extractor.Extract(ctx, rawQuery)
	parsed.StageTimings["extract"] = time.Since(extractStart)

	expandStart := time.Now()
	entities.ExpandedSkills = p.expander.ExpandSkills(entities.Skills)
	parsed.StageTimings["expand"] = time.Since(expandStart)

	parsed.Entities = entities
	p.cache.put(normalized, entities)
	return parsed
}

func (p *Parser) route(ctx context.Context, query string, precomputed []float32) (RouteResult, error) {
	if p.router == nil {
		return RouteResult{Intent: types.IntentFallback, Fallback: true}, nil
	}
	return p.router.Route(ctx, query, precomputed)
}

// keywordFallback fills entities from plain token matching: known skill
// abbreviations and seniority terms only. No LLM involved.
func (p *Parser) keywordFallback(parsed *types.ParsedQuery) *types.ParsedQuery {
	parsed.Method = types.ParseMethodKeywordFallback

	seen := make(map[string]bool)
	for _, token := range tokenize(strings.ToLower(parsed.OriginalQuery)) {
		if level, ok := synonyms.NormalizeSeniority(token); ok && parsed.Entities.Seniority.IsUnknown() {
			parsed.Entities.Seniority = level
			continue
		}
		canonical := synonyms.CanonicalSkill(token)
		if canonical == token {
			continue // not a known abbreviation
		}
		key := strings.ToLower(canonical)
		if seen[key] {
			continue
		}
		seen[key] = true
		parsed.Entities.Skills = append(parsed.Entities.Skills, canonical)
	}
	return parsed
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
