package query

import (
	"context"
	"encoding/json"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/synonyms"
	"github.com/jonathan/talent-search/internal/types"
)

// minAlphaChars is the minimum number of letters a query needs before the
// extractor spends an LLM call on it.
const minAlphaChars = 3

// defaultExtractAttempts is how many times a transient LLM failure is
// retried before giving up and returning empty entities.
const defaultExtractAttempts = 3

// Extractor performs LLM-backed structured entity extraction with a
// grounding filter that drops skills not traceable to the query text.
type Extractor struct {
	client   llm.Client
	logger   *zap.Logger
	attempts int
}

// NewExtractor creates an entity extractor.
func NewExtractor(client llm.Client, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{client: client, logger: logger, attempts: defaultExtractAttempts}
}

// extractionResponse is the expected JSON shape from the model.
type extractionResponse struct {
	Role          string   `json:"role"`
	Skills        []string `json:"skills"`
	Seniority     string   `json:"seniority"`
	Location      string   `json:"location"`
	ExperienceMin int      `json:"experience_min"`
	ExperienceMax int      `json:"experience_max"`
	Remote        *bool    `json:"remote"`
}

// Extract returns the structured entities found in a free-text query.
// Queries too short to be natural language skip the LLM call entirely.
// Exhausted retries and malformed JSON return empty entities, never an
// error: extraction failure degrades the search, it does not abort it.
func (e *Extractor) Extract(ctx context.Context, query string) types.QueryEntities {
	if countAlpha(query) < minAlphaChars {
		return types.QueryEntities{}
	}

	prompt := buildExtractionPrompt(query)
	responseText, err := llm.GenerateJSONWithRetry(ctx, e.client, prompt, llm.TierLite, e.attempts)
	if err != nil {
		e.logger.Warn("entity extraction failed, returning empty entities",
			zap.String("query", query), zap.Error(err))
		return types.QueryEntities{}
	}

	var parsed extractionResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &parsed); err != nil {
		e.logger.Warn("entity extraction returned malformed JSON",
			zap.String("query", query), zap.Error(err))
		return types.QueryEntities{}
	}

	return normalizeEntities(query, parsed)
}

// normalizeEntities applies the grounding filter, abbreviation expansion,
// and bilingual seniority/role normalization to a raw extraction.
func normalizeEntities(query string, parsed extractionResponse) types.QueryEntities {
	entities := types.QueryEntities{
		Role:          synonyms.CanonicalRole(parsed.Role),
		Location:      strings.TrimSpace(parsed.Location),
		ExperienceMin: parsed.ExperienceMin,
		ExperienceMax: parsed.ExperienceMax,
		Remote:        parsed.Remote,
	}

	if level, ok := synonyms.NormalizeSeniority(parsed.Seniority); ok {
		entities.Seniority = level
	}

	seen := make(map[string]bool)
	for _, skill := range parsed.Skills {
		if !groundedInQuery(query, skill) {
			continue
		}
		canonical := synonyms.CanonicalSkill(skill)
		key := strings.ToLower(canonical)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		entities.Skills = append(entities.Skills, canonical)
	}

	return entities
}

// groundedInQuery reports whether an extracted skill is traceable to a
// token or known abbreviation in the original query text. Skills the model
// invented out of thin air are dropped here.
func groundedInQuery(query, skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false
	}
	queryLower := strings.ToLower(query)
	skillLower := strings.ToLower(skill)

	if strings.Contains(queryLower, skillLower) {
		return true
	}

	canonical := synonyms.CanonicalSkill(skill)
	for _, token := range tokenize(queryLower) {
		if synonyms.IsAbbreviationOf(token, canonical) {
			return true
		}
		if strings.EqualFold(synonyms.CanonicalSkill(token), canonical) {
			return true
		}
	}
	return false
}

func buildExtractionPrompt(query string) string {
	var sb strings.Builder
	sb.WriteString("You are a recruiting search assistant. Extract structured entities from the search query below.\n\n")
	sb.WriteString("Return ONLY valid JSON with this exact structure:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"role\": string,           // the role being searched, empty if none\n")
	sb.WriteString("  \"skills\": [string],       // ONLY skills literally present in the query\n")
	sb.WriteString("  \"seniority\": string,      // seniority term as written, empty if none\n")
	sb.WriteString("  \"location\": string,       // location, empty if none\n")
	sb.WriteString("  \"experience_min\": number, // minimum years of experience, 0 if unstated\n")
	sb.WriteString("  \"experience_max\": number, // maximum years of experience, 0 if unstated\n")
	sb.WriteString("  \"remote\": boolean|null    // null when the query says nothing about remote\n")
	sb.WriteString("}\n\n")
	sb.WriteString("Do not infer skills that are not written in the query.\n\n")
	sb.WriteString("Query: \"")
	sb.WriteString(query)
	sb.WriteString("\"\n")
	return sb.String()
}

func countAlpha(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			count++
		}
	}
	return count
}

// tokenize splits text on non-letter/digit boundaries, keeping characters
// like '#' and '.' that occur inside skill names ("c#", "node.js").
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '#' && r != '.' && r != '+'
	})
}
