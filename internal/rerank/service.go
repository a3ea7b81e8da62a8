// Package rerank sends retrieval-shortlisted candidates to an external
// reasoning-model rerank service and blends its scores back into the
// retrieval scores, degrading cleanly when the service fails.
package rerank

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/types"
)

// JobContext is the job summary sent with a rerank batch.
type JobContext struct {
	Title          string
	Function       string
	Level          types.Level
	RequiredSkills []string
	AvoidedSkills  []string
	// CompanyContext is the inferred company-stage/industry context string
	// ("early-stage fintech", "enterprise saas").
	CompanyContext string
}

// Candidate is one shortlisted candidate in a rerank batch.
type Candidate struct {
	ID             string
	Name           string
	Level          types.Level
	Company        string
	Specialties    []string
	RetrievalScore float64
}

// Result is one reranked candidate. Absence of a candidate id from a
// response means "not reranked", never "zero score".
type Result struct {
	CandidateID string  `json:"candidate_id"`
	Score       float64 `json:"score"`
	Rationale   string  `json:"rationale"`
}

// Service is the external rerank call. It may return a subset of the
// requested candidate ids.
type Service interface {
	Rerank(ctx context.Context, job JobContext, candidates []Candidate) ([]Result, error)
}

// GeminiService implements Service with one batch LLM call per request.
type GeminiService struct {
	client llm.Client
}

// NewGeminiService creates an LLM-backed rerank service.
func NewGeminiService(client llm.Client) *GeminiService {
	return &GeminiService{client: client}
}

// Rerank scores the batch in a single call and returns the parsed results.
func (s *GeminiService) Rerank(ctx context.Context, job JobContext, candidates []Candidate) ([]Result, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	prompt := buildRerankPrompt(job, candidates)
	responseText, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("rerank call failed: %w", err)
	}

	var results []Result
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &results); err != nil {
		return nil, fmt.Errorf("failed to parse rerank response: %w", err)
	}

	for i := range results {
		if results[i].Score < 0 {
			results[i].Score = 0
		}
		if results[i].Score > 100 {
			results[i].Score = 100
		}
	}
	return results, nil
}

func buildRerankPrompt(job JobContext, candidates []Candidate) string {
	var sb strings.Builder
	sb.WriteString("You are an expert technical recruiter. Score each candidate below for the role, 0-100.\n\n")
	sb.WriteString("Role:\n")
	sb.WriteString(fmt.Sprintf("  Title: %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("  Function: %s, level: %s\n", job.Function, job.Level))
	if len(job.RequiredSkills) > 0 {
		sb.WriteString(fmt.Sprintf("  Required skills: %s\n", strings.Join(job.RequiredSkills, ", ")))
	}
	if len(job.AvoidedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("  Avoid candidates focused on: %s\n", strings.Join(job.AvoidedSkills, ", ")))
	}
	if job.CompanyContext != "" {
		sb.WriteString(fmt.Sprintf("  Company context: %s\n", job.CompanyContext))
	}

	sb.WriteString("\nCandidates:\n")
	for _, c := range candidates {
		sb.WriteString(fmt.Sprintf("  - id: %s", c.ID))
		if c.Name != "" {
			sb.WriteString(fmt.Sprintf(", name: %s", c.Name))
		}
		if !c.Level.IsUnknown() {
			sb.WriteString(fmt.Sprintf(", level: %s", c.Level))
		}
		if c.Company != "" {
			sb.WriteString(fmt.Sprintf(", company: %s", c.Company))
		}
		if len(c.Specialties) > 0 {
			sb.WriteString(fmt.Sprintf(", specialties: %s", strings.Join(c.Specialties, "/")))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nReturn ONLY a JSON array with this exact structure:\n")
	sb.WriteString("[{\"candidate_id\": string, \"score\": number, \"rationale\": string}]\n")
	sb.WriteString("The rationale is one sentence explaining the score.\n")
	return sb.String()
}
