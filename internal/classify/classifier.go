// Package classify defines the job-classification boundary. Classification
// runs once per search request and is fatal on failure: a degraded default
// classification would silently corrupt every downstream filter.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/types"
)

// Classifier produces a job classification from a title and description.
type Classifier interface {
	Classify(ctx context.Context, title, description string) (*types.JobClassification, error)
}

// Error is the fatal-to-request classification failure. Callers surface it
// as a "try again" error and never substitute a default classification.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("classification failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("classification failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GeminiClassifier implements Classifier with an LLM call.
type GeminiClassifier struct {
	client llm.Client
}

// NewGeminiClassifier creates an LLM-backed classifier.
func NewGeminiClassifier(client llm.Client) *GeminiClassifier {
	return &GeminiClassifier{client: client}
}

// classificationResponse is the expected JSON shape from the model.
type classificationResponse struct {
	Function   string   `json:"function"`
	Level      string   `json:"level"`
	Domains    []string `json:"domains"`
	Confidence float64  `json:"confidence"`
}

// Classify extracts the function, level, and domain tags for a job.
func (c *GeminiClassifier) Classify(ctx context.Context, title, description string) (*types.JobClassification, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
		return nil, &Error{Message: "empty job title and description"}
	}

	prompt := buildClassificationPrompt(title, description)

	responseText, err := c.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &Error{Message: "failed to generate classification", Cause: err}
	}

	var parsed classificationResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &parsed); err != nil {
		return nil, &Error{Message: "failed to parse classification JSON", Cause: err}
	}

	classification := &types.JobClassification{
		Function:   strings.ToLower(strings.TrimSpace(parsed.Function)),
		Level:      types.Level(strings.ToLower(strings.TrimSpace(parsed.Level))),
		Domains:    parsed.Domains,
		Confidence: clamp01(parsed.Confidence),
	}

	if classification.Function == "" || classification.Level.IsUnknown() {
		return nil, &Error{Message: "classification missing function or level"}
	}

	return classification, nil
}

func buildClassificationPrompt(title, description string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert recruiter. Classify the job posting below.\n\n")
	sb.WriteString("Return ONLY valid JSON with this exact structure:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"function\": string,   // one of: engineering, product, data, design, sales, marketing, operations\n")
	sb.WriteString("  \"level\": string,      // IC track: intern, junior, mid, senior, staff, principal; management track: manager, director, vp, c-level\n")
	sb.WriteString("  \"domains\": [string],  // domain tags such as fintech, marketplace, saas\n")
	sb.WriteString("  \"confidence\": number  // 0.0-1.0\n")
	sb.WriteString("}\n\n")
	sb.WriteString("Job title:\n")
	sb.WriteString(title)
	sb.WriteString("\n\nJob description:\n\"\"\"\n")
	sb.WriteString(description)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
