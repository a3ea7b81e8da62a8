package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-search/internal/classify"
	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/specialty"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a job description without running a search",
	Long:  "Classify a job description into function, level, and domains, detect target specialties, and print the result as JSON. Useful for debugging search strategy selection.",
	RunE:  runClassify,
}

var (
	classifyJobFile    string
	classifyAPIKey     string
	classifyOutputFile string
)

func init() {
	classifyCmd.Flags().StringVar(&classifyJobFile, "job", "", "Path to job description JSON (required)")
	classifyCmd.Flags().StringVar(&classifyAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	classifyCmd.Flags().StringVarP(&classifyOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	_ = classifyCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(_ *cobra.Command, _ []string) error {
	apiKey, err := requireAPIKey(classifyAPIKey)
	if err != nil {
		return err
	}

	job, err := readJobFile(classifyJobFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := llm.NewGeminiClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	classification, err := classify.NewGeminiClassifier(client).Classify(ctx, job.Title, job.Description)
	if err != nil {
		return err
	}

	result := struct {
		Function          string   `json:"function"`
		Level             string   `json:"level"`
		Domains           []string `json:"domains,omitempty"`
		Confidence        float64  `json:"confidence"`
		TargetSpecialties []string `json:"target_specialties,omitempty"`
	}{
		Function:          classification.Function,
		Level:             string(classification.Level),
		Domains:           classification.Domains,
		Confidence:        classification.Confidence,
		TargetSpecialties: specialty.Detect(job.Title, job.Description),
	}
	return writeJSON(result, classifyOutputFile)
}
