package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-search/internal/embeddings"
	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/query"
	"github.com/jonathan/talent-search/internal/skillgraph"
)

var parseCmd = &cobra.Command{
	Use:   "parse [query]",
	Short: "Parse a free-text search query into structured entities",
	Long:  "Route a recruiter query by intent, extract entities (role, skills, seniority, location), expand skills through the ontology, and print the result as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var (
	parseOntologyFile string
	parseAPIKey       string
	parseNoRouter     bool
	parseOutputFile   string
)

func init() {
	parseCmd.Flags().StringVar(&parseOntologyFile, "ontology", "", "Path to skill ontology JSON (overrides config)")
	parseCmd.Flags().StringVar(&parseAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	parseCmd.Flags().BoolVar(&parseNoRouter, "no-router", false, "Skip embedding-based intent routing (forces keyword fallback)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	apiKey, err := requireAPIKey(parseAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := llm.NewGeminiClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var router *query.Router
	if !parseNoRouter {
		embedder, err := embeddings.NewGeminiEmbedder(ctx, apiKey, embeddings.DefaultModel)
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}
		router, err = query.NewRouter(ctx, embedder, query.DefaultRoutes(), cfg.RouteThreshold, log)
		if err != nil {
			return fmt.Errorf("failed to build intent router: %w", err)
		}
	}

	ontologyPath := parseOntologyFile
	if ontologyPath == "" {
		ontologyPath = cfg.Ontology
	}
	expander, err := buildSkillExpander(ontologyPath,
		cfg.SkillCacheCapacity, time.Duration(cfg.SkillCacheTTLMinutes)*time.Minute)
	if err != nil {
		return err
	}

	parser := query.NewParser(router, query.NewExtractor(client, log),
		query.NewExpander(expander, query.ExpanderConfig{}), query.ParserConfig{}, log)

	parsed := parser.Parse(ctx, args[0], nil)
	return writeJSON(parsed, parseOutputFile)
}

// buildSkillExpander loads the ontology graph. Without an ontology path the
// expander runs over an empty graph and expansion yields nothing.
func buildSkillExpander(path string, cacheCapacity int, cacheTTL time.Duration) (*skillgraph.Expander, error) {
	graph := skillgraph.NewGraph(nil)
	if path != "" {
		loaded, err := skillgraph.LoadGraph(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load skill ontology: %w", err)
		}
		graph = loaded
	}
	return skillgraph.NewExpander(graph, cacheCapacity, cacheTTL), nil
}
