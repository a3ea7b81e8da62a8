package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-search/internal/classify"
	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/rerank"
	"github.com/jonathan/talent-search/internal/retrieval"
	"github.com/jonathan/talent-search/internal/search"
	"github.com/jonathan/talent-search/internal/store"
	"github.com/jonathan/talent-search/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a candidate search for a job description",
	Long:  "Classify a job description, retrieve and score candidate pools, and print the ranked matches as JSON. The vector-similarity pool is supplied as a file of profile records from the vector search provider.",
	RunE:  runSearch,
}

var (
	searchJobFile        string
	searchProfilesFile   string
	searchCandidatesFile string
	searchOutputFile     string
	searchDatabaseURL    string
	searchAPIKey         string
	searchLimit          int
	searchNoRerank       bool
)

func init() {
	searchCmd.Flags().StringVar(&searchJobFile, "job", "", "Path to job description JSON (required)")
	searchCmd.Flags().StringVar(&searchProfilesFile, "profiles", "", "Path to candidate profiles JSON for the function pool (required)")
	searchCmd.Flags().StringVar(&searchCandidatesFile, "candidates", "", "Path to vector search provider results JSON")
	searchCmd.Flags().StringVarP(&searchOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	searchCmd.Flags().StringVar(&searchDatabaseURL, "db-url", "", "Specialty database URL (overrides DATABASE_URL env var)")
	searchCmd.Flags().StringVar(&searchAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum matches to return (default 50)")
	searchCmd.Flags().BoolVar(&searchNoRerank, "no-rerank", false, "Skip the LLM rerank stage")

	_ = searchCmd.MarkFlagRequired("job")
	_ = searchCmd.MarkFlagRequired("profiles")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	apiKey, err := requireAPIKey(searchAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := llm.NewGeminiClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	job, err := readJobFile(searchJobFile)
	if err != nil {
		return err
	}

	profiles, err := store.LoadProfileStore(searchProfilesFile)
	if err != nil {
		return err
	}

	vectorPool, err := readCandidatesFile(searchCandidatesFile)
	if err != nil {
		return err
	}

	specialties, closeSpecialties, err := openSpecialtyStore(ctx, cfg.SpecialtyCacheTTLMinutes, log)
	if err != nil {
		return err
	}
	defer closeSpecialties()

	var rerankService rerank.Service
	if !searchNoRerank {
		rerankService = rerank.NewGeminiService(client)
	}
	adapter := rerank.NewAdapter(rerankService, cfg.RerankTopN,
		time.Duration(cfg.RerankTimeoutSeconds)*time.Second, log)

	retriever := retrieval.NewOrchestrator(profiles, specialties, retrieval.Config{
		ExecutivePoolSize: cfg.ExecutivePoolSize,
		ICPoolSize:        cfg.ICPoolSize,
	}, log)

	orchestrator := search.NewOrchestrator(classify.NewGeminiClassifier(client), retriever, adapter, log)

	// Stream stage transitions to stderr so long searches show progress.
	events, cancelEvents := orchestrator.Events().Subscribe()
	defer cancelEvents()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", event.At.Format("15:04:05"), event.Stage)
		}
	}()

	response, err := orchestrator.Search(ctx, search.Request{
		Job:        job,
		VectorPool: vectorPool,
		Limit:      searchLimit,
	})
	cancelEvents()
	<-done
	if err != nil {
		return err
	}

	return writeJSON(response, searchOutputFile)
}

func readJobFile(path string) (types.JobDescription, error) {
	var job types.JobDescription
	data, err := os.ReadFile(path)
	if err != nil {
		return job, fmt.Errorf("failed to read job file: %w", err)
	}
	if err := json.Unmarshal(data, &job); err != nil {
		return job, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	return job, nil
}

// readCandidatesFile loads and normalizes the vector search provider
// results. An empty path means no vector pool for this search.
func readCandidatesFile(path string) ([]types.CandidateProfile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}
	var records []store.ProfileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse candidates JSON: %w", err)
	}
	pool := make([]types.CandidateProfile, 0, len(records))
	for _, rec := range records {
		pool = append(pool, store.NormalizeRecord(rec))
	}
	return pool, nil
}

// openSpecialtyStore connects to the specialty database when a URL is
// configured. No URL means the search runs without specialty data, which
// is a supported degraded mode.
func openSpecialtyStore(ctx context.Context, ttlMinutes int, log *zap.Logger) (store.SpecialtyStore, func(), error) {
	databaseURL := searchDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		log.Debug("no specialty database configured, continuing without specialty data")
		return nil, func() {}, nil
	}

	pg, err := store.ConnectSpecialtyStore(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to specialty database: %w", err)
	}
	cached := store.NewCachedSpecialtyStore(pg, time.Duration(ttlMinutes)*time.Minute)
	return cached, pg.Close, nil
}

func writeJSON(v any, path string) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		fmt.Println(string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Output: %s\n", path)
	return nil
}
