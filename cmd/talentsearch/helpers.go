package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/talent-search/internal/config"
	"github.com/jonathan/talent-search/internal/logger"
)

// loadConfig resolves the effective configuration: file values merged over
// defaults, with the --verbose flag taking precedence.
func loadConfig() (config.Config, error) {
	effective := config.Default()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return effective, err
		}
		if err := loaded.Validate(); err != nil {
			return effective, err
		}
		effective = loaded.MergeWithDefaults(effective)
	}

	if verbose {
		effective.Verbose = true
	}
	return effective, nil
}

func buildLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(jsonLogs, cfg.Verbose)
}

// requireAPIKey reads the Gemini API key from the flag value or the
// environment.
func requireAPIKey(flagValue string) (string, error) {
	apiKey := flagValue
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	return apiKey, nil
}
