// Package config provides configuration loading and validation for the
// search service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the service configuration loaded from a JSON file. All fields
// are optional; missing values use defaults. Secrets (API key, database
// URL) come from the environment, never from the file.
type Config struct {
	// Paths
	Ontology string `json:"ontology,omitempty"` // Path to skill ontology JSON

	// Pool sizing
	ExecutivePoolSize int `json:"executive_pool_size,omitempty"` // Function pool size for executive searches
	ICPoolSize        int `json:"ic_pool_size,omitempty"`        // Function pool size for IC searches

	// Rerank
	RerankTopN           int `json:"rerank_top_n,omitempty"`           // Candidates sent to the rerank service
	RerankTimeoutSeconds int `json:"rerank_timeout_seconds,omitempty"` // Rerank call timeout

	// Caching
	SkillCacheCapacity       int `json:"skill_cache_capacity,omitempty"`        // Skill expansion cache entries
	SkillCacheTTLMinutes     int `json:"skill_cache_ttl_minutes,omitempty"`     // Skill expansion cache TTL
	SpecialtyCacheTTLMinutes int `json:"specialty_cache_ttl_minutes,omitempty"` // Specialty row cache TTL

	// Query understanding
	RouteThreshold float64 `json:"route_threshold,omitempty"` // Minimum intent-route confidence

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Debug logging
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		ExecutivePoolSize:        300,
		ICPoolSize:               100,
		RerankTopN:               75,
		RerankTimeoutSeconds:     20,
		SkillCacheCapacity:       256,
		SkillCacheTTLMinutes:     60,
		SpecialtyCacheTTLMinutes: 5,
		RouteThreshold:           0.6,
	}
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.ExecutivePoolSize < 0 {
		return fmt.Errorf("config error: 'executive_pool_size' must be non-negative")
	}
	if c.ICPoolSize < 0 {
		return fmt.Errorf("config error: 'ic_pool_size' must be non-negative")
	}
	if c.RerankTopN < 0 {
		return fmt.Errorf("config error: 'rerank_top_n' must be non-negative")
	}
	if c.RouteThreshold < 0 || c.RouteThreshold > 1 {
		return fmt.Errorf("config error: 'route_threshold' must be between 0 and 1")
	}
	if c.Ontology != "" {
		if _, err := os.Stat(c.Ontology); os.IsNotExist(err) {
			return fmt.Errorf("config error: ontology file not found: %s", c.Ontology)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ExecutivePoolSize == 0 {
		result.ExecutivePoolSize = defaults.ExecutivePoolSize
	}
	if result.ICPoolSize == 0 {
		result.ICPoolSize = defaults.ICPoolSize
	}
	if result.RerankTopN == 0 {
		result.RerankTopN = defaults.RerankTopN
	}
	if result.RerankTimeoutSeconds == 0 {
		result.RerankTimeoutSeconds = defaults.RerankTimeoutSeconds
	}
	if result.SkillCacheCapacity == 0 {
		result.SkillCacheCapacity = defaults.SkillCacheCapacity
	}
	if result.SkillCacheTTLMinutes == 0 {
		result.SkillCacheTTLMinutes = defaults.SkillCacheTTLMinutes
	}
	if result.SpecialtyCacheTTLMinutes == 0 {
		result.SpecialtyCacheTTLMinutes = defaults.SpecialtyCacheTTLMinutes
	}
	if result.RouteThreshold == 0 {
		result.RouteThreshold = defaults.RouteThreshold
	}
	if result.Ontology == "" {
		result.Ontology = defaults.Ontology
	}
	return result
}
