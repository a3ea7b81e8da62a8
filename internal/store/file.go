package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/talent-search/internal/types"
)

// FileProfileStore is a ProfileStore backed by a JSON file of raw profile
// records. Used by the CLI and tests; production deployments point the
// orchestrator at the document store instead.
type FileProfileStore struct {
	profiles []types.CandidateProfile
}

// LoadProfileStore reads a JSON array of raw profile records and
// normalizes them.
func LoadProfileStore(path string) (*FileProfileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file %s: %w", path, err)
	}
	var records []ProfileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse profiles JSON: %w", err)
	}

	profiles := make([]types.CandidateProfile, 0, len(records))
	for _, rec := range records {
		profiles = append(profiles, NormalizeRecord(rec))
	}
	return &FileProfileStore{profiles: profiles}, nil
}

// NewFileProfileStore wraps already-normalized profiles; test seam.
func NewFileProfileStore(profiles []types.CandidateProfile) *FileProfileStore {
	return &FileProfileStore{profiles: profiles}
}

// QueryByFunction returns up to limit candidates tagged with the function
// whose nominal level is in levels. Candidates with unknown level are
// included: missing data never excludes.
func (s *FileProfileStore) QueryByFunction(_ context.Context, function string, levels []types.Level, limit int) ([]types.CandidateProfile, error) {
	levelSet := make(map[types.Level]bool, len(levels))
	for _, l := range levels {
		levelSet[l] = true
	}

	var out []types.CandidateProfile
	for _, p := range s.profiles {
		if limit > 0 && len(out) >= limit {
			break
		}
		if p.FunctionConfidence(function) == 0 {
			continue
		}
		if !p.Level.IsUnknown() && len(levelSet) > 0 && !levelSet[p.Level] {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
