// Package store defines the candidate data boundaries: the
// document-oriented profile store queried by function and level, and the
// relational specialty store joined by normalized profile-URL slug.
package store

import (
	"context"
	"strings"

	"github.com/jonathan/talent-search/internal/types"
)

// ProfileStore is the document-oriented candidate source, queryable by
// function and acceptable levels.
type ProfileStore interface {
	QueryByFunction(ctx context.Context, function string, levels []types.Level, limit int) ([]types.CandidateProfile, error)
}

// ProfileRecord is the raw document-store shape before normalization. The
// two historical sources disagree on field names; NormalizeRecord maps
// either shape onto the canonical CandidateProfile.
type ProfileRecord struct {
	ID         string `json:"id"`
	ProfileID  string `json:"profile_id"` // legacy field name
	Name       string `json:"name"`
	FullName   string `json:"full_name"` // legacy field name
	ProfileURL string `json:"profile_url"`
	Level      string `json:"level"`
	Seniority  string `json:"seniority"` // legacy field name
	Company    string `json:"company"`
	Function   string `json:"function"`
	Functions  []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"functions"`
}

// NormalizeRecord maps a raw record onto the canonical candidate struct.
// Legacy field names are honored only when the current ones are absent.
// The candidate id falls back to the profile-URL slug so both stores join
// on the same key.
func NormalizeRecord(rec ProfileRecord) types.CandidateProfile {
	profile := types.CandidateProfile{
		ID:         firstNonEmpty(rec.ID, rec.ProfileID),
		Name:       firstNonEmpty(rec.Name, rec.FullName),
		ProfileURL: rec.ProfileURL,
		Level:      types.Level(strings.ToLower(strings.TrimSpace(firstNonEmpty(rec.Level, rec.Seniority)))),
		Company:    strings.TrimSpace(rec.Company),
		Function:   strings.ToLower(strings.TrimSpace(rec.Function)),
	}
	if profile.ID == "" {
		profile.ID = SlugFromURL(rec.ProfileURL)
	}
	for _, fn := range rec.Functions {
		profile.FunctionTags = append(profile.FunctionTags, types.FunctionTag{
			Function:   strings.ToLower(strings.TrimSpace(fn.Name)),
			Confidence: fn.Confidence,
		})
	}
	return profile
}

// SlugFromURL extracts the cross-store join key from a profile URL:
// lowercase final path segment, query and trailing slash stripped.
func SlugFromURL(url string) string {
	url = strings.TrimSpace(strings.ToLower(url))
	if url == "" {
		return ""
	}
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		url = url[:idx]
	}
	url = strings.TrimSuffix(url, "/")
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		url = url[idx+1:]
	}
	return url
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
