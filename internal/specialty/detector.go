// Package specialty derives required engineering specialties from a job
// title and description. Title tokens are authoritative; keyword density
// over the full text is the fallback.
package specialty

import (
	"strings"

	"github.com/jonathan/talent-search/internal/types"
)

// titleTokens maps explicit title phrases to specialty tags. A title match
// short-circuits keyword detection entirely.
var titleTokens = map[string][]string{
	types.SpecialtyBackend:   {"backend", "back-end", "back end"},
	types.SpecialtyFrontend:  {"frontend", "front-end", "front end"},
	types.SpecialtyFullstack: {"fullstack", "full-stack", "full stack"},
	types.SpecialtyMobile:    {"mobile", "ios", "android"},
	types.SpecialtyDevOps:    {"devops", "sre", "site reliability", "platform engineer", "infrastructure engineer"},
	types.SpecialtyData:      {"data engineer", "ml engineer", "machine learning engineer", "data scientist"},
}

// categoryKeywords holds the per-specialty keyword lists used for density
// detection. A category fires only with >= 2 distinct keyword hits.
var categoryKeywords = map[string][]string{
	types.SpecialtyBackend: {
		"api", "microservices", "database", "server-side", "rest", "grpc",
		"postgresql", "mysql", "redis", "kafka", "distributed systems", "scalability",
	},
	types.SpecialtyFrontend: {
		"react", "vue", "angular", "css", "html", "ui", "user interface",
		"javascript", "typescript", "responsive", "browser", "web components",
	},
	types.SpecialtyFullstack: {
		"full stack", "fullstack", "end-to-end", "frontend and backend",
	},
	types.SpecialtyMobile: {
		"ios", "android", "swift", "kotlin", "react native", "flutter",
		"mobile app", "app store", "play store",
	},
	types.SpecialtyDevOps: {
		"kubernetes", "terraform", "ci/cd", "docker", "aws", "gcp",
		"observability", "monitoring", "infrastructure", "deployment", "helm",
	},
	types.SpecialtyData: {
		"etl", "data pipeline", "spark", "airflow", "data warehouse",
		"machine learning", "ml", "analytics", "bigquery", "dbt",
	},
}

// detectionOrder keeps output ordering deterministic.
var detectionOrder = []string{
	types.SpecialtyBackend,
	types.SpecialtyFrontend,
	types.SpecialtyFullstack,
	types.SpecialtyMobile,
	types.SpecialtyDevOps,
	types.SpecialtyData,
}

// minKeywordHits is the distinct-hit threshold for keyword detection.
const minKeywordHits = 2

// Detect returns the ordered specialty tags for a job. Pure function of the
// title and description text; may return an empty slice.
func Detect(title, description string) []string {
	if tags := detectFromTitle(title); len(tags) > 0 {
		return tags
	}
	return detectFromKeywords(title + " " + description)
}

// detectFromTitle scans the title for explicit specialty tokens. Any match
// is authoritative.
func detectFromTitle(title string) []string {
	lower := strings.ToLower(title)
	var tags []string
	for _, tag := range detectionOrder {
		for _, token := range titleTokens[tag] {
			if containsToken(lower, token) {
				tags = append(tags, tag)
				break
			}
		}
	}
	return tags
}

// detectFromKeywords counts distinct keyword hits per category over the
// full text and emits every category at or above the threshold. Multiple
// specialties may be emitted for the same text.
func detectFromKeywords(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, tag := range detectionOrder {
		hits := 0
		for _, keyword := range categoryKeywords[tag] {
			if containsToken(lower, keyword) {
				hits++
			}
		}
		if hits >= minKeywordHits {
			tags = append(tags, tag)
		}
	}
	return tags
}

// containsToken reports whether token occurs in text on word boundaries, so
// "ios" does not fire on "bios" and "ml" does not fire on "html".
func containsToken(text, token string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], token)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(token)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
