package embeddings

import (
	"context"
	"strings"
)

// StaticEmbedder is a deterministic in-memory embedder for tests and
// offline runs. Known texts return their fixed vectors; unknown texts get a
// reproducible pseudo-random vector seeded from the text.
type StaticEmbedder struct {
	Vectors map[string][]float32
	Dim     int
}

// NewStaticEmbedder creates a static embedder with the given fixed vectors.
func NewStaticEmbedder(vectors map[string][]float32, dim int) *StaticEmbedder {
	if dim <= 0 {
		dim = 16
	}
	normalized := make(map[string][]float32, len(vectors))
	for k, v := range vectors {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &StaticEmbedder{Vectors: normalized, Dim: dim}
}

// Embed returns the fixed vector for known text, else a deterministic
// hash-seeded vector.
func (e *StaticEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	if v, ok := e.Vectors[key]; ok {
		out := make([]float32, len(v))
		copy(out, v)
		return out, nil
	}

	seed := uint32(2166136261)
	for i := 0; i < len(key); i++ {
		seed = (seed ^ uint32(key[i])) * 16777619
	}
	vec := make([]float32, e.Dim)
	for i := range vec {
		seed = seed*1664525 + 1013904223 // LCG constants
		vec[i] = float32(seed%2000)/1000.0 - 1.0
	}
	return vec, nil
}
