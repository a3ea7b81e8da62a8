package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-search/internal/embeddings"
	"github.com/jonathan/talent-search/internal/types"
)

// axisEmbedder maps exemplar texts onto fixed axes so route vectors are
// fully controlled in tests.
func axisEmbedder() *embeddings.StaticEmbedder {
	return embeddings.NewStaticEmbedder(map[string][]float32{
		"find a senior engineer":  {1, 0},
		"search for a developer":  {1, 0},
		"people similar to maria": {0, 1},

		"structured probe": {1, 0},
		"similarity probe": {0, 1},
		"ambiguous probe":  {-1, 0},
	}, 2)
}

func testRoutes() []Route {
	return []Route{
		{Intent: types.IntentStructured, Utterances: []string{"find a senior engineer", "search for a developer"}},
		{Intent: types.IntentSimilarity, LowValue: true, Utterances: []string{"people similar to maria"}},
	}
}

func TestNewRouter_RequiresEmbedder(t *testing.T) {
	_, err := NewRouter(context.Background(), nil, testRoutes(), 0.6, nil)
	assert.Error(t, err)
}

func TestRoute_StructuredIntentAboveThreshold(t *testing.T) {
	router, err := NewRouter(context.Background(), axisEmbedder(), testRoutes(), 0.6, nil)
	require.NoError(t, err)

	result, err := router.Route(context.Background(), "structured probe", nil)
	require.NoError(t, err)

	assert.Equal(t, types.IntentStructured, result.Intent)
	assert.False(t, result.Fallback)
	// Perfect alignment: cosine 1 maps to confidence 1.
	assert.InDelta(t, 1.0, result.Confidence, 1e-6)
}

func TestRoute_LowValueIntentForcesFallback(t *testing.T) {
	router, err := NewRouter(context.Background(), axisEmbedder(), testRoutes(), 0.6, nil)
	require.NoError(t, err)

	result, err := router.Route(context.Background(), "similarity probe", nil)
	require.NoError(t, err)

	assert.Equal(t, types.IntentSimilarity, result.Intent)
	assert.True(t, result.Fallback)
}

func TestRoute_BelowThresholdFallsBack(t *testing.T) {
	router, err := NewRouter(context.Background(), axisEmbedder(), testRoutes(), 0.6, nil)
	require.NoError(t, err)

	// Anti-aligned with structured, orthogonal to similarity: best
	// confidence is 0.5, under the 0.6 threshold.
	result, err := router.Route(context.Background(), "ambiguous probe", nil)
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	assert.LessOrEqual(t, result.Confidence, 0.5+1e-6)
}

func TestRoute_PrecomputedEmbeddingSkipsEmbedCall(t *testing.T) {
	router, err := NewRouter(context.Background(), axisEmbedder(), testRoutes(), 0.6, nil)
	require.NoError(t, err)

	result, err := router.Route(context.Background(), "ignored text", []float32{1, 0})
	require.NoError(t, err)

	assert.Equal(t, types.IntentStructured, result.Intent)
	assert.False(t, result.Fallback)
}

func TestCosine_EdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, cosine([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, cosine(nil, nil))
	assert.Equal(t, 0.0, cosine([]float32{0, 0}, []float32{1, 0}))
	assert.InDelta(t, 1.0, cosine([]float32{2, 0}, []float32{5, 0}), 1e-9)
}
