package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionConfidence_MultiFunctionTags(t *testing.T) {
	p := CandidateProfile{
		FunctionTags: []FunctionTag{
			{Function: "engineering", Confidence: 0.85},
			{Function: "data", Confidence: 0.4},
		},
	}

	assert.Equal(t, 0.85, p.FunctionConfidence("engineering"))
	assert.Equal(t, 0.4, p.FunctionConfidence("data"))
	assert.Equal(t, 0.0, p.FunctionConfidence("sales"))
}

func TestFunctionConfidence_LegacySingleFunction(t *testing.T) {
	p := CandidateProfile{Function: "engineering"}

	assert.Equal(t, 1.0, p.FunctionConfidence("engineering"))
	assert.Equal(t, 0.0, p.FunctionConfidence("product"))
}

func TestFunctionConfidence_TagsShadowLegacyField(t *testing.T) {
	p := CandidateProfile{
		Function:     "engineering",
		FunctionTags: []FunctionTag{{Function: "engineering", Confidence: 0.6}},
	}

	assert.Equal(t, 0.6, p.FunctionConfidence("engineering"))
}

func TestHasSpecialtyData_NilMeansNoData(t *testing.T) {
	p := CandidateProfile{}
	assert.False(t, p.HasSpecialtyData())

	p.Specialties = []string{"backend"}
	assert.True(t, p.HasSpecialtyData())
	assert.True(t, p.HasSpecialty("backend"))
	assert.False(t, p.HasSpecialty("frontend"))
}

func TestAddSource_SkipsDuplicates(t *testing.T) {
	e := CandidateScoreEntry{}
	e.AddSource("function_index")
	e.AddSource("vector_similarity")
	e.AddSource("function_index")

	assert.Equal(t, []string{"function_index", "vector_similarity"}, e.Sources)
}

func TestCandidateProfile_JSONUnmarshaling(t *testing.T) {
	jsonInput := `{
		"id": "maria-silva",
		"name": "Maria Silva",
		"level": "senior",
		"company": "Nubank",
		"function_tags": [{"function": "engineering", "confidence": 0.9}],
		"specialties": ["backend"]
	}`

	var p CandidateProfile
	err := json.Unmarshal([]byte(jsonInput), &p)
	require.NoError(t, err)
	assert.Equal(t, "maria-silva", p.ID)
	assert.Equal(t, LevelSenior, p.Level)
	assert.Equal(t, 0.9, p.FunctionConfidence("engineering"))
	assert.True(t, p.HasSpecialty("backend"))
}

func TestLevel_IsUnknown(t *testing.T) {
	assert.True(t, LevelUnknown.IsUnknown())
	assert.False(t, LevelSenior.IsUnknown())
}
