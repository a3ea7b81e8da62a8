package synonyms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-search/internal/types"
)

func TestCanonicalSkill_KnownAbbreviations(t *testing.T) {
	assert.Equal(t, "JavaScript", CanonicalSkill("js"))
	assert.Equal(t, "TypeScript", CanonicalSkill("TS"))
	assert.Equal(t, "Kubernetes", CanonicalSkill("k8s"))
	assert.Equal(t, "PostgreSQL", CanonicalSkill(" postgres "))
	assert.Equal(t, "Go", CanonicalSkill("golang"))
}

func TestCanonicalSkill_UnknownTermUnchanged(t *testing.T) {
	assert.Equal(t, "Rust", CanonicalSkill("Rust"))
	assert.Equal(t, "Kafka", CanonicalSkill("  Kafka  "))
}

func TestIsAbbreviationOf_Matches(t *testing.T) {
	assert.True(t, IsAbbreviationOf("js", "JavaScript"))
	assert.True(t, IsAbbreviationOf("K8S", "kubernetes"))
	assert.False(t, IsAbbreviationOf("js", "TypeScript"))
	assert.False(t, IsAbbreviationOf("javascript", "JavaScript"))
}

func TestNormalizeSeniority_EnglishTerms(t *testing.T) {
	level, ok := NormalizeSeniority("Senior")
	assert.True(t, ok)
	assert.Equal(t, types.LevelSenior, level)

	level, ok = NormalizeSeniority("jr")
	assert.True(t, ok)
	assert.Equal(t, types.LevelJunior, level)
}

func TestNormalizeSeniority_PortugueseTerms(t *testing.T) {
	level, ok := NormalizeSeniority("pleno")
	assert.True(t, ok)
	assert.Equal(t, types.LevelMid, level)

	level, ok = NormalizeSeniority("gerente")
	assert.True(t, ok)
	assert.Equal(t, types.LevelManager, level)

	// Autocorrect artifact of "sênior" seen in real queries.
	level, ok = NormalizeSeniority("senhor")
	assert.True(t, ok)
	assert.Equal(t, types.LevelSenior, level)
}

func TestNormalizeSeniority_Unrecognized(t *testing.T) {
	_, ok := NormalizeSeniority("experienced")
	assert.False(t, ok)
}

func TestCanonicalRole_WordLevelSynonyms(t *testing.T) {
	assert.Equal(t, "developer backend", CanonicalRole("desenvolvedor backend"))
	assert.Equal(t, "engineer", CanonicalRole("Engenheira"))
}

func TestCanonicalRole_WholePhraseSynonym(t *testing.T) {
	assert.Equal(t, "data scientist", CanonicalRole("Cientista de Dados"))
}

func TestCanonicalRole_Empty(t *testing.T) {
	assert.Equal(t, "", CanonicalRole("   "))
}
