// Package synonyms provides static bilingual (EN/PT-BR) lookup tables for
// seniority terms, role synonyms, and skill abbreviations. The tables are
// used by the query-understanding pipeline to normalize extracted entities.
package synonyms

import (
	"strings"

	"github.com/jonathan/talent-search/internal/types"
)

// skillAbbreviations maps common abbreviations and shorthand to canonical
// skill names.
var skillAbbreviations = map[string]string{
	"js":         "JavaScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kube":       "Kubernetes",
	"mongo":      "MongoDB",
	"postgres":   "PostgreSQL",
	"pg":         "PostgreSQL",
	"py":         "Python",
	"golang":     "Go",
	"node":       "Node.js",
	"nodejs":     "Node.js",
	"react.js":   "React",
	"reactjs":    "React",
	"rn":         "React Native",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"gcp":        "Google Cloud",
	"es":         "Elasticsearch",
	"elastic":    "Elasticsearch",
	"tf":         "Terraform",
	"dotnet":     ".NET",
	"c sharp":    "C#",
	"rabbit":     "RabbitMQ",
}

// seniorityTerms maps EN and PT-BR seniority words to canonical levels.
// "pleno" is the Brazilian market term for mid level; "senhor" shows up as
// an autocorrect artifact of "sênior" in real queries.
var seniorityTerms = map[string]types.Level{
	"intern":         types.LevelIntern,
	"estagiario":     types.LevelIntern,
	"estagiário":     types.LevelIntern,
	"trainee":        types.LevelIntern,
	"junior":         types.LevelJunior,
	"júnior":         types.LevelJunior,
	"jr":             types.LevelJunior,
	"mid":            types.LevelMid,
	"mid-level":      types.LevelMid,
	"pleno":          types.LevelMid,
	"senior":         types.LevelSenior,
	"sênior":         types.LevelSenior,
	"senhor":         types.LevelSenior,
	"sr":             types.LevelSenior,
	"staff":          types.LevelStaff,
	"principal":      types.LevelPrincipal,
	"manager":        types.LevelManager,
	"mgr":            types.LevelManager,
	"gerente":        types.LevelManager,
	"gestor":         types.LevelManager,
	"director":       types.LevelDirector,
	"diretor":        types.LevelDirector,
	"diretora":       types.LevelDirector,
	"head":           types.LevelDirector,
	"vp":             types.LevelVP,
	"vice president": types.LevelVP,
	"cto":            types.LevelCLevel,
	"ceo":            types.LevelCLevel,
	"cpo":            types.LevelCLevel,
	"cio":            types.LevelCLevel,
	"c-level":        types.LevelCLevel,
}

// roleSynonyms maps PT-BR and shorthand role words to canonical EN forms.
var roleSynonyms = map[string]string{
	"dev":                "developer",
	"desenvolvedor":      "developer",
	"desenvolvedora":     "developer",
	"programador":        "developer",
	"programadora":       "developer",
	"engenheiro":         "engineer",
	"engenheira":         "engineer",
	"arquiteto":          "architect",
	"arquiteta":          "architect",
	"cientista de dados": "data scientist",
	"analista":           "analyst",
}

// CanonicalSkill resolves an abbreviation to its canonical skill name.
// Unrecognized terms are returned unchanged.
func CanonicalSkill(term string) string {
	key := strings.ToLower(strings.TrimSpace(term))
	if canonical, ok := skillAbbreviations[key]; ok {
		return canonical
	}
	return strings.TrimSpace(term)
}

// IsAbbreviationOf reports whether term is a known abbreviation of the
// canonical skill name.
func IsAbbreviationOf(term, canonical string) bool {
	mapped, ok := skillAbbreviations[strings.ToLower(strings.TrimSpace(term))]
	return ok && strings.EqualFold(mapped, canonical)
}

// NormalizeSeniority resolves an EN or PT-BR seniority term to a canonical
// level. The boolean reports whether the term was recognized.
func NormalizeSeniority(term string) (types.Level, bool) {
	key := strings.ToLower(strings.TrimSpace(term))
	level, ok := seniorityTerms[key]
	return level, ok
}

// CanonicalRole resolves PT-BR or shorthand role words within a role phrase
// to their canonical EN forms, preserving unrecognized words.
func CanonicalRole(role string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(role)))
	if len(words) == 0 {
		return ""
	}
	// Whole-phrase synonyms first ("cientista de dados").
	if canonical, ok := roleSynonyms[strings.Join(words, " ")]; ok {
		return canonical
	}
	for i, w := range words {
		if canonical, ok := roleSynonyms[w]; ok {
			words[i] = canonical
		}
	}
	return strings.Join(words, " ")
}
