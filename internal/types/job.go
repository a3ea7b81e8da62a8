// Package types defines the canonical domain structs shared across the
// search pipeline: job descriptions, classifications, candidate profiles,
// and parsed queries.
package types

// JobDescription is the immutable per-request input describing the role
// being sourced for.
type JobDescription struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	RequiredSkills []string          `json:"required_skills,omitempty"`
	AvoidedSkills  []string          `json:"avoided_skills,omitempty"`
	Sourcing       *SourcingStrategy `json:"sourcing,omitempty"`
}

// SourcingStrategy narrows the search toward specific companies or
// industries. Optional; absence means no company preference.
type SourcingStrategy struct {
	TargetCompanies  []string `json:"target_companies,omitempty"`
	TargetIndustries []string `json:"target_industries,omitempty"`
}

// JobClassification is produced once per request by the job classifier and
// never mutated afterwards.
type JobClassification struct {
	Function   string   `json:"function"`
	Level      Level    `json:"level"`
	Domains    []string `json:"domains,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Job function families recognized by the classifier.
const (
	FunctionEngineering = "engineering"
	FunctionProduct     = "product"
	FunctionData        = "data"
	FunctionDesign      = "design"
	FunctionSales       = "sales"
	FunctionMarketing   = "marketing"
	FunctionOperations  = "operations"
)

// Engineering specialty tags emitted by the specialty detector and stored
// per candidate in the specialty store.
const (
	SpecialtyBackend   = "backend"
	SpecialtyFrontend  = "frontend"
	SpecialtyFullstack = "fullstack"
	SpecialtyMobile    = "mobile"
	SpecialtyDevOps    = "devops"
	SpecialtyData      = "data"
)
