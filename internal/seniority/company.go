package seniority

import "strings"

// CompanyTier grades an employer for cross-company seniority comparison.
type CompanyTier int

// Company tiers. TierUnknown means no explicit company data exists, which
// is distinct from TierUnverified (an explicit but unrecognized employer).
const (
	TierUnknown    CompanyTier = -1
	TierUnverified CompanyTier = 0
	TierNotable    CompanyTier = 1
	TierTop        CompanyTier = 2
)

// topTierCompanies are employers whose seniority titles transfer without
// adjustment.
var topTierCompanies = map[string]bool{
	"google":     true,
	"meta":       true,
	"facebook":   true,
	"amazon":     true,
	"apple":      true,
	"microsoft":  true,
	"netflix":    true,
	"stripe":     true,
	"databricks": true,
	"openai":     true,
	"nubank":     true,
}

// notableCompanies are established employers one step behind top tier.
var notableCompanies = map[string]bool{
	"spotify":       true,
	"uber":          true,
	"airbnb":        true,
	"shopify":       true,
	"mercado livre": true,
	"mercadolibre":  true,
	"ifood":         true,
	"stone":         true,
	"quintoandar":   true,
	"wildlife":      true,
	"loft":          true,
	"creditas":      true,
}

// recognizedCompanies are additional employers that earn company-pedigree
// credit in scoring but no tier adjustment beyond unverified.
var recognizedCompanies = map[string]bool{
	"globo":     true,
	"itau":      true,
	"itaú":      true,
	"bradesco":  true,
	"totvs":     true,
	"vtex":      true,
	"pagseguro": true,
	"picpay":    true,
}

// TierOf returns the tier for a company name. Empty names report
// TierUnknown so callers can skip tier adjustment entirely.
func TierOf(company string) CompanyTier {
	name := strings.ToLower(strings.TrimSpace(company))
	if name == "" {
		return TierUnknown
	}
	if topTierCompanies[name] {
		return TierTop
	}
	if notableCompanies[name] {
		return TierNotable
	}
	return TierUnverified
}

// IsRecognized reports whether the company earns pedigree credit without
// being notable or top tier.
func IsRecognized(company string) bool {
	return recognizedCompanies[strings.ToLower(strings.TrimSpace(company))]
}
