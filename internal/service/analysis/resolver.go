package analysis

import (
	"sort"
	"strings"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
)

// Content-signal trigger groups. Any hit from a group adds that group's
// regulations to the candidate set before the compatibility filter runs.
var (
	financialTerms = []string{"loan", "financing", "credit", "interest rate", "apr", "payment", "debt"}
	privacyTerms   = []string{"personal data", "privacy", "confidential", "data processing", "consumer information"}
	securityTerms  = []string{"security", "cyber", "data protection", "encryption", "access control"}

	financialRegulations = []string{regulation.GLBA, regulation.FCRA, regulation.TILA, regulation.EFTA}
	privacyRegulations   = []string{regulation.CCPACPRA}
	securityRegulations  = []string{regulation.NYDFS}
)

// Resolver computes the set of regulations applicable to an analysis context
// by combining jurisdiction defaults, industry defaults and lexical content
// signals, then filtering incompatible combinations.
type Resolver struct {
	registry *regulation.Registry
}

// NewResolver creates a resolver over the given registry.
func NewResolver(registry *regulation.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve returns the sorted, duplicate-free regulation ids applicable to the
// context. Unknown jurisdiction or industry codes contribute nothing but do
// not error; an empty result is a valid degenerate outcome.
func (r *Resolver) Resolve(actx analysis.Context) []string {
	text := strings.ToLower(actx.ContractText)

	candidates := make(map[string]struct{})
	for _, id := range r.registry.ForJurisdiction(actx.Jurisdiction) {
		candidates[id] = struct{}{}
	}
	for _, id := range r.registry.ForIndustry(actx.Industry) {
		candidates[id] = struct{}{}
	}
	for _, id := range detectFromContent(text) {
		candidates[id] = struct{}{}
	}

	applicable := make([]string, 0, len(candidates))
	for id := range candidates {
		def, err := r.registry.Get(id)
		if err != nil {
			continue
		}
		if !def.AppliesToJurisdiction(actx.Jurisdiction) {
			continue
		}
		if !def.AppliesToIndustry(actx.Industry) {
			continue
		}
		applicable = append(applicable, id)
	}

	sort.Strings(applicable)
	return applicable
}

// detectFromContent scans lowercased contract text for the fixed trigger
// groups and returns the regulations they imply.
func detectFromContent(text string) []string {
	var detected []string

	if containsAny(text, financialTerms) {
		detected = append(detected, financialRegulations...)
	}
	if containsAny(text, privacyTerms) {
		detected = append(detected, privacyRegulations...)
	}
	if containsAny(text, securityTerms) {
		detected = append(detected, securityRegulations...)
	}

	return detected
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
