package analysis

import (
	"regexp"
	"strings"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
)

var keywordPattern = regexp.MustCompile(`\b[a-z]{3,}\b`)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// conceptMap maps clause names to domain synonym phrases. Coverage is
// deliberately partial: clauses outside the table simply contribute nothing
// to the semantic signal. Known heuristic gap, do not invent synonyms.
var conceptMap = map[string][]string{
	"Financial Privacy Notice":       {"privacy policy", "data sharing", "opt out", "confidentiality"},
	"Credit Reporting Authorization": {"credit check", "background check", "consumer report", "authorization"},
	"Data Safeguards Program":        {"security program", "data protection", "encryption", "access control"},
	"Truth in Lending Disclosures":   {"apr", "annual percentage rate", "finance charge", "disclosure"},
}

// Detector decides clause-by-clause whether a regulation's required clauses
// are adequately represented in contract text. The decision is a weighted
// lexical heuristic: directional signal, not certainty. A pure function of
// its inputs, safe for concurrent use.
type Detector struct {
	config DetectorConfig
}

// NewDetector creates a detector with the given policy.
func NewDetector(config DetectorConfig) *Detector {
	return &Detector{config: config}
}

// MissingClauses returns the regulation's required clauses not satisfied by
// the contract text, preserving catalog order.
func (d *Detector) MissingClauses(def *regulation.Definition, contractText string) []regulation.ClauseRequirement {
	text := strings.ToLower(contractText)

	var missing []regulation.ClauseRequirement
	for _, clause := range def.Clauses {
		if !d.isPresent(clause, text) {
			missing = append(missing, clause)
		}
	}
	return missing
}

// isPresent combines three lexical signals into a weighted score and reports
// presence when the score reaches the configured threshold.
func (d *Detector) isPresent(clause regulation.ClauseRequirement, text string) bool {
	directMatches := 0
	for _, kw := range extractKeywords(clause.Name, d.config.MaxKeywords) {
		if strings.Contains(text, kw) {
			directMatches++
		}
	}

	requirementMatches := 0
	limit := d.config.MaxRequirementPhrases
	if limit > len(clause.Requirements) {
		limit = len(clause.Requirements)
	}
	for _, req := range clause.Requirements[:limit] {
		if anyWordPresent(strings.ToLower(req), text) {
			requirementMatches++
		}
	}

	conceptMatches := 0
	for _, concept := range conceptMap[clause.Name] {
		if strings.Contains(text, concept) {
			conceptMatches++
		}
	}

	score := float64(directMatches)*d.config.KeywordWeight +
		float64(requirementMatches)*d.config.RequirementWeight +
		float64(conceptMatches)*d.config.ConceptWeight

	return score >= d.config.PresenceThreshold
}

// extractKeywords pulls up to max lowercase alphabetic tokens of length >= 3
// from the clause name, dropping stop-words, in scan order.
func extractKeywords(name string, max int) []string {
	words := keywordPattern.FindAllString(strings.ToLower(name), -1)

	keywords := make([]string, 0, max)
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == max {
			break
		}
	}
	return keywords
}

func anyWordPresent(phrase, text string) bool {
	for _, word := range strings.Fields(phrase) {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
