package analysis

import (
	"fmt"
	"strings"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
)

// Aggregator turns detector output into a per-regulation gap report: a
// compliance score, a risk tier and ordered issue and recommendation lists.
type Aggregator struct {
	config ScoringConfig
}

// NewAggregator creates an aggregator with the given scoring policy.
func NewAggregator(config ScoringConfig) *Aggregator {
	return &Aggregator{config: config}
}

// Report builds the gap report for one regulation. missing preserves
// detection order; contractText is used for regulation-specific lexical
// checks. The deterministic path always assesses risk as medium.
func (a *Aggregator) Report(regulationID string, missing []analysis.MissingClause, contractText string) analysis.GapReport {
	report := analysis.GapReport{
		Regulation:      regulationID,
		ComplianceScore: a.Score(len(missing)),
		RiskAssessment:  regulation.RiskMedium,
		MissingClauses:  missing,
	}

	if len(missing) > 0 {
		highRisk := report.HighRiskMissing()
		if highRisk > 0 {
			report.Issues = append(report.Issues,
				fmt.Sprintf("Missing %d high-risk compliance clauses", highRisk))
		}
		report.Issues = append(report.Issues,
			fmt.Sprintf("Total %d %s compliance gaps", len(missing), regulationID))

		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Implement comprehensive %s compliance section", regulationID))
		top := a.config.TopClauseRecommendations
		if top > len(missing) {
			top = len(missing)
		}
		for _, mc := range missing[:top] {
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("Add '%s' clause", mc.Clause.Name))
		}
	}

	issues, recommendations := contentChecks(regulationID, strings.ToLower(contractText))
	report.Issues = append(report.Issues, issues...)
	report.Recommendations = append(report.Recommendations, recommendations...)

	report.Issues = truncate(report.Issues, a.config.MaxIssues)
	report.Recommendations = truncate(report.Recommendations, a.config.MaxRecommendations)
	report.LegalReferences = legalReferences(missing)

	return report
}

// Score computes the compliance score for a regulation with the given number
// of missing clauses. The baseline constant smooths the denominator so a
// regulation with few enumerated clauses is not catastrophically scored down
// from one miss; the floor guarantees no regulation reads as zero compliance
// from missing-clause count alone.
func (a *Aggregator) Score(missingCount int) float64 {
	total := missingCount + a.config.BaselineClauses
	score := 1.0 - float64(missingCount)/float64(total)*a.config.MissingPenalty
	if score < a.config.ScoreFloor {
		return a.config.ScoreFloor
	}
	return score
}

// contentChecks runs regulation-specific lexical checks against the contract
// text, flagging absent statutory language as distinct issues.
func contentChecks(regulationID, text string) (issues, recommendations []string) {
	switch regulationID {
	case regulation.GLBA:
		if !strings.Contains(text, "privacy") && !strings.Contains(text, "confidential") {
			issues = append(issues, "Missing financial privacy provisions")
			recommendations = append(recommendations, "Add GLBA-compliant privacy notice clause")
		}
		if !strings.Contains(text, "opt-out") && !strings.Contains(text, "opt out") {
			issues = append(issues, "Missing opt-out mechanisms for information sharing")
			recommendations = append(recommendations, "Include GLBA opt-out provisions")
		}

	case regulation.FCRA:
		if strings.Contains(text, "credit") && !strings.Contains(text, "authorization") {
			issues = append(issues, "Missing credit check authorization")
			recommendations = append(recommendations, "Add FCRA-compliant authorization clause")
		}
		if !strings.Contains(text, "adverse action") {
			issues = append(issues, "Missing adverse action notice procedures")
			recommendations = append(recommendations, "Include FCRA adverse action requirements")
		}

	case regulation.TILA:
		if !strings.Contains(text, "apr") && !strings.Contains(text, "annual percentage rate") {
			issues = append(issues, "Missing APR disclosure")
			recommendations = append(recommendations, "Add TILA-required APR disclosure")
		}
		if !strings.Contains(text, "finance charge") {
			issues = append(issues, "Missing finance charge disclosure")
			recommendations = append(recommendations, "Include TILA finance charge calculations")
		}
	}

	return issues, recommendations
}

func legalReferences(missing []analysis.MissingClause) []string {
	var refs []string
	seen := make(map[string]struct{})
	for _, mc := range missing {
		citation := mc.Clause.LegalCitation
		if citation == "" {
			continue
		}
		if _, dup := seen[citation]; dup {
			continue
		}
		seen[citation] = struct{}{}
		refs = append(refs, citation)
	}
	return refs
}

func truncate(list []string, max int) []string {
	if len(list) > max {
		return list[:max]
	}
	return list
}
