package analysis

import (
	"fmt"
	"strings"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
)

// executiveSummary renders the stakeholder-facing summary from the finished
// results. Fully deterministic.
func executiveSummary(results []analysis.GapReport, overallScore float64, overallRisk regulation.RiskLevel) string {
	var highRisk, mediumRisk []analysis.GapReport
	for _, r := range results {
		switch r.RiskAssessment {
		case regulation.RiskHigh:
			highRisk = append(highRisk, r)
		case regulation.RiskMedium:
			mediumRisk = append(mediumRisk, r)
		}
	}

	var b strings.Builder
	b.WriteString("COMMERCIAL COMPLIANCE ANALYSIS EXECUTIVE SUMMARY\n\n")
	fmt.Fprintf(&b, "Overall Compliance Score: %.1f%%\n", overallScore*100)
	fmt.Fprintf(&b, "Risk Level: %s\n\n", strings.ToUpper(overallRisk.String()))
	fmt.Fprintf(&b, "REGULATIONS ANALYZED: %d\n", len(results))
	fmt.Fprintf(&b, "- High Risk: %d regulations\n", len(highRisk))
	fmt.Fprintf(&b, "- Medium Risk: %d regulations\n", len(mediumRisk))
	fmt.Fprintf(&b, "- Low Risk: %d regulations\n\n", len(results)-len(highRisk)-len(mediumRisk))

	b.WriteString("CRITICAL FINDINGS:\n")
	for _, r := range highRisk {
		fmt.Fprintf(&b, "- %s: %d missing clauses\n", r.Regulation, len(r.MissingClauses))
	}

	b.WriteString(`
RECOMMENDED ACTIONS:
1. Address high-risk compliance gaps immediately
2. Implement suggested clause additions
3. Conduct legal review of compliance findings
4. Establish ongoing compliance monitoring

This analysis identifies key regulatory compliance requirements for your contract.
`)
	return b.String()
}

// detailedSummary renders the per-regulation technical report.
func detailedSummary(results []analysis.GapReport) string {
	divider := strings.Repeat("=", 50)

	var b strings.Builder
	b.WriteString("DETAILED COMPLIANCE ANALYSIS REPORT\n")
	b.WriteString(divider + "\n\n")

	for _, r := range results {
		fmt.Fprintf(&b, "REGULATION: %s\n", r.Regulation)
		fmt.Fprintf(&b, "Compliance Score: %.1f%%\n", r.ComplianceScore*100)
		fmt.Fprintf(&b, "Risk Assessment: %s\n\n", strings.ToUpper(r.RiskAssessment.String()))

		b.WriteString("ISSUES IDENTIFIED:\n")
		for _, issue := range r.Issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}

		b.WriteString("\nRECOMMENDATIONS:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}

		b.WriteString("\n" + divider + "\n\n")
	}

	return b.String()
}

// amendedContract appends the suggested clauses to the original text, grouped
// by regulation with risk labels and citations.
func amendedContract(originalText string, results []analysis.GapReport) string {
	wide := strings.Repeat("=", 80)
	section := strings.Repeat("=", 50)

	var b strings.Builder
	b.WriteString(originalText)
	b.WriteString("\n\n" + wide + "\n")
	b.WriteString("COMPLIANCE ENHANCEMENTS\n")
	b.WriteString(wide + "\n\n")

	for _, r := range results {
		if len(r.MissingClauses) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n%s COMPLIANCE ADDITIONS\n", r.Regulation)
		b.WriteString(section + "\n\n")

		for _, mc := range r.MissingClauses {
			fmt.Fprintf(&b, "%s RISK: %s\n", strings.ToUpper(mc.Clause.RiskLevel.String()), mc.Clause.Name)
			fmt.Fprintf(&b, "Description: %s\n", mc.Clause.Description)
			if mc.LegalCitation != "" {
				fmt.Fprintf(&b, "Legal Reference: %s\n", mc.LegalCitation)
			}
			fmt.Fprintf(&b, "Requirements: %s\n\n", strings.Join(mc.Clause.Requirements, ", "))
			fmt.Fprintf(&b, "SUGGESTED CLAUSE:\n%s\n\n", mc.SuggestedText)
			b.WriteString(strings.Repeat("-", 60) + "\n\n")
		}
	}

	return b.String()
}
