package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
)

// Context carries the inputs of one compliance analysis. It is created once
// per request and read-only for the lifetime of the analysis.
type Context struct {
	Jurisdiction string `json:"jurisdiction"`
	Industry     string `json:"industry"`
	ContractText string `json:"contract_text"`
}

// MissingClause pairs a required clause that was not found in the contract
// with the remediation text generated for it.
type MissingClause struct {
	Clause        regulation.ClauseRequirement `json:"clause"`
	SuggestedText string                       `json:"suggested_text"`
	LegalCitation string                       `json:"legal_citation,omitempty"`
}

// GapReport is the per-regulation outcome: a compliance score in [0,1], a
// risk tier, and the ordered issue, recommendation and missing-clause lists.
// Immutable once returned by the aggregator.
type GapReport struct {
	Regulation      string               `json:"regulation"`
	ComplianceScore float64              `json:"compliance_score"`
	RiskAssessment  regulation.RiskLevel `json:"risk_assessment"`
	Issues          []string             `json:"issues"`
	Recommendations []string             `json:"recommendations"`
	MissingClauses  []MissingClause      `json:"missing_clauses"`
	LegalReferences []string             `json:"legal_references"`
}

// Report is the top-level analysis result.
type Report struct {
	AnalysisID       uuid.UUID            `json:"analysis_id"`
	OverallScore     float64              `json:"overall_score"`
	OverallRisk      regulation.RiskLevel `json:"overall_risk"`
	Results          []GapReport          `json:"results"`
	Summary          string               `json:"summary"`
	ExecutiveSummary string               `json:"executive_summary"`
	AmendedContract  string               `json:"amended_contract"`
	AnalyzedAt       time.Time            `json:"analyzed_at"`
	ProcessingTime   time.Duration        `json:"processing_time"`
}

// NewReport assembles the top-level report from per-regulation gap reports,
// deriving the overall score and risk. An empty result set is a valid
// degenerate outcome: score 0.0, risk low.
func NewReport(results []GapReport) *Report {
	return &Report{
		AnalysisID:   uuid.New(),
		OverallScore: OverallScore(results),
		OverallRisk:  OverallRisk(results),
		Results:      results,
		AnalyzedAt:   time.Now().UTC(),
	}
}

// OverallScore is the arithmetic mean of per-regulation compliance scores,
// 0.0 when no regulations apply.
func OverallScore(results []GapReport) float64 {
	if len(results) == 0 {
		return 0.0
	}
	var sum float64
	for _, r := range results {
		sum += r.ComplianceScore
	}
	return sum / float64(len(results))
}

// OverallRisk derives the aggregate risk tier strictly from the per-regulation
// tiers: high if any regulation is high, medium if any is medium, low
// otherwise. No regulations means no evidence of risk.
func OverallRisk(results []GapReport) regulation.RiskLevel {
	risk := regulation.RiskLow
	for _, r := range results {
		if r.RiskAssessment == regulation.RiskHigh {
			return regulation.RiskHigh
		}
		if r.RiskAssessment == regulation.RiskMedium {
			risk = regulation.RiskMedium
		}
	}
	return risk
}

// HighRiskMissing counts missing clauses tagged high risk.
func (g *GapReport) HighRiskMissing() int {
	n := 0
	for _, mc := range g.MissingClauses {
		if mc.Clause.RiskLevel == regulation.RiskHigh {
			n++
		}
	}
	return n
}
