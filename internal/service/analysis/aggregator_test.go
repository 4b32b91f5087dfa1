package analysis_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
	"github.com/clearcomply/contract-compliance-backend/internal/service/analysis"
)

func TestAggregatorScore(t *testing.T) {
	agg := analysis.NewAggregator(analysis.DefaultScoringConfig())

	tests := []struct {
		missing int
		want    float64
	}{
		{0, 1.0},
		{1, 0.8},
		{2, 0.68},
		{5, 0.5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("missing_%d", tt.missing), func(t *testing.T) {
			assert.InDelta(t, tt.want, agg.Score(tt.missing), 1e-9)
		})
	}
}

func TestAggregatorScoreMonotonicity(t *testing.T) {
	agg := analysis.NewAggregator(analysis.DefaultScoringConfig())

	prev := agg.Score(0)
	for missing := 1; missing <= 30; missing++ {
		score := agg.Score(missing)
		assert.LessOrEqual(t, score, prev, "score must not increase with more misses")
		assert.GreaterOrEqual(t, score, 0.1, "score must never fall below the floor")
		prev = score
	}
}

func TestAggregatorScoreFloor(t *testing.T) {
	cfg := analysis.DefaultScoringConfig()
	cfg.MissingPenalty = 1.0

	agg := analysis.NewAggregator(cfg)
	assert.InDelta(t, 0.1, agg.Score(100), 1e-9)
}

func TestAggregatorReport(t *testing.T) {
	agg := analysis.NewAggregator(analysis.DefaultScoringConfig())

	missing := []domain.MissingClause{
		{
			Clause: regulation.ClauseRequirement{
				Name:          "Truth in Lending Disclosures",
				RiskLevel:     regulation.RiskHigh,
				LegalCitation: "15 U.S.C. § 1601 et seq.",
			},
			SuggestedText: "generated text",
			LegalCitation: "15 U.S.C. § 1601 et seq.",
		},
	}

	report := agg.Report(regulation.TILA, missing, "a lease with monthly rent and no cost figures")

	assert.Equal(t, regulation.TILA, report.Regulation)
	assert.InDelta(t, 0.8, report.ComplianceScore, 1e-9)
	assert.Equal(t, regulation.RiskMedium, report.RiskAssessment, "deterministic path always assesses medium")

	assert.Contains(t, report.Issues, "Missing 1 high-risk compliance clauses")
	assert.Contains(t, report.Issues, "Total 1 TILA compliance gaps")
	assert.Contains(t, report.Issues, "Missing APR disclosure")
	assert.Contains(t, report.Issues, "Missing finance charge disclosure")

	assert.Contains(t, report.Recommendations, "Implement comprehensive TILA compliance section")
	assert.Contains(t, report.Recommendations, "Add 'Truth in Lending Disclosures' clause")

	assert.Equal(t, []string{"15 U.S.C. § 1601 et seq."}, report.LegalReferences)
}

func TestAggregatorContentChecks(t *testing.T) {
	agg := analysis.NewAggregator(analysis.DefaultScoringConfig())

	t.Run("GLBA flags absent privacy and opt-out", func(t *testing.T) {
		report := agg.Report(regulation.GLBA, nil, "plain supply agreement")
		assert.Contains(t, report.Issues, "Missing financial privacy provisions")
		assert.Contains(t, report.Issues, "Missing opt-out mechanisms for information sharing")
	})

	t.Run("GLBA satisfied text yields no lexical issues", func(t *testing.T) {
		report := agg.Report(regulation.GLBA, nil, "privacy and opt-out terms are covered")
		assert.Empty(t, report.Issues)
		assert.InDelta(t, 1.0, report.ComplianceScore, 1e-9)
	})

	t.Run("FCRA requires authorization when credit is present", func(t *testing.T) {
		report := agg.Report(regulation.FCRA, nil, "a credit check with adverse action notices")
		assert.Contains(t, report.Issues, "Missing credit check authorization")
		assert.NotContains(t, report.Issues, "Missing adverse action notice procedures")
	})
}

func TestAggregatorTruncation(t *testing.T) {
	agg := analysis.NewAggregator(analysis.DefaultScoringConfig())

	var missing []domain.MissingClause
	for i := 0; i < 7; i++ {
		missing = append(missing, domain.MissingClause{
			Clause: regulation.ClauseRequirement{
				Name:      fmt.Sprintf("Clause %d", i),
				RiskLevel: regulation.RiskHigh,
			},
		})
	}

	// TILA lexical checks add two more recommendations on top of the
	// comprehensive-section and per-clause ones, overflowing the cap.
	report := agg.Report(regulation.TILA, missing, "no disclosures at all")

	assert.LessOrEqual(t, len(report.Issues), 5)
	require.Len(t, report.Recommendations, 5)

	// Truncation preserves generation order: section first, then the top
	// three missing clauses.
	assert.Equal(t, "Implement comprehensive TILA compliance section", report.Recommendations[0])
	assert.Equal(t, "Add 'Clause 0' clause", report.Recommendations[1])
	assert.Equal(t, "Add 'Clause 1' clause", report.Recommendations[2])
	assert.Equal(t, "Add 'Clause 2' clause", report.Recommendations[3])
}

func TestAggregatorLegalReferenceDedup(t *testing.T) {
	agg := analysis.NewAggregator(analysis.DefaultScoringConfig())

	missing := []domain.MissingClause{
		{Clause: regulation.ClauseRequirement{Name: "a", LegalCitation: "15 U.S.C. § 6801-6809"}},
		{Clause: regulation.ClauseRequirement{Name: "b", LegalCitation: "16 CFR Part 314"}},
		{Clause: regulation.ClauseRequirement{Name: "c", LegalCitation: "15 U.S.C. § 6801-6809"}},
		{Clause: regulation.ClauseRequirement{Name: "d"}},
	}

	report := agg.Report(regulation.GLBA, missing, "privacy opt-out covered")
	assert.Equal(t, []string{"15 U.S.C. § 6801-6809", "16 CFR Part 314"}, report.LegalReferences)
}
