package analysis_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
)

func TestOverallScore(t *testing.T) {
	tests := []struct {
		name    string
		results []analysis.GapReport
		want    float64
	}{
		{
			name:    "no regulations yields zero",
			results: nil,
			want:    0.0,
		},
		{
			name: "single regulation",
			results: []analysis.GapReport{
				{ComplianceScore: 0.8},
			},
			want: 0.8,
		},
		{
			name: "mean of several",
			results: []analysis.GapReport{
				{ComplianceScore: 1.0},
				{ComplianceScore: 0.5},
				{ComplianceScore: 0.3},
			},
			want: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, analysis.OverallScore(tt.results), 1e-9)
		})
	}
}

func TestOverallRisk(t *testing.T) {
	tests := []struct {
		name    string
		results []analysis.GapReport
		want    regulation.RiskLevel
	}{
		{
			name:    "empty is low",
			results: nil,
			want:    regulation.RiskLow,
		},
		{
			name: "any high wins",
			results: []analysis.GapReport{
				{RiskAssessment: regulation.RiskLow},
				{RiskAssessment: regulation.RiskHigh},
				{RiskAssessment: regulation.RiskMedium},
			},
			want: regulation.RiskHigh,
		},
		{
			name: "medium beats low",
			results: []analysis.GapReport{
				{RiskAssessment: regulation.RiskLow},
				{RiskAssessment: regulation.RiskMedium},
			},
			want: regulation.RiskMedium,
		},
		{
			name: "all low stays low",
			results: []analysis.GapReport{
				{RiskAssessment: regulation.RiskLow},
				{RiskAssessment: regulation.RiskLow},
			},
			want: regulation.RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.OverallRisk(tt.results))
		})
	}
}

func TestNewReport(t *testing.T) {
	results := []analysis.GapReport{
		{Regulation: "GLBA", ComplianceScore: 0.6, RiskAssessment: regulation.RiskMedium},
		{Regulation: "TILA", ComplianceScore: 0.8, RiskAssessment: regulation.RiskMedium},
	}

	report := analysis.NewReport(results)
	require.NotNil(t, report)
	assert.NotEqual(t, uuid.Nil, report.AnalysisID)
	assert.InDelta(t, 0.7, report.OverallScore, 1e-9)
	assert.Equal(t, regulation.RiskMedium, report.OverallRisk)
	assert.NotZero(t, report.AnalyzedAt)

	empty := analysis.NewReport(nil)
	assert.Zero(t, empty.OverallScore)
	assert.Equal(t, regulation.RiskLow, empty.OverallRisk)
}

func TestHighRiskMissing(t *testing.T) {
	g := analysis.GapReport{
		MissingClauses: []analysis.MissingClause{
			{Clause: regulation.ClauseRequirement{Name: "a", RiskLevel: regulation.RiskHigh}},
			{Clause: regulation.ClauseRequirement{Name: "b", RiskLevel: regulation.RiskMedium}},
			{Clause: regulation.ClauseRequirement{Name: "c", RiskLevel: regulation.RiskHigh}},
		},
	}
	assert.Equal(t, 2, g.HighRiskMissing())
}
