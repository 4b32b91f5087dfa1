package analysis_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
	"github.com/clearcomply/contract-compliance-backend/internal/service/analysis"
)

type stubCompleter struct {
	response string
	err      error
	calls    int
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	s.calls++
	return s.response, s.err
}

func privacyClause() regulation.ClauseRequirement {
	return regulation.ClauseRequirement{
		Name:          "Financial Privacy Notice",
		Requirements:  []string{"Privacy notice delivery", "Opt-out mechanisms", "Information sharing policies"},
		RiskLevel:     regulation.RiskHigh,
		LegalCitation: "15 U.S.C. § 6801-6809",
	}
}

func TestGeneratorUsesCompleterResponse(t *testing.T) {
	completer := &stubCompleter{
		response: strings.Repeat("The Receiving Party shall maintain financial privacy notices. ", 3),
	}
	gen := analysis.NewGenerator(zap.NewNop(), completer, analysis.DefaultGeneratorConfig())

	text, degraded := gen.Generate(context.Background(), regulation.GLBA, privacyClause(), "contract body")

	assert.False(t, degraded)
	assert.Equal(t, strings.TrimSpace(completer.response), text)
	assert.Equal(t, 1, completer.calls)
}

func TestGeneratorFallsBack(t *testing.T) {
	tests := []struct {
		name      string
		completer *stubCompleter
	}{
		{"completer error", &stubCompleter{err: errors.New("upstream unavailable")}},
		{"short response", &stubCompleter{response: "Comply."}},
		{"degraded sentinel", &stubCompleter{
			response: "AI analysis completed; the contract should include a privacy clause of some form here.",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := analysis.NewGenerator(zap.NewNop(), tt.completer, analysis.DefaultGeneratorConfig())

			text, degraded := gen.Generate(context.Background(), regulation.GLBA, privacyClause(), "contract body")

			assert.True(t, degraded)
			assert.Equal(t, 1, tt.completer.calls)
			assertFallbackShape(t, text)
		})
	}
}

func TestGeneratorNilCompleter(t *testing.T) {
	gen := analysis.NewGenerator(zap.NewNop(), nil, analysis.DefaultGeneratorConfig())

	text, degraded := gen.Generate(context.Background(), regulation.GLBA, privacyClause(), "contract body")

	assert.True(t, degraded)
	assertFallbackShape(t, text)
}

func TestGeneratorFallbackIsDeterministic(t *testing.T) {
	gen := analysis.NewGenerator(zap.NewNop(), nil, analysis.DefaultGeneratorConfig())

	first := gen.Fallback(regulation.GLBA, privacyClause())
	second := gen.Fallback(regulation.GLBA, privacyClause())
	assert.Equal(t, first, second)
}

func assertFallbackShape(t *testing.T, text string) {
	t.Helper()

	assert.True(t, strings.HasPrefix(text, "FINANCIAL PRIVACY NOTICE"), "fallback opens with the uppercased clause name")
	assert.Contains(t, text, "under GLBA regarding financial privacy notice")
	for _, requirement := range privacyClause().Requirements {
		assert.Contains(t, text, requirement, "every requirement phrase appears verbatim")
	}
	assert.Contains(t, text, "documented and made available for audit")
}
