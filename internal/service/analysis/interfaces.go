package analysis

import (
	"context"

	"github.com/google/uuid"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
)

// TextCompleter is the generative text collaborator. All failures are treated
// uniformly by the pipeline and resolved through the deterministic fallback,
// never propagated as analysis failures.
type TextCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// ReportStore persists finished analyses. The core never reads back within a
// single analysis; history, search and stats belong to the storage layer.
type ReportStore interface {
	SaveAnalysis(ctx context.Context, report *analysis.Report, actx analysis.Context) error
}

// StartedEvent is emitted when an analysis begins.
type StartedEvent struct {
	AnalysisID   uuid.UUID `json:"analysis_id"`
	Jurisdiction string    `json:"jurisdiction"`
	Industry     string    `json:"industry"`
	Regulations  []string  `json:"regulations"`
}

// CompletedEvent is emitted when an analysis finishes.
type CompletedEvent struct {
	AnalysisID     uuid.UUID `json:"analysis_id"`
	OverallScore   float64   `json:"overall_score"`
	OverallRisk    string    `json:"overall_risk"`
	Regulations    int       `json:"regulations"`
	MissingClauses int       `json:"missing_clauses"`
	HighRiskCount  int       `json:"high_risk_count"`
}

// Notifier receives analysis lifecycle events. Delivery success or failure
// must never affect the analysis result.
type Notifier interface {
	AnalysisStarted(ctx context.Context, event StartedEvent) error
	AnalysisCompleted(ctx context.Context, event CompletedEvent) error
}
