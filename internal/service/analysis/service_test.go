package analysis_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
	apperrors "github.com/clearcomply/contract-compliance-backend/internal/domain/errors"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
	"github.com/clearcomply/contract-compliance-backend/internal/service/analysis"
	"github.com/clearcomply/contract-compliance-backend/internal/testutil/fixtures"
)

type recordingStore struct {
	mu      sync.Mutex
	reports []*domain.Report
	ctxs    []domain.Context
	err     error
}

func (s *recordingStore) SaveAnalysis(ctx context.Context, report *domain.Report, actx domain.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	s.ctxs = append(s.ctxs, actx)
	return s.err
}

type recordingNotifier struct {
	mu        sync.Mutex
	started   []analysis.StartedEvent
	completed []analysis.CompletedEvent
	err       error
}

func (n *recordingNotifier) AnalysisStarted(ctx context.Context, event analysis.StartedEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.started = append(n.started, event)
	return n.err
}

func (n *recordingNotifier) AnalysisCompleted(ctx context.Context, event analysis.CompletedEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, event)
	return n.err
}

func newTestService(t *testing.T, store analysis.ReportStore, notifier analysis.Notifier) *analysis.Service {
	t.Helper()
	return analysis.NewService(
		zap.NewNop(),
		regulation.NewRegistry(),
		nil,
		store,
		notifier,
		nil,
		analysis.DefaultServiceConfig(),
	)
}

func TestAnalyzeRejectsEmptyContract(t *testing.T) {
	svc := newTestService(t, nil, nil)

	for _, text := range []string{"", "   \n\t  "} {
		_, err := svc.Analyze(context.Background(), analysis.AnalyzeRequest{ContractText: text})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	}
}

func TestAnalyzeUnknownExplicitRegulation(t *testing.T) {
	svc := newTestService(t, nil, nil)

	_, err := svc.Analyze(context.Background(), analysis.AnalyzeRequest{
		ContractText: fixtures.LendingContract,
		Regulations:  []string{regulation.GLBA, "HIPAA"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestAnalyzeExplicitRegulationsSortedAndDeduped(t *testing.T) {
	svc := newTestService(t, nil, nil)

	report, err := svc.Analyze(context.Background(), analysis.AnalyzeRequest{
		ContractText: fixtures.LendingContract,
		Regulations:  []string{regulation.TILA, regulation.GLBA, regulation.FCRA, regulation.GLBA},
	})
	require.NoError(t, err)

	got := make([]string, len(report.Results))
	for i, r := range report.Results {
		got[i] = r.Regulation
	}
	assert.Equal(t, []string{regulation.FCRA, regulation.GLBA, regulation.TILA}, got)
}

func TestAnalyzeOrderingUnderConcurrency(t *testing.T) {
	// The fan-out must not let scheduling order leak into the result order.
	svc := newTestService(t, nil, nil)

	for i := 0; i < 10; i++ {
		report, err := svc.Analyze(context.Background(), analysis.AnalyzeRequest{
			ContractText: fixtures.LendingContract,
			Jurisdiction: "US",
			Industry:     "lending",
		})
		require.NoError(t, err)

		got := make([]string, len(report.Results))
		for j, r := range report.Results {
			got[j] = r.Regulation
		}
		assert.Equal(t, []string{regulation.CCPACPRA, regulation.EFTA, regulation.FCRA, regulation.GLBA, regulation.TILA}, got)
	}
}

func TestAnalyzeEmptyApplicableSet(t *testing.T) {
	svc := newTestService(t, nil, nil)

	report, err := svc.Analyze(context.Background(), analysis.AnalyzeRequest{
		ContractText: fixtures.NeutralContract,
		Jurisdiction: "global",
		Industry:     "auto_finance",
	})
	require.NoError(t, err)

	assert.Empty(t, report.Results)
	assert.Equal(t, 0.0, report.OverallScore)
	assert.Equal(t, regulation.RiskLow, report.OverallRisk)
	assert.NotEmpty(t, report.Summary)
}

func TestAnalyzeReportShape(t *testing.T) {
	store := &recordingStore{}
	notifier := &recordingNotifier{}
	svc := newTestService(t, store, notifier)

	report, err := svc.Analyze(context.Background(), analysis.AnalyzeRequest{
		ContractText: fixtures.LendingContract,
		Jurisdiction: "US",
		Industry:     "lending",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", report.AnalysisID.String())
	assert.False(t, report.AnalyzedAt.IsZero())
	assert.Greater(t, report.ProcessingTime.Nanoseconds(), int64(0))
	assert.Equal(t, regulation.RiskMedium, report.OverallRisk)
	assert.Greater(t, report.OverallScore, 0.0)
	assert.LessOrEqual(t, report.OverallScore, 1.0)

	var tila *domain.GapReport
	for i := range report.Results {
		if report.Results[i].Regulation == regulation.TILA {
			tila = &report.Results[i]
		}
	}
	require.NotNil(t, tila)
	assert.Contains(t, tila.Issues, "Missing APR disclosure")
	require.NotEmpty(t, tila.MissingClauses)
	for _, mc := range tila.MissingClauses {
		assert.NotEmpty(t, mc.SuggestedText, "every missing clause carries remediation text")
	}

	assert.Contains(t, report.Summary, "Overall Compliance Score")
	assert.NotEmpty(t, report.ExecutiveSummary)
	assert.Contains(t, report.AmendedContract, fixtures.LendingContract)

	// Best-effort collaborators were both invoked.
	require.Len(t, store.reports, 1)
	assert.Equal(t, report.AnalysisID, store.reports[0].AnalysisID)
	assert.Equal(t, "lending", store.ctxs[0].Industry)

	require.Len(t, notifier.started, 1)
	assert.Equal(t, report.AnalysisID, notifier.started[0].AnalysisID)
	assert.Equal(t, []string{regulation.CCPACPRA, regulation.EFTA, regulation.FCRA, regulation.GLBA, regulation.TILA}, notifier.started[0].Regulations)

	require.Len(t, notifier.completed, 1)
	assert.Equal(t, len(report.Results), notifier.completed[0].Regulations)
	assert.InDelta(t, report.OverallScore, notifier.completed[0].OverallScore, 1e-9)
}

func TestAnalyzeSurvivesFailingCollaborators(t *testing.T) {
	store := &recordingStore{err: errors.New("database down")}
	notifier := &recordingNotifier{err: errors.New("webhook down")}
	svc := newTestService(t, store, notifier)

	report, err := svc.Analyze(context.Background(), analysis.AnalyzeRequest{
		ContractText: fixtures.PrivacyContract,
		Jurisdiction: "US_CA",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, report.Results)
}

type blockingCompleter struct {
	called  chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingCompleter) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	b.once.Do(func() { close(b.called) })
	<-b.release
	return "", errors.New("aborted")
}

func TestAnalyzeCancelledContext(t *testing.T) {
	completer := &blockingCompleter{
		called:  make(chan struct{}),
		release: make(chan struct{}),
	}
	defer close(completer.release)

	svc := analysis.NewService(
		zap.NewNop(),
		regulation.NewRegistry(),
		completer,
		nil,
		nil,
		nil,
		analysis.DefaultServiceConfig(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-completer.called
		cancel()
	}()

	_, err := svc.Analyze(ctx, analysis.AnalyzeRequest{
		ContractText: fixtures.LendingContract,
		Jurisdiction: "US",
		Industry:     "lending",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "analysis abandoned")
}
