package analysis

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/errors"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
	"github.com/clearcomply/contract-compliance-backend/internal/metrics"
)

// AnalyzeRequest carries one analysis invocation. An explicit Regulations
// list bypasses the applicability resolver entirely.
type AnalyzeRequest struct {
	ContractText string
	Regulations  []string
	Jurisdiction string
	Industry     string
}

// Service orchestrates the compliance analysis pipeline: applicability
// resolution, clause gap detection, scoring and remediation generation, with
// persistence and notification as best-effort collaborators.
type Service struct {
	logger     *zap.Logger
	registry   *regulation.Registry
	resolver   *Resolver
	detector   *Detector
	aggregator *Aggregator
	generator  *Generator
	store      ReportStore
	notifier   Notifier
	metrics    *metrics.Metrics
	config     ServiceConfig
}

// NewService wires the analysis pipeline. store, notifier and m may be nil;
// the pipeline runs without them.
func NewService(
	logger *zap.Logger,
	registry *regulation.Registry,
	completer TextCompleter,
	store ReportStore,
	notifier Notifier,
	m *metrics.Metrics,
	config ServiceConfig,
) *Service {
	return &Service{
		logger:     logger,
		registry:   registry,
		resolver:   NewResolver(registry),
		detector:   NewDetector(config.Detector),
		aggregator: NewAggregator(config.Scoring),
		generator:  NewGenerator(logger.Named("generator"), completer, config.Generator),
		store:      store,
		notifier:   notifier,
		metrics:    m,
		config:     config,
	}
}

// Analyze runs one full compliance analysis. Per-regulation work is fanned
// out over a bounded worker pool; the result ordering always matches sorted
// regulation-id order regardless of execution interleaving.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*analysis.Report, error) {
	start := time.Now()

	if strings.TrimSpace(req.ContractText) == "" {
		return nil, errors.ErrEmptyContract
	}
	if req.Jurisdiction == "" {
		req.Jurisdiction = "US"
	}
	if req.Industry == "" {
		req.Industry = "general"
	}

	actx := analysis.Context{
		Jurisdiction: req.Jurisdiction,
		Industry:     req.Industry,
		ContractText: req.ContractText,
	}

	regulations, err := s.applicableRegulations(actx, req.Regulations)
	if err != nil {
		return nil, err
	}

	analysisID := uuid.New()

	s.logger.Info("starting contract analysis",
		zap.String("analysis_id", analysisID.String()),
		zap.String("jurisdiction", actx.Jurisdiction),
		zap.String("industry", actx.Industry),
		zap.Strings("regulations", regulations),
	)

	s.notifyStarted(ctx, StartedEvent{
		AnalysisID:   analysisID,
		Jurisdiction: actx.Jurisdiction,
		Industry:     actx.Industry,
		Regulations:  regulations,
	})

	results, err := s.analyzeRegulations(ctx, regulations, actx.ContractText)
	if err != nil {
		s.recordOutcome("error")
		return nil, err
	}

	report := &analysis.Report{
		AnalysisID:   analysisID,
		OverallScore: analysis.OverallScore(results),
		OverallRisk:  analysis.OverallRisk(results),
		Results:      results,
		AnalyzedAt:   start.UTC(),
	}
	report.Summary = executiveSummary(results, report.OverallScore, report.OverallRisk)
	report.ExecutiveSummary = detailedSummary(results)
	report.AmendedContract = amendedContract(actx.ContractText, results)
	report.ProcessingTime = time.Since(start)

	s.persist(ctx, report, actx)
	s.notifyCompleted(ctx, report)
	s.observe(report)

	s.logger.Info("contract analysis completed",
		zap.String("analysis_id", analysisID.String()),
		zap.Float64("overall_score", report.OverallScore),
		zap.String("overall_risk", report.OverallRisk.String()),
		zap.Int("regulations", len(results)),
		zap.Duration("processing_time", report.ProcessingTime),
	)

	return report, nil
}

// applicableRegulations validates an explicit regulation list or resolves one
// from the context. A requested id missing from the registry fails the whole
// analysis: it indicates caller or configuration error, not contract content.
func (s *Service) applicableRegulations(actx analysis.Context, explicit []string) ([]string, error) {
	if len(explicit) == 0 {
		return s.resolver.Resolve(actx), nil
	}

	seen := make(map[string]struct{}, len(explicit))
	ids := make([]string, 0, len(explicit))
	for _, id := range explicit {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, err := s.registry.Get(id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// analyzeRegulations fans per-regulation work out over a bounded pool.
// results[i] corresponds to regulations[i], so the output order is stable.
func (s *Service) analyzeRegulations(ctx context.Context, regulations []string, contractText string) ([]analysis.GapReport, error) {
	results := make([]analysis.GapReport, len(regulations))

	workers := s.config.MaxConcurrency
	if workers <= 0 || workers > len(regulations) {
		workers = len(regulations)
	}

	sem := make(chan struct{}, workers)
	done := make(chan int, len(regulations))

	for i, id := range regulations {
		go func(i int, id string) {
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = s.analyzeRegulation(ctx, id, contractText)
			done <- i
		}(i, id)
	}

	for range regulations {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "analysis abandoned")
		}
	}

	return results, nil
}

func (s *Service) analyzeRegulation(ctx context.Context, regulationID, contractText string) analysis.GapReport {
	def, err := s.registry.Get(regulationID)
	if err != nil {
		// Ids are validated before the fan-out; an unknown id here means an
		// empty report, not a crash.
		s.logger.Error("regulation vanished mid-analysis", zap.String("regulation", regulationID))
		return analysis.GapReport{Regulation: regulationID, RiskAssessment: regulation.RiskMedium}
	}

	missingReqs := s.detector.MissingClauses(def, contractText)

	missing := make([]analysis.MissingClause, 0, len(missingReqs))
	for _, clause := range missingReqs {
		text, degraded := s.generator.Generate(ctx, regulationID, clause, contractText)
		if degraded && s.metrics != nil {
			s.metrics.GenerationFallback.Inc()
		}
		missing = append(missing, analysis.MissingClause{
			Clause:        clause,
			SuggestedText: text,
			LegalCitation: clause.LegalCitation,
		})
	}

	return s.aggregator.Report(regulationID, missing, contractText)
}

func (s *Service) persist(ctx context.Context, report *analysis.Report, actx analysis.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveAnalysis(ctx, report, actx); err != nil {
		s.logger.Warn("failed to persist analysis",
			zap.String("analysis_id", report.AnalysisID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) notifyStarted(ctx context.Context, event StartedEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.AnalysisStarted(ctx, event); err != nil {
		s.logger.Warn("start notification failed", zap.Error(err))
	}
}

func (s *Service) notifyCompleted(ctx context.Context, report *analysis.Report) {
	if s.notifier == nil {
		return
	}

	missingTotal := 0
	highRisk := 0
	for i := range report.Results {
		missingTotal += len(report.Results[i].MissingClauses)
		if report.Results[i].RiskAssessment == regulation.RiskHigh {
			highRisk++
		}
	}

	event := CompletedEvent{
		AnalysisID:     report.AnalysisID,
		OverallScore:   report.OverallScore,
		OverallRisk:    report.OverallRisk.String(),
		Regulations:    len(report.Results),
		MissingClauses: missingTotal,
		HighRiskCount:  highRisk,
	}
	if err := s.notifier.AnalysisCompleted(ctx, event); err != nil {
		s.logger.Warn("completion notification failed", zap.Error(err))
	}
}

func (s *Service) observe(report *analysis.Report) {
	if s.metrics == nil {
		return
	}

	missingTotal := 0
	for i := range report.Results {
		missingTotal += len(report.Results[i].MissingClauses)
	}

	s.metrics.AnalysisDuration.Observe(report.ProcessingTime.Seconds())
	s.metrics.MissingClauses.Observe(float64(missingTotal))
	s.metrics.RegulationsPerRun.Observe(float64(len(report.Results)))
	s.recordOutcome("success")
}

func (s *Service) recordOutcome(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.AnalysesTotal.WithLabelValues(outcome).Inc()
}
