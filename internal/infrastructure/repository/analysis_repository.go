package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/errors"
)

// AnalysisRepository persists finished analyses for history, search and
// stats. The core pipeline only ever writes; reads serve the transport layer.
type AnalysisRepository struct {
	db *pgxpool.Pool
}

// NewAnalysisRepository creates a repository over the given pool.
func NewAnalysisRepository(db *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// AnalysisSummary is the listing row for history and search results.
type AnalysisSummary struct {
	AnalysisID   uuid.UUID `json:"analysis_id"`
	Jurisdiction string    `json:"jurisdiction"`
	Industry     string    `json:"industry"`
	OverallScore float64   `json:"overall_score"`
	OverallRisk  string    `json:"overall_risk"`
	Regulations  []string  `json:"regulations"`
	CreatedAt    time.Time `json:"created_at"`
}

// Stats aggregates stored analyses.
type Stats struct {
	TotalAnalyses int64   `json:"total_analyses"`
	AverageScore  float64 `json:"average_score"`
	HighRiskCount int64   `json:"high_risk_count"`
}

// SaveAnalysis stores a finished report together with its inputs.
func (r *AnalysisRepository) SaveAnalysis(ctx context.Context, report *analysis.Report, actx analysis.Context) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}

	regulations := make([]string, 0, len(report.Results))
	for i := range report.Results {
		regulations = append(regulations, report.Results[i].Regulation)
	}

	query := `
		INSERT INTO analyses (
			id, jurisdiction, industry, overall_score, overall_risk,
			regulations, report, contract_text, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.Exec(ctx, query,
		report.AnalysisID,
		actx.Jurisdiction,
		actx.Industry,
		report.OverallScore,
		report.OverallRisk.String(),
		regulations,
		payload,
		actx.ContractText,
		report.AnalyzedAt,
	)
	if err != nil {
		return errors.Wrap(err, "inserting analysis")
	}
	return nil
}

// GetAnalysis loads a stored report by id.
func (r *AnalysisRepository) GetAnalysis(ctx context.Context, id uuid.UUID) (*analysis.Report, error) {
	var payload []byte
	query := `SELECT report FROM analyses WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "loading analysis")
	}

	var report analysis.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, errors.Wrap(err, "decoding stored report")
	}
	return &report, nil
}

// History lists recent analyses, newest first.
func (r *AnalysisRepository) History(ctx context.Context, limit, offset int) ([]AnalysisSummary, error) {
	query := `
		SELECT id, jurisdiction, industry, overall_score, overall_risk, regulations, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "listing analyses")
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// Search runs a full-text search over stored contract text.
func (r *AnalysisRepository) Search(ctx context.Context, terms string, limit int) ([]AnalysisSummary, error) {
	query := `
		SELECT id, jurisdiction, industry, overall_score, overall_risk, regulations, created_at
		FROM analyses
		WHERE to_tsvector('english', contract_text) @@ plainto_tsquery('english', $1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, terms, limit)
	if err != nil {
		return nil, errors.Wrap(err, "searching analyses")
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// GetStats aggregates stored analyses.
func (r *AnalysisRepository) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(overall_score), 0),
		       COUNT(*) FILTER (WHERE overall_risk = 'high')
		FROM analyses`

	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalAnalyses,
		&stats.AverageScore,
		&stats.HighRiskCount,
	)
	if err != nil {
		return nil, errors.Wrap(err, "aggregating analyses")
	}
	return &stats, nil
}

// DeleteOlderThan removes analyses past the retention window and returns the
// number removed.
func (r *AnalysisRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM analyses WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "pruning analyses")
	}
	return tag.RowsAffected(), nil
}

func scanSummaries(rows pgx.Rows) ([]AnalysisSummary, error) {
	var summaries []AnalysisSummary
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(
			&s.AnalysisID,
			&s.Jurisdiction,
			&s.Industry,
			&s.OverallScore,
			&s.OverallRisk,
			&s.Regulations,
			&s.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning analysis row")
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
