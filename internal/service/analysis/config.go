package analysis

import "time"

// DetectorConfig holds the clause-presence heuristic policy. The defaults are
// the calibrated production values; they are configuration, not algorithm.
type DetectorConfig struct {
	// Signal weights combined into the presence score.
	KeywordWeight     float64 `json:"keyword_weight"`
	RequirementWeight float64 `json:"requirement_weight"`
	ConceptWeight     float64 `json:"concept_weight"`

	// A clause counts as present when its combined score reaches this value.
	PresenceThreshold float64 `json:"presence_threshold"`

	// MaxKeywords bounds how many clause-name keywords are considered.
	MaxKeywords int `json:"max_keywords"`

	// MaxRequirementPhrases bounds how many requirement phrases are scanned.
	MaxRequirementPhrases int `json:"max_requirement_phrases"`
}

// DefaultDetectorConfig returns the production detection policy.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		KeywordWeight:         0.5,
		RequirementWeight:     0.3,
		ConceptWeight:         0.2,
		PresenceThreshold:     1.0,
		MaxKeywords:           5,
		MaxRequirementPhrases: 3,
	}
}

// ScoringConfig holds the gap-scoring and report-shaping policy.
type ScoringConfig struct {
	// BaselineClauses is the implicit count of contextual clauses added to
	// the denominator so one miss in a short catalog is not catastrophic.
	BaselineClauses int `json:"baseline_clauses"`

	// MissingPenalty scales the missing-clause ratio before subtraction.
	MissingPenalty float64 `json:"missing_penalty"`

	// ScoreFloor is the minimum per-regulation compliance score.
	ScoreFloor float64 `json:"score_floor"`

	// MaxIssues and MaxRecommendations truncate the report lists, preserving
	// generation order.
	MaxIssues          int `json:"max_issues"`
	MaxRecommendations int `json:"max_recommendations"`

	// TopClauseRecommendations is how many missing clauses get an individual
	// "add this clause" recommendation.
	TopClauseRecommendations int `json:"top_clause_recommendations"`
}

// DefaultScoringConfig returns the production scoring policy.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaselineClauses:          3,
		MissingPenalty:           0.8,
		ScoreFloor:               0.1,
		MaxIssues:                5,
		MaxRecommendations:       5,
		TopClauseRecommendations: 3,
	}
}

// GeneratorConfig holds the remediation-text policy.
type GeneratorConfig struct {
	// Timeout bounds each generative-service call.
	Timeout time.Duration `json:"timeout"`

	// MaxTokens is passed through to the generative service.
	MaxTokens int `json:"max_tokens"`

	// ContextExcerpt is how much of the contract is sent for context.
	ContextExcerpt int `json:"context_excerpt"`

	// MinLength is the shortest generated clause accepted before the
	// deterministic fallback takes over.
	MinLength int `json:"min_length"`
}

// DefaultGeneratorConfig returns the production generation policy.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Timeout:        30 * time.Second,
		MaxTokens:      1000,
		ContextExcerpt: 500,
		MinLength:      50,
	}
}

// ServiceConfig aggregates the analysis pipeline configuration.
type ServiceConfig struct {
	Detector  DetectorConfig  `json:"detector"`
	Scoring   ScoringConfig   `json:"scoring"`
	Generator GeneratorConfig `json:"generator"`

	// MaxConcurrency caps the per-regulation worker pool. Results are always
	// emitted in sorted regulation-id order regardless of this setting.
	MaxConcurrency int `json:"max_concurrency"`
}

// DefaultServiceConfig returns the default pipeline configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Detector:       DefaultDetectorConfig(),
		Scoring:        DefaultScoringConfig(),
		Generator:      DefaultGeneratorConfig(),
		MaxConcurrency: 8,
	}
}
