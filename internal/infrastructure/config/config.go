package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`

	Server       ServerConfig       `koanf:"server"`
	Database     DatabaseConfig     `koanf:"database"`
	Redis        RedisConfig        `koanf:"redis"`
	OpenRouter   OpenRouterConfig   `koanf:"openrouter"`
	Notification NotificationConfig `koanf:"notification"`
	Analysis     AnalysisConfig     `koanf:"analysis"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxConns        int32         `koanf:"max_conns"`
	MinConns        int32         `koanf:"min_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type RedisConfig struct {
	Address  string        `koanf:"address"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
}

type OpenRouterConfig struct {
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	BaseURL     string        `koanf:"base_url"`
	Timeout     time.Duration `koanf:"timeout"`
	Temperature float64       `koanf:"temperature"`
	TopP        float64       `koanf:"top_p"`
}

type NotificationConfig struct {
	WebhookURL string        `koanf:"webhook_url"`
	Timeout    time.Duration `koanf:"timeout"`
}

// AnalysisConfig exposes the analysis policy constants. Defaults match the
// calibrated production heuristic; override only with care, these are policy
// knobs, not tuning suggestions.
type AnalysisConfig struct {
	MaxConcurrency       int           `koanf:"max_concurrency"`
	KeywordWeight        float64       `koanf:"keyword_weight"`
	RequirementWeight    float64       `koanf:"requirement_weight"`
	ConceptWeight        float64       `koanf:"concept_weight"`
	PresenceThreshold    float64       `koanf:"presence_threshold"`
	BaselineClauses      int           `koanf:"baseline_clauses"`
	MissingPenalty       float64       `koanf:"missing_penalty"`
	ScoreFloor           float64       `koanf:"score_floor"`
	MaxIssues            int           `koanf:"max_issues"`
	MaxRecommendations   int           `koanf:"max_recommendations"`
	GenerationTimeout    time.Duration `koanf:"generation_timeout"`
	GenerationMinLength  int           `koanf:"generation_min_length"`
	GenerationMaxTokens  int           `koanf:"generation_max_tokens"`
	ContextExcerptLength int           `koanf:"context_excerpt_length"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := &Config{
		Version:     "dev",
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 10,
				Burst:             20,
			},
		},
		Database: DatabaseConfig{
			MaxConns:        25,
			MinConns:        5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			DB:  0,
			TTL: 24 * time.Hour,
		},
		OpenRouter: OpenRouterConfig{
			Model:       "google/gemini-pro",
			BaseURL:     "https://openrouter.ai/api/v1",
			Timeout:     30 * time.Second,
			Temperature: 0.3,
			TopP:        0.9,
		},
		Notification: NotificationConfig{
			Timeout: 10 * time.Second,
		},
		Analysis: AnalysisConfig{
			MaxConcurrency:       8,
			KeywordWeight:        0.5,
			RequirementWeight:    0.3,
			ConceptWeight:        0.2,
			PresenceThreshold:    1.0,
			BaselineClauses:      3,
			MissingPenalty:       0.8,
			ScoreFloor:           0.1,
			MaxIssues:            5,
			MaxRecommendations:   5,
			GenerationTimeout:    30 * time.Second,
			GenerationMinLength:  50,
			GenerationMaxTokens:  1000,
			ContextExcerptLength: 500,
		},
	}

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// Config file is optional.
	if path == "" {
		path = "configs/config.yaml"
	}
	_ = k.Load(file.Provider(path), yaml.Parser())

	// Environment variables override everything. Double underscore nests:
	// CCC_SERVER__PORT, CCC_OPENROUTER__API_KEY.
	if err := k.Load(env.Provider("CCC_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "CCC_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
