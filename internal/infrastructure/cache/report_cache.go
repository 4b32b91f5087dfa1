// Package cache provides the Redis-backed report cache. Caching lives here,
// outside the core pipeline: the engine itself never caches generated text.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/config"
)

const reportKeyPrefix = "compliance:report:"

// ReportCache stores finished reports by analysis id with a TTL so report
// reads do not hit Postgres for recent analyses.
type ReportCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewClient builds and pings a Redis client from config.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// NewReportCache creates the cache over an existing client.
func NewReportCache(client *redis.Client, logger *zap.Logger, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, logger: logger, ttl: ttl}
}

// Put stores a report. Failures are logged, never fatal.
func (c *ReportCache) Put(ctx context.Context, report *analysis.Report) {
	payload, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("failed to encode report for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, reportKey(report.AnalysisID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache report",
			zap.String("analysis_id", report.AnalysisID.String()),
			zap.Error(err),
		)
	}
}

// Get returns the cached report, or nil on miss or any error.
func (c *ReportCache) Get(ctx context.Context, id uuid.UUID) *analysis.Report {
	payload, err := c.client.Get(ctx, reportKey(id)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		c.logger.Warn("report cache read failed",
			zap.String("analysis_id", id.String()),
			zap.Error(err),
		)
		return nil
	}

	var report analysis.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		c.logger.Warn("corrupt cached report, evicting",
			zap.String("analysis_id", id.String()),
			zap.Error(err),
		)
		c.client.Del(ctx, reportKey(id))
		return nil
	}
	return &report
}

func reportKey(id uuid.UUID) string {
	return reportKeyPrefix + id.String()
}
