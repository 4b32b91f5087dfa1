// Package notification delivers analysis lifecycle events to an outbound
// webhook. Delivery failures never affect the analysis result.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/config"
	"github.com/clearcomply/contract-compliance-backend/internal/service/analysis"
)

// WebhookNotifier posts lifecycle events as JSON to a configured webhook.
type WebhookNotifier struct {
	logger     *zap.Logger
	httpClient *http.Client
	url        string
}

// NewWebhookNotifier creates the notifier. Returns nil when no webhook is
// configured; the pipeline treats a nil notifier as "notifications off".
func NewWebhookNotifier(logger *zap.Logger, cfg config.NotificationConfig) *WebhookNotifier {
	if cfg.WebhookURL == "" {
		return nil
	}
	return &WebhookNotifier{
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.WebhookURL,
	}
}

type envelope struct {
	Event     string      `json:"event"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AnalysisStarted posts the started event.
func (n *WebhookNotifier) AnalysisStarted(ctx context.Context, event analysis.StartedEvent) error {
	return n.post(ctx, "analysis.started", event)
}

// AnalysisCompleted posts the completed event.
func (n *WebhookNotifier) AnalysisCompleted(ctx context.Context, event analysis.CompletedEvent) error {
	return n.post(ctx, "analysis.completed", event)
}

func (n *WebhookNotifier) post(ctx context.Context, eventName string, payload interface{}) error {
	body, err := json.Marshal(envelope{
		Event:     eventName,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", eventName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building %s request: %w", eventName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delivering %s event: %w", eventName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook rejected %s event with status %d", eventName, resp.StatusCode)
	}

	n.logger.Debug("lifecycle event delivered", zap.String("event", eventName))
	return nil
}
