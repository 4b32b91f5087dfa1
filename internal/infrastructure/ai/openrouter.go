// Package ai implements the generative text collaborator over the OpenRouter
// chat completions API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/errors"
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/config"
)

// OpenRouterClient calls the OpenRouter chat completions endpoint. It
// implements the analysis service's TextCompleter contract; callers treat
// every failure uniformly and fall back deterministically.
type OpenRouterClient struct {
	logger     *zap.Logger
	httpClient *http.Client
	config     config.OpenRouterConfig
}

// NewOpenRouterClient creates the client. Returns nil when no API key is
// configured so the pipeline degrades to the deterministic path.
func NewOpenRouterClient(logger *zap.Logger, cfg config.OpenRouterConfig) *OpenRouterClient {
	if cfg.APIKey == "" {
		logger.Warn("openrouter api key not configured, generative remediation disabled")
		return nil
	}
	return &OpenRouterClient{
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion request and returns the trimmed model
// output.
func (c *OpenRouterClient) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: c.config.Temperature,
		TopP:        c.config.TopP,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding completion request")
	}

	url := strings.TrimSuffix(c.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building completion request")
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.NewExternalError("openrouter", "request failed").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn("openrouter returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", payload),
		)
		return "", errors.NewExternalError("openrouter",
			fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.NewExternalError("openrouter", "malformed response").WithCause(err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.NewExternalError("openrouter", "empty choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
