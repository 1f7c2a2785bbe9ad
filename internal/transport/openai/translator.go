// Package openai implements the delegated natural-language translator using
// an OpenAI-compatible chat completion API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/strindex/internal/domain"
	"github.com/kailas-cloud/strindex/internal/metrics"
)

// systemInstruction is the fixed payload sent with every translation request.
// It carries the structural schema of the closed filter set.
const systemInstruction = `You translate natural-language descriptions of string properties into a JSON filter object.
Respond with a single JSON object and nothing else. Allowed keys:
  "is_palindrome": boolean
  "min_length": non-negative integer
  "max_length": non-negative integer
  "word_count": positive integer
  "contains_character": single-character string
Omit every key the request does not clearly ask for. If nothing matches, respond with {}.`

// Translator delegates free-text interpretation to an OpenAI-compatible API.
type Translator struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the translation provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewTranslator creates an OpenAI-compatible translation provider.
func NewTranslator(cfg *Config) *Translator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Translator{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Translate sends the query text plus the fixed instruction payload and
// parses the returned message strictly as JSON. A response that is not valid
// JSON, or no usable content at all, is a hard failure; the translator never
// substitutes a default filter map.
func (t *Translator) Translate(ctx context.Context, text string) (map[string]any, error) {
	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	start := time.Now()

	resp, err := t.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "error").Inc()
		metrics.TranslationErrorsTotal.WithLabelValues(t.provider, t.model, "api_error").Inc()
		return nil, parseAPIError(err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if content == "" {
		metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "error").Inc()
		metrics.TranslationErrorsTotal.WithLabelValues(t.provider, t.model, "empty_response").Inc()
		return nil, fmt.Errorf("empty completion response: %w", domain.ErrUpstreamEmpty)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "error").Inc()
		metrics.TranslationErrorsTotal.WithLabelValues(t.provider, t.model, "unparseable_response").Inc()
		return nil, fmt.Errorf("parse completion %q: %w", truncate(content, 200), domain.ErrUpstreamUnparseable)
	}

	metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "success").Inc()
	metrics.TranslationRequestDuration.WithLabelValues(t.provider, t.model).Observe(duration.Seconds())

	return raw, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (t *Translator) HealthCheck(ctx context.Context) error {
	if _, err := t.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All transport failures map to domain.ErrUpstreamEmpty: the service produced
// no usable content.
func parseAPIError(err error) error {
	wrap := domain.ErrUpstreamEmpty

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("translation API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("translation API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("translation request failed: %w", wrap)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
