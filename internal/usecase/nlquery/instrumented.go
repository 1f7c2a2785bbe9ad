package nlquery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// InstrumentedTranslator wraps a Translator with debug logging.
// Transport metrics (requests, duration, errors) are recorded in
// transport/openai; this layer owns the log line only.
type InstrumentedTranslator struct {
	inner    Translator
	provider string
	logger   *zap.Logger
}

// NewInstrumentedTranslator wraps a translator with observability.
func NewInstrumentedTranslator(inner Translator, provider string, logger *zap.Logger) *InstrumentedTranslator {
	return &InstrumentedTranslator{inner: inner, provider: provider, logger: logger}
}

// Translate delegates to the inner translator and logs the outcome.
func (t *InstrumentedTranslator) Translate(ctx context.Context, text string) (map[string]any, error) {
	start := time.Now()

	raw, err := t.inner.Translate(ctx, text)

	duration := time.Since(start)

	if err != nil {
		t.logger.Error("Translation request failed",
			zap.String("provider", t.provider),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("translate: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}

	t.logger.Debug("Translation request completed",
		zap.String("provider", t.provider),
		zap.Duration("duration", duration),
		zap.Strings("filter_keys", keys),
	)

	return raw, nil
}
