package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/strindex/internal/domain"
)

// translator is the consumer interface for the retry wrapper.
type translator interface {
	Translate(ctx context.Context, text string) (map[string]any, error)
}

// RetryTranslator retries the inner translator with exponential backoff.
// Translation is idempotent, so at-least-once delivery against the upstream
// is safe. A shared rate limiter keeps retries within the provider's limits.
type RetryTranslator struct {
	inner          translator
	maxAttempts    int
	initialBackoff time.Duration
	limiter        *rate.Limiter
	logger         *zap.Logger
}

// NewRetryTranslator wraps a translator with retry, backoff and rate limiting.
// rps <= 0 disables the limiter.
func NewRetryTranslator(
	inner translator,
	maxAttempts int,
	initialBackoff time.Duration,
	rps float64,
	logger *zap.Logger,
) *RetryTranslator {
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryTranslator{
		inner:          inner,
		maxAttempts:    maxAttempts,
		initialBackoff: initialBackoff,
		limiter:        limiter,
		logger:         logger,
	}
}

// Translate attempts the inner call up to maxAttempts times.
// Unparseable responses are not retried: the upstream answered, it just
// answered garbage, and the caller must see that.
func (t *RetryTranslator) Translate(ctx context.Context, text string) (map[string]any, error) {
	var lastErr error

	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		if t.limiter != nil {
			if err := t.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		raw, err := t.inner.Translate(ctx, text)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if errors.Is(err, domain.ErrUpstreamUnparseable) || attempt == t.maxAttempts {
			break
		}

		backoff := t.initialBackoff << (attempt - 1)
		t.logger.Warn("Translation attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry wait: %w", ctx.Err())
		case <-time.After(backoff):
		}
	}

	return nil, lastErr
}
