// Package translatecache caches natural-language translation results in a
// key-value store. Only the translator's output is cached; record state never
// leaves process memory.
package translatecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/strindex/internal/db"
)

const cacheKeyPrefix = "strindex:nl_cache:"

// store is the consumer interface for the translation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// translator is the consumer interface for the inner translator.
type translator interface {
	Translate(ctx context.Context, text string) (map[string]any, error)
}

// CachedTranslator caches raw filter maps keyed by the digest of the query text.
type CachedTranslator struct {
	inner      translator
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner translator,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedTranslator {
	return &CachedTranslator{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Translate returns a cached raw filter map or calls the inner translator.
// Empty maps are valid results and are cached too.
func (c *CachedTranslator) Translate(ctx context.Context, text string) (map[string]any, error) {
	key := c.cacheKey(text)

	if raw, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return raw, nil
	}

	c.incCache("miss")

	raw, err := c.inner.Translate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("translate text: %w", err)
	}

	c.putToCache(ctx, key, raw)
	return raw, nil
}

func (c *CachedTranslator) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedTranslator) cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedTranslator) getFromCache(ctx context.Context, key string) (map[string]any, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached translation", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		c.logger.Warn("Failed to parse cached translation", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return raw, true
}

func (c *CachedTranslator) putToCache(ctx context.Context, key string, raw map[string]any) {
	data, err := json.Marshal(raw)
	if err != nil {
		c.logger.Warn("Failed to encode translation for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache translation", zap.String("key", key), zap.Error(err))
	}
}
