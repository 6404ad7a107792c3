package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"grocery-detective/internal/model"
)

const cacheKeyPrefix = "analysis:"

// CachingAnalyzer stores successful results of the wrapped analyzer in Redis.
// Redis errors are logged and treated as cache misses.
type CachingAnalyzer struct {
	next      Analyzer
	client    redis.Cmdable
	ttl       time.Duration
	namespace string
	logger    zerolog.Logger
}

// NewCachingAnalyzer wraps next. namespace separates entries produced by
// different models.
func NewCachingAnalyzer(next Analyzer, client redis.Cmdable, ttl time.Duration, namespace string, logger zerolog.Logger) *CachingAnalyzer {
	return &CachingAnalyzer{
		next:      next,
		client:    client,
		ttl:       ttl,
		namespace: namespace,
		logger:    logger.With().Str("component", "analysis-cache").Logger(),
	}
}

func (c *CachingAnalyzer) Analyze(ctx context.Context, ingredientsText string, prefs model.UserPreferences) (*model.ProductAnalysis, error) {
	key := CacheKey(c.namespace, ingredientsText, prefs)

	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var analysis model.ProductAnalysis
		if err := json.Unmarshal(cached, &analysis); err == nil {
			c.logger.Debug().Str("key", key).Msg("analysis cache hit")
			return &analysis, nil
		}
		c.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.logger.Warn().Err(err).Msg("analysis cache read failed")
	}

	analysis, err := c.next.Analyze(ctx, ingredientsText, prefs)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode analysis for cache")
		return analysis, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("analysis cache write failed")
	}

	return analysis, nil
}

// CacheKey derives the cache key for an analysis request. Whitespace around
// tokens, letter case and the order of preference entries do not change it.
func CacheKey(namespace, ingredientsText string, prefs model.UserPreferences) string {
	tokens := strings.Split(ingredientsText, ",")
	for i, t := range tokens {
		tokens[i] = strings.ToLower(strings.TrimSpace(t))
	}

	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(tokens, ",")))
	for _, list := range [][]string{prefs.DietaryRestrictions, prefs.Allergens, prefs.HealthGoals} {
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(normaliseSet(list), ",")))
	}

	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func normaliseSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
