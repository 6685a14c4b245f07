// Package cache provides an optional redis-backed cache for match
// results, keyed by a hash of the normalized question. The core matcher
// is deterministic and pure, so cached outcomes never go stale while an
// index exists; entries are invalidated only when their index is deleted.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gcbaptista/go-faq-engine/internal/tokenizer"
	"github.com/gcbaptista/go-faq-engine/services"
)

const keyPrefix = "faq:answers"

// AnswerCache caches MatchResult values in redis. A nil *AnswerCache is
// a valid no-op cache, so callers never need to branch on whether
// caching is configured.
type AnswerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis at addr and verifies the connection with a ping.
func New(addr, password string, db int, ttl time.Duration) (*AnswerCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &AnswerCache{client: client, ttl: ttl}, nil
}

// cacheKey hashes the tokenized query so that trivial rephrasings
// ("Admission fee?" vs "admission  FEE") share an entry. The threshold
// is part of the key because it changes the outcome.
func cacheKey(indexName, query string, threshold float64) string {
	normalized := strings.Join(tokenizer.Tokenize(query), " ")
	digest := sha256.Sum256([]byte(fmt.Sprintf("%s|%.4f|%s", indexName, threshold, normalized)))
	return fmt.Sprintf("%s:%s:%s", keyPrefix, indexName, hex.EncodeToString(digest[:]))
}

// Get returns a cached result for the query, or false on a miss.
// Redis errors are treated as misses: the matcher can always recompute.
func (c *AnswerCache) Get(ctx context.Context, indexName, query string, threshold float64) (services.MatchResult, bool) {
	if c == nil {
		return services.MatchResult{}, false
	}

	payload, err := c.client.Get(ctx, cacheKey(indexName, query, threshold)).Result()
	if err != nil {
		return services.MatchResult{}, false
	}

	var result services.MatchResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return services.MatchResult{}, false
	}
	return result, true
}

// Set stores a match result. Failures are ignored; caching is best effort.
func (c *AnswerCache) Set(ctx context.Context, indexName, query string, threshold float64, result services.MatchResult) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(indexName, query, threshold), payload, c.ttl)
}

// InvalidateIndex drops every cached answer for an index, called when
// the index is deleted or rebuilt under the same name.
func (c *AnswerCache) InvalidateIndex(ctx context.Context, indexName string) {
	if c == nil {
		return
	}

	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, indexName)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}
