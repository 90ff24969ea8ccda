package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

const (
	matchCachePrefix = "jobmatch:"
	matchCacheTTL    = 30 * time.Minute
)

// MatchCache caches ranked job matches per resume fingerprint. Misses and
// Redis errors are indistinguishable to callers; both mean recompute.
type MatchCache struct {
	client *Client
}

// NewMatchCache creates a new job match cache
func NewMatchCache(client *Client) *MatchCache {
	return &MatchCache{client: client}
}

// Get retrieves cached matches for a key
func (c *MatchCache) Get(ctx context.Context, key string) ([]domain.JobMatch, bool) {
	data, err := c.client.rdb.Get(ctx, fmt.Sprintf("%s%s", matchCachePrefix, key)).Bytes()
	if err != nil {
		return nil, false
	}

	var matches []domain.JobMatch
	if err := json.Unmarshal(data, &matches); err != nil {
		log.Warn().Err(err).Msg("failed to unmarshal cached job matches")
		return nil, false
	}

	return matches, true
}

// Set caches matches for a key
func (c *MatchCache) Set(ctx context.Context, key string, matches []domain.JobMatch) {
	data, err := json.Marshal(matches)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal job matches for cache")
		return
	}

	if err := c.client.rdb.Set(ctx, fmt.Sprintf("%s%s", matchCachePrefix, key), data, matchCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to cache job matches")
	}
}

// Invalidate removes cached matches for a key
func (c *MatchCache) Invalidate(ctx context.Context, key string) error {
	return c.client.rdb.Del(ctx, fmt.Sprintf("%s%s", matchCachePrefix, key)).Err()
}
