package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore implements the fixed-window counter behind the rate
// limiting middleware. Key format: ratelimit:<scope>:<client_ip>
type RateLimitStore struct {
	client *redis.Client
}

// NewRateLimitStore creates a RateLimitStore wrapping the given Redis client.
func NewRateLimitStore(client *redis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

// Incr bumps the window counter for key and returns the new count. The
// expiry is set only when the key is first created, so the window is fixed
// rather than sliding.
func (s *RateLimitStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit incr: %w", err)
	}
	return incr.Val(), nil
}
