package participationcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/go-redis/redis/v8"
)

const (
	keyPrefix = "ranking:"
	// generationKey sits outside keyPrefix so invalidation never deletes it.
	generationKey = "ranking-generation"
)

// RankingCache stores serialized leaderboard pages in Redis.
type RankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient parses a redis:// URL and checks the server is reachable.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// NewRankingCache wraps client. A ttl of zero stores pages without expiry.
func NewRankingCache(client *redis.Client, ttl time.Duration) *RankingCache {
	return &RankingCache{client: client, ttl: ttl}
}

// Key is the cache key of one leaderboard page.
func Key(metric string, limit int) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, metric, limit)
}

// Get unmarshals a cached page into dest. It reports false on a miss.
func (c *RankingCache) Get(ctx context.Context, metric string, limit int, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, Key(metric, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading ranking cache: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("unmarshaling cached ranking %q: %w", Key(metric, limit), err)
	}
	return true, nil
}

// Generation returns the invalidation counter. A page computed after reading
// generation g may only be stored while the counter is still g.
func (c *RankingCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading ranking generation: %w", err)
	}
	return gen, nil
}

// Set stores value unless an invalidation has run since generation was read.
// It reports whether the page was stored.
func (c *RankingCache) Set(ctx context.Context, metric string, limit int, generation int64, value any) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("marshaling ranking for cache: %w", err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(metric, limit), raw, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, generationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("writing ranking cache: %w", err)
	}
	return stored, nil
}

// Invalidate bumps the generation, then drops every cached page.
func (c *RankingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bumping ranking generation: %w", err)
	}

	var keys []string
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning ranking cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clearing ranking cache: %w", err)
	}
	return nil
}
