package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/random-knowledge/knowledge-api/internal/api/metrics"
	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

const (
	randomCuriosityKey = "curiosities:random"
	randomCuriosityTTL = 30 * time.Second
)

// RandomCuriosityCache keeps the last random pick hot for a short window so
// bursts of anonymous traffic do not hammer the $sample aggregation.
type RandomCuriosityCache struct {
	client *redis.Client
}

func NewRandomCuriosityCache(client *redis.Client) *RandomCuriosityCache {
	return &RandomCuriosityCache{client: client}
}

// Get returns the cached curiosity, or (nil, nil) on a miss.
func (c *RandomCuriosityCache) Get(ctx context.Context) (*domain.Curiosity, error) {
	raw, err := c.client.Get(ctx, randomCuriosityKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RandomCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("random cache get: %w", err)
	}

	var curiosity domain.Curiosity
	if err := json.Unmarshal(raw, &curiosity); err != nil {
		return nil, fmt.Errorf("random cache decode: %w", err)
	}

	metrics.RandomCacheTotal.WithLabelValues("hit").Inc()
	return &curiosity, nil
}

// Set stores the curiosity under the shared key for randomCuriosityTTL.
func (c *RandomCuriosityCache) Set(ctx context.Context, curiosity *domain.Curiosity) error {
	raw, err := json.Marshal(curiosity)
	if err != nil {
		return fmt.Errorf("random cache encode: %w", err)
	}
	if err := c.client.Set(ctx, randomCuriosityKey, raw, randomCuriosityTTL).Err(); err != nil {
		return fmt.Errorf("random cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached pick after any curiosity write.
func (c *RandomCuriosityCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, randomCuriosityKey).Err(); err != nil {
		return fmt.Errorf("random cache invalidate: %w", err)
	}
	return nil
}
