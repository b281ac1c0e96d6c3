package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/planejaula/planejaula-api/internal/core/ports"
)

const statsTTL = time.Minute

// StatsCache caches the per-teacher lesson statistics in Redis.
// Key format: stats:<teacher_id>
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached stats for the teacher, or nil on a cache miss.
func (c *StatsCache) Get(ctx context.Context, teacherID string) (*ports.LessonStats, error) {
	raw, err := c.client.Get(ctx, c.key(teacherID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.LessonStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores the stats for the teacher (expires after statsTTL).
func (c *StatsCache) Set(ctx context.Context, teacherID string, stats *ports.LessonStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(teacherID), raw, statsTTL).Err()
}

// Invalidate drops the cached stats after any lesson mutation.
func (c *StatsCache) Invalidate(ctx context.Context, teacherID string) error {
	return c.client.Del(ctx, c.key(teacherID)).Err()
}

func (c *StatsCache) key(teacherID string) string {
	return "stats:" + teacherID
}
