package redisadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"belli/contexts/community-experience/points-engine/domain/entities"
	"belli/contexts/community-experience/points-engine/ports"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "belli:leaderboard"

// Cache is a read-through cache for the leaderboard projection. Misses and
// redis failures degrade to the repository path; they are never fatal.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func (c *Cache) Get(ctx context.Context) ([]entities.LeaderboardEntry, bool, error) {
	raw, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var entries []entities.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Stale or corrupt payload; drop it and treat as a miss.
		_ = c.client.Del(ctx, leaderboardKey).Err()
		return nil, false, nil
	}
	return entries, true, nil
}

func (c *Cache) Put(ctx context.Context, entries []entities.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, leaderboardKey, raw, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, leaderboardKey).Err()
}

var _ ports.LeaderboardCache = (*Cache)(nil)
