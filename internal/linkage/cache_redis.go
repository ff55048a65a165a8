package linkage

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	platformredis "crosslink/internal/platform/redis"
)

// RedisNetworkCache caches rendered network graphs. Entries are keyed by run
// generation, so a new scan naturally stops hitting old entries and the TTL
// reclaims them.
type RedisNetworkCache struct {
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisNetworkCache(client *platformredis.Client, ttl time.Duration, logger *slog.Logger) *RedisNetworkCache {
	return &RedisNetworkCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisNetworkCache) Get(ctx context.Context, key string) (*NetworkGraph, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var graph NetworkGraph
	if err := json.Unmarshal(raw, &graph); err != nil {
		return nil, false
	}
	return &graph, true
}

func (c *RedisNetworkCache) Set(ctx context.Context, key string, graph *NetworkGraph) {
	raw, err := json.Marshal(graph)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "network cache write failed",
			"key", key,
			"error", err,
		)
	}
}
