package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scanplan/backend/internal/config"
	"github.com/scanplan/backend/internal/domain"
)

const (
	summaryKeyPrefix  = "planner:summary"
	scanBatchSize     = 100
	defaultSummaryTTL = time.Minute
)

// SummaryCache holds computed market x brand rollups between store
// mutations. Every mutation must invalidate it; a stale rollup is a
// correctness bug, not an eventual-consistency window.
type SummaryCache interface {
	Get(ctx context.Context) ([]domain.SummaryRow, bool, error)
	Set(ctx context.Context, rows []domain.SummaryRow) error
	Invalidate(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

// NewSummaryCache builds the redis-backed cache, or the noop one when
// caching is disabled.
func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.SummaryTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}

	return &redisSummaryCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// NewNoopSummaryCache returns a cache that never hits.
func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) Get(ctx context.Context) ([]domain.SummaryRow, bool, error) {
	payload, err := c.client.Get(ctx, summaryKey()).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rows []domain.SummaryRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("decode summary cache: %w", err)
	}

	return rows, true, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, rows []domain.SummaryRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode summary cache: %w", err)
	}

	if err := c.client.Set(ctx, summaryKey(), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisSummaryCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, summaryKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopSummaryCache) Get(ctx context.Context) ([]domain.SummaryRow, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) Set(ctx context.Context, rows []domain.SummaryRow) error {
	return nil
}

func (n *noopSummaryCache) Invalidate(ctx context.Context) error {
	return nil
}

func summaryKey() string {
	return summaryKeyPrefix + ":all"
}
