package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/skillpath-backend/internal/logger"
)

// ScoreCache keeps recently-blended adaptive scores so hot read paths
// (learning path, resource ranking) skip the evidence fan-out. Evidence
// writers invalidate; a short TTL bounds staleness either way.
type ScoreCache interface {
	Get(ctx context.Context, userID, roadmapID string) (float64, bool)
	Set(ctx context.Context, userID, roadmapID string, score float64)
	Invalidate(ctx context.Context, userID, roadmapID string)
	Close() error
}

type scoreCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewScoreCache(log *logger.Logger, addr string, ttl time.Duration) (ScoreCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &scoreCache{
		log: log.With("service", "RedisScoreCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func scoreKey(userID, roadmapID string) string {
	return fmt.Sprintf("adaptive_score:%s:%s", userID, roadmapID)
}

func (c *scoreCache) Get(ctx context.Context, userID, roadmapID string) (float64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	val, err := c.rdb.Get(ctx, scoreKey(userID, roadmapID)).Result()
	if err != nil {
		return 0, false
	}
	score, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return score, true
}

func (c *scoreCache) Set(ctx context.Context, userID, roadmapID string, score float64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, scoreKey(userID, roadmapID), strconv.FormatFloat(score, 'f', -1, 64), c.ttl).Err(); err != nil {
		c.log.Warn("Failed to cache adaptive score", "error", err, "user_id", userID, "roadmap_id", roadmapID)
	}
}

func (c *scoreCache) Invalidate(ctx context.Context, userID, roadmapID string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, scoreKey(userID, roadmapID)).Err(); err != nil {
		c.log.Warn("Failed to invalidate adaptive score", "error", err, "user_id", userID, "roadmap_id", roadmapID)
	}
}

func (c *scoreCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
