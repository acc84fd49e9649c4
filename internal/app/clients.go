package app

import (
	"github.com/yungbote/skillpath-backend/internal/clients/github"
	"github.com/yungbote/skillpath-backend/internal/clients/redis"
	"github.com/yungbote/skillpath-backend/internal/logger"
)

type Clients struct {
	ScoreCache redis.ScoreCache
	Github     github.Client
}

func wireClients(log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")

	var cache redis.ScoreCache
	if cfg.RedisAddr != "" {
		c, err := redis.NewScoreCache(log, cfg.RedisAddr, cfg.ScoreCacheTTL)
		if err != nil {
			// The cache is an optimization; run without it.
			log.Warn("Score cache unavailable, continuing without it", "error", err)
		} else {
			cache = c
		}
	}

	return Clients{
		ScoreCache: cache,
		Github:     github.NewClient(log, cfg.GithubAPIBase),
	}
}
