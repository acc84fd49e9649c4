package app

import (
	"time"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/services"
	"github.com/yungbote/skillpath-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	Difficulty services.DifficultyConfig
	Blend      services.BlendConfig

	RedisAddr     string
	ScoreCacheTTL time.Duration

	GithubAPIBase string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	difficulty := services.DifficultyConfig{
		Base: utils.GetEnvAsInt("DIFFICULTY_BASE", 800, log),
		Step: utils.GetEnvAsInt("DIFFICULTY_STEP", 100, log),
	}
	blend := services.BlendConfig{
		Baseline:    utils.GetEnvAsFloat("BLEND_BASELINE", 800, log),
		Range:       utils.GetEnvAsFloat("BLEND_RANGE", 1200, log),
		TrustWeight: utils.GetEnvAsFloat("BLEND_TRUST_WEIGHT", 0.7, log),
		SkillWeight: utils.GetEnvAsFloat("BLEND_SKILL_WEIGHT", 0.3, log),
		Tolerance:   utils.GetEnvAsFloat("BLEND_TOLERANCE", 100, log),
	}

	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		Difficulty:      difficulty,
		Blend:           blend,
		RedisAddr:       utils.GetEnv("REDIS_ADDR", "", log),
		ScoreCacheTTL:   time.Duration(utils.GetEnvAsInt("SCORE_CACHE_TTL", 60, log)) * time.Second,
		GithubAPIBase:   utils.GetEnv("GITHUB_API_BASE", "https://api.github.com", log),
	}
}
