package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/skillpath-backend/internal/clients/redis"
	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
)

// Path statuses derived from comparing the adaptive score against a
// node's difficulty.
const (
	PathStatusCompleted = "completed"
	PathStatusReady     = "ready"
	PathStatusLocked    = "locked"
)

// BlendConfig holds the adaptive score constants: Baseline is both the
// default trust score and the bottom of the normalized skill range,
// Range maps a synthesized weight of 1.0 to Baseline+Range, TrustWeight
// and SkillWeight blend the two signals, Tolerance is the "ready" band
// around a node's difficulty.
type BlendConfig struct {
	Baseline    float64
	Range       float64
	TrustWeight float64
	SkillWeight float64
	Tolerance   float64
}

func DefaultBlendConfig() BlendConfig {
	return BlendConfig{
		Baseline:    800,
		Range:       1200,
		TrustWeight: 0.7,
		SkillWeight: 0.3,
		Tolerance:   100,
	}
}

type AdaptiveScoreService interface {
	Score(ctx context.Context, userID uuid.UUID, roadmapID string) (float64, error)
	StatusForDifficulty(score float64, difficulty int) string
	Invalidate(ctx context.Context, userID uuid.UUID, roadmapID string)
}

type adaptiveScoreService struct {
	db            *gorm.DB
	log           *logger.Logger
	cfg           BlendConfig
	userSkillRepo repos.UserSkillRepo
	synthesizer   SynthesizerService
	cache         redisclient.ScoreCache
}

// NewAdaptiveScoreService wires the blender. cache may be nil; scoring
// then always recomputes.
func NewAdaptiveScoreService(
	db *gorm.DB,
	log *logger.Logger,
	cfg BlendConfig,
	userSkillRepo repos.UserSkillRepo,
	synthesizer SynthesizerService,
	cache redisclient.ScoreCache,
) AdaptiveScoreService {
	if cfg.Baseline == 0 {
		cfg = DefaultBlendConfig()
	}
	return &adaptiveScoreService{
		db:            db,
		log:           log.With("service", "AdaptiveScoreService"),
		cfg:           cfg,
		userSkillRepo: userSkillRepo,
		synthesizer:   synthesizer,
		cache:         cache,
	}
}

// Score blends the legacy trust score with the synthesized evidence
// weight into the single scalar used for path gating and resource
// ranking. Both inputs default to Baseline when absent, so a user with
// no evidence at all lands exactly on Baseline.
func (s *adaptiveScoreService) Score(ctx context.Context, userID uuid.UUID, roadmapID string) (float64, error) {
	if s.cache != nil {
		if score, ok := s.cache.Get(ctx, userID.String(), roadmapID); ok {
			return score, nil
		}
	}

	trustScore := s.cfg.Baseline
	userSkill, err := s.userSkillRepo.GetByUserAndSkill(ctx, nil, userID, roadmapID)
	if err != nil {
		return 0, fmt.Errorf("load trust score for user=%s roadmap=%s: %w", userID, roadmapID, err)
	}
	if userSkill != nil {
		trustScore = userSkill.TrustScore
	}

	skillScore := s.cfg.Baseline
	synthesized, err := s.synthesizer.Synthesize(ctx, userID, roadmapID)
	if err != nil {
		return 0, err
	}
	if synthesized != nil {
		skillScore = s.cfg.Baseline + synthesized.Weight*s.cfg.Range
	}

	score := s.cfg.TrustWeight*trustScore + s.cfg.SkillWeight*skillScore
	s.log.Debug("Adaptive score computed", "user_id", userID, "roadmap_id", roadmapID, "score", score)

	if s.cache != nil {
		s.cache.Set(ctx, userID.String(), roadmapID, score)
	}
	return score, nil
}

// StatusForDifficulty places a node relative to the user's score: more
// than Tolerance below the score means already mastered, within the band
// means ready, above means too advanced.
func (s *adaptiveScoreService) StatusForDifficulty(score float64, difficulty int) string {
	d := float64(difficulty)
	switch {
	case d < score-s.cfg.Tolerance:
		return PathStatusCompleted
	case d <= score+s.cfg.Tolerance:
		return PathStatusReady
	default:
		return PathStatusLocked
	}
}

func (s *adaptiveScoreService) Invalidate(ctx context.Context, userID uuid.UUID, roadmapID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID.String(), roadmapID)
	}
}
