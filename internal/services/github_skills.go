package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/clients/github"
	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

// GithubSkill is one language signal aggregated across the user's
// repositories.
type GithubSkill struct {
	SkillName  string  `json:"skill_name"`
	Bytes      int64   `json:"bytes"`
	Weight     float64 `json:"weight"`
	Confidence float64 `json:"confidence"`
}

type GithubSkillService interface {
	// Sync pulls the user's repository language stats from GitHub and
	// stores them as github evidence.
	Sync(ctx context.Context, userID uuid.UUID) ([]GithubSkill, error)
}

type githubSkillService struct {
	db         *gorm.DB
	log        *logger.Logger
	client     github.Client
	userRepo   repos.UserRepo
	weightRepo repos.SkillWeightRepo
	scorer     AdaptiveScoreService
}

func NewGithubSkillService(
	db *gorm.DB,
	log *logger.Logger,
	client github.Client,
	userRepo repos.UserRepo,
	weightRepo repos.SkillWeightRepo,
	scorer AdaptiveScoreService,
) GithubSkillService {
	return &githubSkillService{
		db:         db,
		log:        log.With("service", "GithubSkillService"),
		client:     client,
		userRepo:   userRepo,
		weightRepo: weightRepo,
		scorer:     scorer,
	}
}

func (s *githubSkillService) Sync(ctx context.Context, userID uuid.UUID) ([]GithubSkill, error) {
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	user := users[0]
	if user.GithubAccessToken == "" {
		return nil, fmt.Errorf("user %s has no github connection: %w", userID, ErrNotFound)
	}

	repositories, err := s.client.ListRepositories(ctx, user.GithubAccessToken)
	if err != nil {
		return nil, err
	}

	totals := map[string]int64{}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(5)
	for _, repo := range repositories {
		fullName := repo.FullName
		g.Go(func() error {
			languages, err := s.client.ListLanguages(gctx, user.GithubAccessToken, fullName)
			if err != nil {
				return err
			}
			mu.Lock()
			for lang, bytes := range languages {
				totals[strings.ToLower(lang)] += bytes
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	skills := WeighLanguageBytes(totals)
	if len(skills) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sk := range skills {
			row := &types.SkillWeight{
				UserID:      userID,
				SkillName:   sk.SkillName,
				Source:      types.SourceGithub,
				Weight:      sk.Weight,
				Confidence:  sk.Confidence,
				LastUpdated: now,
			}
			if err := s.weightRepo.Upsert(ctx, tx, row); err != nil {
				return fmt.Errorf("upsert github evidence %s: %w", sk.SkillName, err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	for _, sk := range skills {
		s.scorer.Invalidate(ctx, userID, sk.SkillName)
	}
	s.log.Info("Github evidence synced", "user_id", userID, "repos", len(repositories), "skills", len(skills))
	return skills, nil
}

// WeighLanguageBytes turns per-language byte totals into evidence.
// Weight is the language's share of all bytes; confidence is twice the
// share, capped at one, so a dominant language is trusted quickly.
func WeighLanguageBytes(totals map[string]int64) []GithubSkill {
	var sum int64
	for _, b := range totals {
		sum += b
	}
	if sum == 0 {
		return nil
	}
	skills := make([]GithubSkill, 0, len(totals))
	for lang, bytes := range totals {
		w := float64(bytes) / float64(sum)
		skills = append(skills, GithubSkill{
			SkillName:  lang,
			Bytes:      bytes,
			Weight:     w,
			Confidence: min(1, 2*w),
		})
	}
	return skills
}
