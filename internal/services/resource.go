package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type RankedResources struct {
	Primary       *types.CourseResource   `json:"primary"`
	Additional    []*types.CourseResource `json:"additional"`
	AdaptiveScore float64                 `json:"adaptive_score"`
}

type ResourceService interface {
	RankedForCourse(ctx context.Context, userID uuid.UUID, courseID string) (*RankedResources, error)
}

type resourceService struct {
	db           *gorm.DB
	log          *logger.Logger
	cfg          BlendConfig
	courseRepo   repos.CourseRepo
	resourceRepo repos.CourseResourceRepo
	scorer       AdaptiveScoreService
}

func NewResourceService(
	db *gorm.DB,
	log *logger.Logger,
	cfg BlendConfig,
	courseRepo repos.CourseRepo,
	resourceRepo repos.CourseResourceRepo,
	scorer AdaptiveScoreService,
) ResourceService {
	if cfg.Baseline == 0 {
		cfg = DefaultBlendConfig()
	}
	return &resourceService{
		db:           db,
		log:          log.With("service", "ResourceService"),
		cfg:          cfg,
		courseRepo:   courseRepo,
		resourceRepo: resourceRepo,
		scorer:       scorer,
	}
}

// RankedForCourse picks the resource whose difficulty sits closest to
// the user's adaptive score as primary and returns the rest in fit
// order.
func (s *resourceService) RankedForCourse(ctx context.Context, userID uuid.UUID, courseID string) (*RankedResources, error) {
	course, err := s.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course %s: %w", courseID, err)
	}
	if course == nil {
		return nil, fmt.Errorf("course %s: %w", courseID, ErrNotFound)
	}

	score, err := s.scorer.Score(ctx, userID, course.RoadmapID)
	if err != nil {
		return nil, err
	}

	resources, err := s.resourceRepo.GetByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load resources for course %s: %w", courseID, err)
	}
	if len(resources) == 0 {
		return &RankedResources{Additional: []*types.CourseResource{}, AdaptiveScore: score}, nil
	}

	ranked := RankByFit(resources, score, s.cfg.Baseline)
	return &RankedResources{
		Primary:       ranked[0],
		Additional:    ranked[1:],
		AdaptiveScore: score,
	}, nil
}

// RankByFit orders resources by distance between their difficulty and
// the adaptive score; a resource without a difficulty is treated as
// neutral. Ties go to the higher quality score.
func RankByFit(resources []*types.CourseResource, adaptiveScore, neutralDifficulty float64) []*types.CourseResource {
	ranked := make([]*types.CourseResource, len(resources))
	copy(ranked, resources)

	distance := func(r *types.CourseResource) float64 {
		difficulty := neutralDifficulty
		if r.DifficultyLevel != nil {
			difficulty = float64(*r.DifficultyLevel)
		}
		return math.Abs(difficulty - adaptiveScore)
	}
	quality := func(r *types.CourseResource) float64 {
		if r.QualityScore == nil {
			return 0
		}
		return *r.QualityScore
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := distance(ranked[i]), distance(ranked[j])
		if di != dj {
			return di < dj
		}
		return quality(ranked[i]) > quality(ranked[j])
	})
	return ranked
}
