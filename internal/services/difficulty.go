package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

// DifficultyConfig holds the rating constants: every node starts at Base
// and gains one Step per prerequisite layer.
type DifficultyConfig struct {
	Base int
	Step int
}

func DefaultDifficultyConfig() DifficultyConfig {
	return DifficultyConfig{Base: 800, Step: 100}
}

type DifficultyService interface {
	ComputeForRoadmap(ctx context.Context, roadmapID string) error
}

type difficultyService struct {
	db         *gorm.DB
	log        *logger.Logger
	cfg        DifficultyConfig
	courseRepo repos.CourseRepo
	prereqRepo repos.CoursePrerequisiteRepo
}

func NewDifficultyService(
	db *gorm.DB,
	log *logger.Logger,
	cfg DifficultyConfig,
	courseRepo repos.CourseRepo,
	prereqRepo repos.CoursePrerequisiteRepo,
) DifficultyService {
	if cfg.Step <= 0 {
		cfg = DefaultDifficultyConfig()
	}
	return &difficultyService{
		db:         db,
		log:        log.With("service", "DifficultyService"),
		cfg:        cfg,
		courseRepo: courseRepo,
		prereqRepo: prereqRepo,
	}
}

// ComputeForRoadmap recomputes every course's difficulty from scratch.
// Batch and idempotent; rerunning over an unchanged roadmap yields the
// same levels. Nothing is persisted when the graph is cyclic.
func (s *difficultyService) ComputeForRoadmap(ctx context.Context, roadmapID string) error {
	courses, err := s.courseRepo.GetByRoadmapID(ctx, nil, roadmapID)
	if err != nil {
		return fmt.Errorf("load courses for roadmap %s: %w", roadmapID, err)
	}
	if len(courses) == 0 {
		return fmt.Errorf("roadmap %s: %w", roadmapID, ErrNotFound)
	}

	courseIDs := make([]string, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}
	prereqs, err := s.prereqRepo.GetByCourseIDs(ctx, nil, courseIDs)
	if err != nil {
		return fmt.Errorf("load prerequisites for roadmap %s: %w", roadmapID, err)
	}

	levels, err := RankDifficulty(courses, prereqs, s.cfg)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.courseRepo.UpdateDifficulties(ctx, tx, levels)
	}); err != nil {
		return fmt.Errorf("persist difficulty levels for roadmap %s: %w", roadmapID, err)
	}
	s.log.Info("Difficulty recomputed", "roadmap_id", roadmapID, "courses", len(levels))
	return nil
}

// RankDifficulty assigns each course Base + Step*depth, where depth is
// the longest prerequisite chain leading to it (Kahn traversal). For
// every edge prerequisite->dependent the result satisfies
// difficulty(dependent) >= difficulty(prerequisite) + Step.
func RankDifficulty(courses []*types.Course, prereqs []*types.CoursePrerequisite, cfg DifficultyConfig) (map[string]int, error) {
	known := make(map[string]bool, len(courses))
	inDegree := make(map[string]int, len(courses))
	for _, c := range courses {
		known[c.ID] = true
		inDegree[c.ID] = 0
	}

	dependents := make(map[string][]string)
	for _, edge := range prereqs {
		if !known[edge.CourseID] || !known[edge.PrerequisiteID] {
			continue
		}
		dependents[edge.PrerequisiteID] = append(dependents[edge.PrerequisiteID], edge.CourseID)
		inDegree[edge.CourseID]++
	}

	depth := make(map[string]int, len(courses))
	queue := make([]string, 0, len(courses))
	for _, c := range courses {
		if inDegree[c.ID] == 0 {
			queue = append(queue, c.ID)
			depth[c.ID] = 0
		}
	}

	visited := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		visited++

		for _, dependent := range dependents[current] {
			if newDepth := depth[current] + 1; newDepth > depth[dependent] {
				depth[dependent] = newDepth
			}
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if visited < len(courses) {
		return nil, fmt.Errorf("%w: %d nodes stranded in a cycle", ErrMalformedGraph, len(courses)-visited)
	}

	levels := make(map[string]int, len(courses))
	for _, c := range courses {
		levels[c.ID] = cfg.Base + cfg.Step*depth[c.ID]
	}
	return levels, nil
}
