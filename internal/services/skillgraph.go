package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

// Unlock statuses per skill node.
const (
	SkillStatusCompleted = "completed"
	SkillStatusUnlocked  = "unlocked"
	SkillStatusLocked    = "locked"
)

type SkillStatus struct {
	SkillID string `json:"skill_id"`
	Status  string `json:"status"`
}

type RoadmapStatus struct {
	RoadmapID string        `json:"roadmap_id"`
	Skills    []SkillStatus `json:"skills"`
}

type SkillGraphService interface {
	// GenerateLinearGraph derives sequential unlock edges for a roadmap
	// whose courses are ordered by id.
	GenerateLinearGraph(ctx context.Context, roadmapID string) error
	RoadmapStatus(ctx context.Context, userID uuid.UUID, roadmapID string) (*RoadmapStatus, error)
}

type skillGraphService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
	edgeRepo   repos.SkillEdgeRepo
	eventRepo  repos.UserEventRepo
}

func NewSkillGraphService(
	db *gorm.DB,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	edgeRepo repos.SkillEdgeRepo,
	eventRepo repos.UserEventRepo,
) SkillGraphService {
	return &skillGraphService{
		db:         db,
		log:        log.With("service", "SkillGraphService"),
		courseRepo: courseRepo,
		edgeRepo:   edgeRepo,
		eventRepo:  eventRepo,
	}
}

func (s *skillGraphService) GenerateLinearGraph(ctx context.Context, roadmapID string) error {
	courses, err := s.courseRepo.GetByRoadmapID(ctx, nil, roadmapID)
	if err != nil {
		return fmt.Errorf("load courses for roadmap %s: %w", roadmapID, err)
	}
	if len(courses) < 2 {
		return nil
	}

	edges := make([]*types.SkillEdge, 0, len(courses)-1)
	for i := 0; i < len(courses)-1; i++ {
		edges = append(edges, &types.SkillEdge{
			ID:          uuid.New(),
			RoadmapID:   roadmapID,
			FromSkillID: courses[i].ID,
			ToSkillID:   courses[i+1].ID,
		})
	}
	if err := s.edgeRepo.Upsert(ctx, nil, edges); err != nil {
		return fmt.Errorf("persist skill edges for roadmap %s: %w", roadmapID, err)
	}
	s.log.Info("Skill graph generated", "roadmap_id", roadmapID, "edges", len(edges))
	return nil
}

// RoadmapStatus resolves completed/unlocked/locked for every node of the
// roadmap in one pass over prefetched sets. Only direct prerequisites
// gate unlocking; the resolver reads, never mutates.
func (s *skillGraphService) RoadmapStatus(ctx context.Context, userID uuid.UUID, roadmapID string) (*RoadmapStatus, error) {
	courses, err := s.courseRepo.GetByRoadmapID(ctx, nil, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("load courses for roadmap %s: %w", roadmapID, err)
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("roadmap %s: %w", roadmapID, ErrNotFound)
	}

	courseIDs := make([]string, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	completedIDs, err := s.eventRepo.GetCompletedCourseIDs(ctx, nil, userID, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("load completions for user=%s roadmap=%s: %w", userID, roadmapID, err)
	}
	completed := make(map[string]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	edges, err := s.edgeRepo.GetByRoadmapID(ctx, nil, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("load skill edges for roadmap %s: %w", roadmapID, err)
	}
	prereqs := make(map[string][]string, len(courseIDs))
	known := make(map[string]bool, len(courseIDs))
	for _, id := range courseIDs {
		known[id] = true
	}
	for _, edge := range edges {
		if known[edge.ToSkillID] {
			prereqs[edge.ToSkillID] = append(prereqs[edge.ToSkillID], edge.FromSkillID)
		}
	}

	return &RoadmapStatus{
		RoadmapID: roadmapID,
		Skills:    ResolveStatuses(courseIDs, prereqs, completed),
	}, nil
}

// ResolveStatuses applies the unlock rules: completed wins; otherwise a
// node with no direct prerequisites, or with every direct prerequisite
// completed, is unlocked; anything else is locked.
func ResolveStatuses(courseIDs []string, prereqs map[string][]string, completed map[string]bool) []SkillStatus {
	statuses := make([]SkillStatus, 0, len(courseIDs))
	for _, id := range courseIDs {
		status := SkillStatusLocked
		switch {
		case completed[id]:
			status = SkillStatusCompleted
		default:
			status = SkillStatusUnlocked
			for _, prereq := range prereqs[id] {
				if !completed[prereq] {
					status = SkillStatusLocked
					break
				}
			}
		}
		statuses = append(statuses, SkillStatus{SkillID: id, Status: status})
	}
	return statuses
}
