package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type PathNode struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty *int   `json:"difficulty"`
	Status     string `json:"status"`
}

type LearningPath struct {
	UserScore    float64    `json:"user_score"`
	TargetCourse string     `json:"target_course"`
	Path         []PathNode `json:"path"`
}

type LearningPathService interface {
	Path(ctx context.Context, userID uuid.UUID, courseID string) (*LearningPath, error)
}

type learningPathService struct {
	db          *gorm.DB
	log         *logger.Logger
	courseRepo  repos.CourseRepo
	prereqRepo  repos.CoursePrerequisiteRepo
	roadmapRepo repos.RoadmapRepo
	scorer      AdaptiveScoreService
}

func NewLearningPathService(
	db *gorm.DB,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	prereqRepo repos.CoursePrerequisiteRepo,
	roadmapRepo repos.RoadmapRepo,
	scorer AdaptiveScoreService,
) LearningPathService {
	return &learningPathService{
		db:          db,
		log:         log.With("service", "LearningPathService"),
		courseRepo:  courseRepo,
		prereqRepo:  prereqRepo,
		roadmapRepo: roadmapRepo,
		scorer:      scorer,
	}
}

// Path returns the target course plus every transitive prerequisite,
// ordered by difficulty and annotated with the adaptive-score band
// status.
func (s *learningPathService) Path(ctx context.Context, userID uuid.UUID, courseID string) (*LearningPath, error) {
	target, err := s.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course %s: %w", courseID, err)
	}
	if target == nil {
		return nil, fmt.Errorf("course %s: %w", courseID, ErrNotFound)
	}

	roadmap, err := s.roadmapRepo.GetByID(ctx, nil, target.RoadmapID)
	if err != nil {
		return nil, fmt.Errorf("load roadmap %s: %w", target.RoadmapID, err)
	}
	if roadmap != nil && !roadmap.Ready() {
		return nil, fmt.Errorf("roadmap %s: %w", target.RoadmapID, ErrCurriculumNotReady)
	}

	prereqCourses, err := s.collectPrerequisites(ctx, courseID)
	if err != nil {
		return nil, err
	}

	fullPath := append(prereqCourses, target)
	sort.SliceStable(fullPath, func(i, j int) bool {
		return difficultyOrZero(fullPath[i]) < difficultyOrZero(fullPath[j])
	})

	score, err := s.scorer.Score(ctx, userID, target.RoadmapID)
	if err != nil {
		return nil, err
	}

	nodes := make([]PathNode, 0, len(fullPath))
	for _, course := range fullPath {
		nodes = append(nodes, PathNode{
			ID:         course.ID,
			Title:      course.Title,
			Difficulty: course.DifficultyLevel,
			Status:     s.scorer.StatusForDifficulty(score, difficultyOrZero(course)),
		})
	}

	return &LearningPath{
		UserScore:    score,
		TargetCourse: target.Title,
		Path:         nodes,
	}, nil
}

// collectPrerequisites walks the prerequisite edges breadth-first with an
// explicit frontier; direct edges only, no recursion.
func (s *learningPathService) collectPrerequisites(ctx context.Context, courseID string) ([]*types.Course, error) {
	visited := map[string]bool{courseID: true}
	frontier := []string{courseID}
	var collected []string

	for len(frontier) > 0 {
		edges, err := s.prereqRepo.GetByCourseIDs(ctx, nil, frontier)
		if err != nil {
			return nil, fmt.Errorf("load prerequisites: %w", err)
		}
		frontier = frontier[:0]
		for _, edge := range edges {
			if visited[edge.PrerequisiteID] {
				continue
			}
			visited[edge.PrerequisiteID] = true
			collected = append(collected, edge.PrerequisiteID)
			frontier = append(frontier, edge.PrerequisiteID)
		}
	}

	return s.courseRepo.GetByIDs(ctx, nil, collected)
}

func difficultyOrZero(course *types.Course) int {
	if course.DifficultyLevel == nil {
		return 0
	}
	return *course.DifficultyLevel
}
