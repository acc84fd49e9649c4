package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/normalization"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

// RoadmapIngest is the full ingestion payload for one roadmap. Node and
// prerequisite ids are roadmap-local; CourseID scopes them as
// "<roadmap>:<node>".
type RoadmapIngest struct {
	RoadmapID string       `json:"roadmap_id"`
	Title     string       `json:"title"`
	Nodes     []NodeIngest `json:"nodes"`
}

type NodeIngest struct {
	NodeID        string           `json:"node_id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Prerequisites []string         `json:"prerequisites"`
	Resources     []ResourceIngest `json:"resources"`
	Quiz          *QuizIngest      `json:"quiz,omitempty"`
}

type ResourceIngest struct {
	ResourceType    string   `json:"resource_type"`
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	Platform        string   `json:"platform"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
	DifficultyLevel *int     `json:"difficulty_level,omitempty"`
	QualityScore    *float64 `json:"quality_score,omitempty"`
	IsPrimary       bool     `json:"is_primary"`
}

type QuizIngest struct {
	Questions    []types.QuizQuestion `json:"questions"`
	PassingScore int                  `json:"passing_score"`
}

// CourseID scopes a roadmap-local node id into the global course key.
func CourseID(roadmapID, nodeID string) string {
	return roadmapID + ":" + nodeID
}

type CurriculumService interface {
	// IngestRoadmap validates and persists one roadmap graph, then runs
	// the difficulty ranker and derives unlock edges. The roadmap is
	// marked ready only after ranking succeeds.
	IngestRoadmap(ctx context.Context, payload *RoadmapIngest) (*types.Roadmap, error)
	RecomputeDifficulty(ctx context.Context, roadmapID string) error
	ListCourses(ctx context.Context, roadmapID string) ([]*types.Course, error)
	GetCourse(ctx context.Context, courseID string) (*types.Course, error)
}

type curriculumService struct {
	db          *gorm.DB
	log         *logger.Logger
	roadmapRepo repos.RoadmapRepo
	courseRepo  repos.CourseRepo
	prereqRepo  repos.CoursePrerequisiteRepo
	resRepo     repos.CourseResourceRepo
	quizRepo    repos.SkillQuizRepo
	difficulty  DifficultyService
	graph       SkillGraphService
}

func NewCurriculumService(
	db *gorm.DB,
	log *logger.Logger,
	roadmapRepo repos.RoadmapRepo,
	courseRepo repos.CourseRepo,
	prereqRepo repos.CoursePrerequisiteRepo,
	resRepo repos.CourseResourceRepo,
	quizRepo repos.SkillQuizRepo,
	difficulty DifficultyService,
	graph SkillGraphService,
) CurriculumService {
	return &curriculumService{
		db:          db,
		log:         log.With("service", "CurriculumService"),
		roadmapRepo: roadmapRepo,
		courseRepo:  courseRepo,
		prereqRepo:  prereqRepo,
		resRepo:     resRepo,
		quizRepo:    quizRepo,
		difficulty:  difficulty,
		graph:       graph,
	}
}

func (s *curriculumService) IngestRoadmap(ctx context.Context, payload *RoadmapIngest) (*types.Roadmap, error) {
	if payload == nil {
		return nil, fmt.Errorf("empty payload: %w", ErrMalformedGraph)
	}
	roadmapID := normalization.ParseInputString(payload.RoadmapID)
	if roadmapID == "" || len(payload.Nodes) == 0 {
		return nil, fmt.Errorf("roadmap id and nodes are required: %w", ErrMalformedGraph)
	}

	courses := make([]*types.Course, 0, len(payload.Nodes))
	var prereqs []*types.CoursePrerequisite
	var resources []*types.CourseResource
	var quizzes []*types.SkillQuiz
	for _, node := range payload.Nodes {
		nodeID := normalization.ParseInputString(node.NodeID)
		if nodeID == "" {
			return nil, fmt.Errorf("node with empty id: %w", ErrMalformedGraph)
		}
		id := CourseID(roadmapID, nodeID)
		courses = append(courses, &types.Course{
			ID:          id,
			RoadmapID:   roadmapID,
			NodeID:      nodeID,
			Title:       node.Title,
			Description: node.Description,
		})
		for _, p := range node.Prerequisites {
			prereqs = append(prereqs, &types.CoursePrerequisite{
				CourseID:       id,
				PrerequisiteID: CourseID(roadmapID, normalization.ParseInputString(p)),
			})
		}
		for _, r := range node.Resources {
			resources = append(resources, &types.CourseResource{
				ID:              uuid.New(),
				CourseID:        id,
				ResourceType:    r.ResourceType,
				Title:           r.Title,
				URL:             r.URL,
				Platform:        r.Platform,
				DurationSeconds: r.DurationSeconds,
				DifficultyLevel: r.DifficultyLevel,
				QualityScore:    r.QualityScore,
				IsPrimary:       r.IsPrimary,
			})
		}
		if node.Quiz != nil {
			raw, err := json.Marshal(node.Quiz.Questions)
			if err != nil {
				return nil, fmt.Errorf("marshal quiz for node %s: %w", nodeID, err)
			}
			passing := node.Quiz.PassingScore
			if passing <= 0 {
				passing = 80
			}
			quizzes = append(quizzes, &types.SkillQuiz{
				ID:           uuid.New(),
				SkillID:      id,
				Questions:    datatypes.JSON(raw),
				PassingScore: passing,
			})
		}
	}

	// Reject cycles before anything touches the database.
	if _, err := RankDifficulty(courses, prereqs, DefaultDifficultyConfig()); err != nil {
		return nil, err
	}

	roadmap := &types.Roadmap{ID: roadmapID, Title: payload.Title}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.roadmapRepo.Upsert(ctx, tx, roadmap); err != nil {
			return fmt.Errorf("upsert roadmap %s: %w", roadmapID, err)
		}
		if err := s.courseRepo.Upsert(ctx, tx, courses); err != nil {
			return fmt.Errorf("upsert courses for roadmap %s: %w", roadmapID, err)
		}
		if err := s.prereqRepo.Upsert(ctx, tx, prereqs); err != nil {
			return fmt.Errorf("upsert prerequisites for roadmap %s: %w", roadmapID, err)
		}
		if len(resources) > 0 {
			if _, err := s.resRepo.Create(ctx, tx, resources); err != nil {
				return fmt.Errorf("create resources for roadmap %s: %w", roadmapID, err)
			}
		}
		for _, q := range quizzes {
			if err := s.quizRepo.Upsert(ctx, tx, q); err != nil {
				return fmt.Errorf("upsert quiz for skill %s: %w", q.SkillID, err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.difficulty.ComputeForRoadmap(ctx, roadmapID); err != nil {
		return nil, err
	}
	if err := s.graph.GenerateLinearGraph(ctx, roadmapID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.roadmapRepo.MarkDifficultyComputed(ctx, nil, roadmapID, now); err != nil {
		return nil, fmt.Errorf("mark roadmap %s ready: %w", roadmapID, err)
	}
	roadmap.DifficultyComputedAt = &now

	s.log.Info("Roadmap ingested", "roadmap_id", roadmapID, "courses", len(courses), "prereqs", len(prereqs))
	return roadmap, nil
}

func (s *curriculumService) RecomputeDifficulty(ctx context.Context, roadmapID string) error {
	roadmapID = normalization.ParseInputString(roadmapID)
	if err := s.difficulty.ComputeForRoadmap(ctx, roadmapID); err != nil {
		return err
	}
	return s.roadmapRepo.MarkDifficultyComputed(ctx, nil, roadmapID, time.Now().UTC())
}

func (s *curriculumService) ListCourses(ctx context.Context, roadmapID string) ([]*types.Course, error) {
	roadmapID = normalization.ParseInputString(roadmapID)
	if roadmapID == "" {
		return s.courseRepo.GetAll(ctx, nil)
	}
	return s.courseRepo.GetByRoadmapID(ctx, nil, roadmapID)
}

func (s *curriculumService) GetCourse(ctx context.Context, courseID string) (*types.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course %s: %w", courseID, err)
	}
	if course == nil {
		return nil, fmt.Errorf("course %s: %w", courseID, ErrNotFound)
	}
	return course, nil
}
