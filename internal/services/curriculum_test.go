package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type curriculumFixture struct {
	svc         CurriculumService
	paths       LearningPathService
	roadmapRepo repos.RoadmapRepo
	courseRepo  repos.CourseRepo
	edgeRepo    repos.SkillEdgeRepo
	resRepo     repos.CourseResourceRepo
	quizRepo    repos.SkillQuizRepo
}

func newCurriculumFixture(t *testing.T) (*curriculumFixture, context.Context) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)

	f := &curriculumFixture{
		roadmapRepo: repos.NewRoadmapRepo(gdb, log),
		courseRepo:  repos.NewCourseRepo(gdb, log),
		edgeRepo:    repos.NewSkillEdgeRepo(gdb, log),
		resRepo:     repos.NewCourseResourceRepo(gdb, log),
		quizRepo:    repos.NewSkillQuizRepo(gdb, log),
	}
	prereqRepo := repos.NewCoursePrerequisiteRepo(gdb, log)
	difficulty := NewDifficultyService(gdb, log, DefaultDifficultyConfig(), f.courseRepo, prereqRepo)
	graph := NewSkillGraphService(gdb, log, f.courseRepo, f.edgeRepo, repos.NewUserEventRepo(gdb, log))
	f.svc = NewCurriculumService(gdb, log, f.roadmapRepo, f.courseRepo, prereqRepo, f.resRepo, f.quizRepo, difficulty, graph)

	weightRepo := repos.NewSkillWeightRepo(gdb, log)
	scorer := NewAdaptiveScoreService(gdb, log, DefaultBlendConfig(),
		repos.NewUserSkillRepo(gdb, log), NewSynthesizerService(gdb, log, weightRepo), nil)
	f.paths = NewLearningPathService(gdb, log, f.courseRepo, prereqRepo, f.roadmapRepo, scorer)

	return f, context.Background()
}

func linearPayload() *RoadmapIngest {
	return &RoadmapIngest{
		RoadmapID: "go",
		Title:     "Go",
		Nodes: []NodeIngest{
			{NodeID: "a", Title: "Basics"},
			{NodeID: "b", Title: "Structs", Prerequisites: []string{"a"}},
			{NodeID: "c", Title: "Concurrency", Prerequisites: []string{"b"}},
		},
	}
}

func TestIngestRoadmapRanksAndMarksReady(t *testing.T) {
	f, ctx := newCurriculumFixture(t)

	roadmap, err := f.svc.IngestRoadmap(ctx, linearPayload())
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if !roadmap.Ready() {
		t.Fatal("roadmap not marked ready after ingest")
	}

	courses, err := f.courseRepo.GetByRoadmapID(ctx, nil, "go")
	if err != nil {
		t.Fatalf("load courses: %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("courses: want=3 got=%d", len(courses))
	}
	want := map[string]int{"go:a": 800, "go:b": 900, "go:c": 1000}
	for _, c := range courses {
		if c.DifficultyLevel == nil || *c.DifficultyLevel != want[c.ID] {
			t.Fatalf("difficulty[%s]: want=%d got=%v", c.ID, want[c.ID], c.DifficultyLevel)
		}
	}

	edges, err := f.edgeRepo.GetByRoadmapID(ctx, nil, "go")
	if err != nil {
		t.Fatalf("load edges: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("edges: want=2 got=%d", len(edges))
	}
}

func TestIngestRoadmapRejectsCycleBeforePersisting(t *testing.T) {
	f, ctx := newCurriculumFixture(t)

	payload := &RoadmapIngest{
		RoadmapID: "go",
		Nodes: []NodeIngest{
			{NodeID: "a", Prerequisites: []string{"b"}},
			{NodeID: "b", Prerequisites: []string{"a"}},
		},
	}
	_, err := f.svc.IngestRoadmap(ctx, payload)
	if !errors.Is(err, ErrMalformedGraph) {
		t.Fatalf("expected ErrMalformedGraph, got=%v", err)
	}

	roadmap, err := f.roadmapRepo.GetByID(ctx, nil, "go")
	if err != nil {
		t.Fatalf("load roadmap: %v", err)
	}
	if roadmap != nil {
		t.Fatal("cyclic ingest must not persist the roadmap")
	}
}

func TestIngestRoadmapEmptyPayload(t *testing.T) {
	f, ctx := newCurriculumFixture(t)
	if _, err := f.svc.IngestRoadmap(ctx, &RoadmapIngest{RoadmapID: "go"}); !errors.Is(err, ErrMalformedGraph) {
		t.Fatalf("expected ErrMalformedGraph, got=%v", err)
	}
}

func TestIngestRoadmapStoresResourcesAndQuiz(t *testing.T) {
	f, ctx := newCurriculumFixture(t)

	payload := &RoadmapIngest{
		RoadmapID: "go",
		Nodes: []NodeIngest{
			{
				NodeID: "a",
				Title:  "Basics",
				Resources: []ResourceIngest{
					{ResourceType: "video", Title: "Intro", URL: "https://example.com/intro", IsPrimary: true},
				},
				Quiz: &QuizIngest{
					Questions: []types.QuizQuestion{{ID: "q1", Question: "?", Options: []string{"a"}, CorrectAnswer: "a"}},
				},
			},
		},
	}
	if _, err := f.svc.IngestRoadmap(ctx, payload); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	resources, err := f.resRepo.GetByCourseID(ctx, nil, "go:a")
	if err != nil {
		t.Fatalf("load resources: %v", err)
	}
	if len(resources) != 1 {
		t.Fatalf("resources: want=1 got=%d", len(resources))
	}

	quiz, err := f.quizRepo.GetBySkillID(ctx, nil, "go:a")
	if err != nil {
		t.Fatalf("load quiz: %v", err)
	}
	if quiz == nil {
		t.Fatal("quiz not stored")
	}
	// Unset passing score falls back to the default.
	if quiz.PassingScore != 80 {
		t.Fatalf("passing score: want=80 got=%d", quiz.PassingScore)
	}
}

func TestReingestPreservesComputedDifficulty(t *testing.T) {
	f, ctx := newCurriculumFixture(t)

	if _, err := f.svc.IngestRoadmap(ctx, linearPayload()); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	payload := linearPayload()
	payload.Nodes[0].Title = "Basics v2"
	if _, err := f.svc.IngestRoadmap(ctx, payload); err != nil {
		t.Fatalf("re-ingest: %v", err)
	}

	course, err := f.courseRepo.GetByID(ctx, nil, "go:a")
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	if course.Title != "Basics v2" {
		t.Fatalf("title not updated: got=%q", course.Title)
	}
	if course.DifficultyLevel == nil || *course.DifficultyLevel != 800 {
		t.Fatalf("difficulty: want=800 got=%v", course.DifficultyLevel)
	}
}

func TestLearningPathOrderedAndAnnotated(t *testing.T) {
	f, ctx := newCurriculumFixture(t)

	if _, err := f.svc.IngestRoadmap(ctx, linearPayload()); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	path, err := f.paths.Path(ctx, uuid.New(), "go:c")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if !almostEqual(path.UserScore, 800) {
		t.Fatalf("score: want=800 got=%f", path.UserScore)
	}
	wantOrder := []string{"go:a", "go:b", "go:c"}
	if len(path.Path) != len(wantOrder) {
		t.Fatalf("path length: want=%d got=%d", len(wantOrder), len(path.Path))
	}
	wantStatus := map[string]string{
		// score 800, tolerance 100: 800 ready, 900 ready, 1000 locked.
		"go:a": PathStatusReady,
		"go:b": PathStatusReady,
		"go:c": PathStatusLocked,
	}
	for i, node := range path.Path {
		if node.ID != wantOrder[i] {
			t.Fatalf("order[%d]: want=%s got=%s", i, wantOrder[i], node.ID)
		}
		if node.Status != wantStatus[node.ID] {
			t.Fatalf("status[%s]: want=%q got=%q", node.ID, wantStatus[node.ID], node.Status)
		}
	}
}

func TestLearningPathRequiresReadyRoadmap(t *testing.T) {
	f, ctx := newCurriculumFixture(t)

	// Seed a roadmap whose difficulty ranker has never run.
	if err := f.roadmapRepo.Upsert(ctx, nil, &types.Roadmap{ID: "go", Title: "Go"}); err != nil {
		t.Fatalf("seed roadmap: %v", err)
	}
	if err := f.courseRepo.Upsert(ctx, nil, mkCourses("go", "a")); err != nil {
		t.Fatalf("seed course: %v", err)
	}

	_, err := f.paths.Path(ctx, uuid.New(), "go:a")
	if !errors.Is(err, ErrCurriculumNotReady) {
		t.Fatalf("expected ErrCurriculumNotReady, got=%v", err)
	}
}

func TestLearningPathUnknownCourse(t *testing.T) {
	f, ctx := newCurriculumFixture(t)
	_, err := f.paths.Path(ctx, uuid.New(), "go:missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}
