package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func mkResource(id string, difficulty *int, quality *float64) *types.CourseResource {
	return &types.CourseResource{
		ID:              uuid.New(),
		CourseID:        "go:a",
		ResourceType:    "video",
		Title:           id,
		URL:             "https://example.com/" + id,
		DifficultyLevel: difficulty,
		QualityScore:    quality,
	}
}

func TestRankByFitNearestDifficultyFirst(t *testing.T) {
	resources := []*types.CourseResource{
		mkResource("hard", intPtr(1400), nil),
		mkResource("easy", intPtr(700), nil),
		mkResource("match", intPtr(850), nil),
	}

	ranked := RankByFit(resources, 800, 800)
	if ranked[0].Title != "match" {
		t.Fatalf("first: want=match got=%s", ranked[0].Title)
	}
	if ranked[1].Title != "easy" {
		t.Fatalf("second: want=easy got=%s", ranked[1].Title)
	}
	if ranked[2].Title != "hard" {
		t.Fatalf("third: want=hard got=%s", ranked[2].Title)
	}
}

func TestRankByFitQualityBreaksTies(t *testing.T) {
	resources := []*types.CourseResource{
		mkResource("low quality", intPtr(900), floatPtr(0.3)),
		mkResource("high quality", intPtr(900), floatPtr(0.9)),
	}

	ranked := RankByFit(resources, 800, 800)
	if ranked[0].Title != "high quality" {
		t.Fatalf("first: want=high quality got=%s", ranked[0].Title)
	}
}

func TestRankByFitMissingDifficultyTreatedNeutral(t *testing.T) {
	resources := []*types.CourseResource{
		mkResource("far", intPtr(1500), nil),
		mkResource("unknown", nil, nil),
	}

	// Neutral 800 vs score 800 makes the unknown a perfect fit.
	ranked := RankByFit(resources, 800, 800)
	if ranked[0].Title != "unknown" {
		t.Fatalf("first: want=unknown got=%s", ranked[0].Title)
	}
}

func TestRankByFitDoesNotMutateInput(t *testing.T) {
	resources := []*types.CourseResource{
		mkResource("b", intPtr(1400), nil),
		mkResource("a", intPtr(800), nil),
	}
	RankByFit(resources, 800, 800)
	if resources[0].Title != "b" {
		t.Fatalf("input reordered: got first=%s", resources[0].Title)
	}
}

func TestRankedForCourse(t *testing.T) {
	gdb := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()
	userID := uuid.New()

	courseRepo := repos.NewCourseRepo(gdb, log)
	resourceRepo := repos.NewCourseResourceRepo(gdb, log)
	weightRepo := repos.NewSkillWeightRepo(gdb, log)
	scorer := NewAdaptiveScoreService(gdb, log, DefaultBlendConfig(),
		repos.NewUserSkillRepo(gdb, log), NewSynthesizerService(gdb, log, weightRepo), nil)
	svc := NewResourceService(gdb, log, DefaultBlendConfig(), courseRepo, resourceRepo, scorer)

	if err := courseRepo.Upsert(ctx, nil, mkCourses("go", "a")); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	resources := []*types.CourseResource{
		mkResource("nearby", intPtr(850), nil),
		mkResource("distant", intPtr(1600), nil),
	}
	if _, err := resourceRepo.Create(ctx, nil, resources); err != nil {
		t.Fatalf("seed resources: %v", err)
	}

	ranked, err := svc.RankedForCourse(ctx, userID, "go:a")
	if err != nil {
		t.Fatalf("ranked: %v", err)
	}
	if !almostEqual(ranked.AdaptiveScore, 800) {
		t.Fatalf("score: want=800 got=%f", ranked.AdaptiveScore)
	}
	if ranked.Primary == nil || ranked.Primary.Title != "nearby" {
		t.Fatalf("primary: want=nearby got=%+v", ranked.Primary)
	}
	if len(ranked.Additional) != 1 || ranked.Additional[0].Title != "distant" {
		t.Fatalf("additional: got=%+v", ranked.Additional)
	}
}

func TestRankedForCourseNoResources(t *testing.T) {
	gdb := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()

	courseRepo := repos.NewCourseRepo(gdb, log)
	weightRepo := repos.NewSkillWeightRepo(gdb, log)
	scorer := NewAdaptiveScoreService(gdb, log, DefaultBlendConfig(),
		repos.NewUserSkillRepo(gdb, log), NewSynthesizerService(gdb, log, weightRepo), nil)
	svc := NewResourceService(gdb, log, DefaultBlendConfig(), courseRepo,
		repos.NewCourseResourceRepo(gdb, log), scorer)

	if err := courseRepo.Upsert(ctx, nil, mkCourses("go", "a")); err != nil {
		t.Fatalf("seed course: %v", err)
	}

	ranked, err := svc.RankedForCourse(ctx, uuid.New(), "go:a")
	if err != nil {
		t.Fatalf("ranked: %v", err)
	}
	if ranked.Primary != nil {
		t.Fatalf("primary: want=nil got=%+v", ranked.Primary)
	}
	if len(ranked.Additional) != 0 {
		t.Fatalf("additional: want empty got=%d", len(ranked.Additional))
	}
}

func TestRankedForCourseUnknownCourse(t *testing.T) {
	gdb := newTestDB(t)
	log := newTestLogger(t)

	weightRepo := repos.NewSkillWeightRepo(gdb, log)
	scorer := NewAdaptiveScoreService(gdb, log, DefaultBlendConfig(),
		repos.NewUserSkillRepo(gdb, log), NewSynthesizerService(gdb, log, weightRepo), nil)
	svc := NewResourceService(gdb, log, DefaultBlendConfig(),
		repos.NewCourseRepo(gdb, log), repos.NewCourseResourceRepo(gdb, log), scorer)

	_, err := svc.RankedForCourse(context.Background(), uuid.New(), "go:missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}
