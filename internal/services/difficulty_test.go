package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

func mkCourses(roadmapID string, nodeIDs ...string) []*types.Course {
	out := make([]*types.Course, 0, len(nodeIDs))
	for _, n := range nodeIDs {
		out = append(out, &types.Course{
			ID:        CourseID(roadmapID, n),
			RoadmapID: roadmapID,
			NodeID:    n,
			Title:     n,
		})
	}
	return out
}

func mkPrereq(roadmapID, course, prereq string) *types.CoursePrerequisite {
	return &types.CoursePrerequisite{
		CourseID:       CourseID(roadmapID, course),
		PrerequisiteID: CourseID(roadmapID, prereq),
	}
}

func TestRankDifficultyLinearChain(t *testing.T) {
	courses := mkCourses("go", "a", "b", "c")
	prereqs := []*types.CoursePrerequisite{
		mkPrereq("go", "b", "a"),
		mkPrereq("go", "c", "b"),
	}

	levels, err := RankDifficulty(courses, prereqs, DefaultDifficultyConfig())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	want := map[string]int{
		"go:a": 800,
		"go:b": 900,
		"go:c": 1000,
	}
	for id, level := range want {
		if levels[id] != level {
			t.Fatalf("level[%s]: want=%d got=%d", id, level, levels[id])
		}
	}
}

func TestRankDifficultyDiamondTakesLongestPath(t *testing.T) {
	// a -> b -> d and a -> d; d must sit two steps above a.
	courses := mkCourses("go", "a", "b", "d")
	prereqs := []*types.CoursePrerequisite{
		mkPrereq("go", "b", "a"),
		mkPrereq("go", "d", "b"),
		mkPrereq("go", "d", "a"),
	}

	levels, err := RankDifficulty(courses, prereqs, DefaultDifficultyConfig())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if levels["go:d"] != 1000 {
		t.Fatalf("level[go:d]: want=1000 got=%d", levels["go:d"])
	}
}

func TestRankDifficultyMonotoneOverEdges(t *testing.T) {
	courses := mkCourses("go", "a", "b", "c", "d", "e")
	prereqs := []*types.CoursePrerequisite{
		mkPrereq("go", "b", "a"),
		mkPrereq("go", "c", "a"),
		mkPrereq("go", "d", "b"),
		mkPrereq("go", "d", "c"),
		mkPrereq("go", "e", "d"),
	}
	cfg := DefaultDifficultyConfig()

	levels, err := RankDifficulty(courses, prereqs, cfg)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	for _, p := range prereqs {
		if levels[p.CourseID] < levels[p.PrerequisiteID]+cfg.Step {
			t.Fatalf("edge %s->%s: dependent=%d prerequisite=%d",
				p.PrerequisiteID, p.CourseID, levels[p.CourseID], levels[p.PrerequisiteID])
		}
	}
}

func TestRankDifficultyCycle(t *testing.T) {
	courses := mkCourses("go", "a", "b")
	prereqs := []*types.CoursePrerequisite{
		mkPrereq("go", "b", "a"),
		mkPrereq("go", "a", "b"),
	}

	_, err := RankDifficulty(courses, prereqs, DefaultDifficultyConfig())
	if !errors.Is(err, ErrMalformedGraph) {
		t.Fatalf("expected ErrMalformedGraph, got=%v", err)
	}
}

func TestRankDifficultyIgnoresUnknownEdgeEndpoints(t *testing.T) {
	courses := mkCourses("go", "a", "b")
	prereqs := []*types.CoursePrerequisite{
		mkPrereq("go", "b", "a"),
		mkPrereq("go", "b", "ghost"),
	}

	levels, err := RankDifficulty(courses, prereqs, DefaultDifficultyConfig())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if levels["go:b"] != 900 {
		t.Fatalf("level[go:b]: want=900 got=%d", levels["go:b"])
	}
}

func TestRankDifficultyCustomConfig(t *testing.T) {
	courses := mkCourses("go", "a", "b")
	prereqs := []*types.CoursePrerequisite{mkPrereq("go", "b", "a")}

	levels, err := RankDifficulty(courses, prereqs, DifficultyConfig{Base: 1000, Step: 50})
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if levels["go:a"] != 1000 || levels["go:b"] != 1050 {
		t.Fatalf("levels: got a=%d b=%d", levels["go:a"], levels["go:b"])
	}
}

func TestComputeForRoadmapPersistsLevels(t *testing.T) {
	gdb := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()

	courseRepo := repos.NewCourseRepo(gdb, log)
	prereqRepo := repos.NewCoursePrerequisiteRepo(gdb, log)

	if err := courseRepo.Upsert(ctx, nil, mkCourses("go", "a", "b")); err != nil {
		t.Fatalf("seed courses: %v", err)
	}
	if err := prereqRepo.Upsert(ctx, nil, []*types.CoursePrerequisite{mkPrereq("go", "b", "a")}); err != nil {
		t.Fatalf("seed prereqs: %v", err)
	}

	svc := NewDifficultyService(gdb, log, DefaultDifficultyConfig(), courseRepo, prereqRepo)
	if err := svc.ComputeForRoadmap(ctx, "go"); err != nil {
		t.Fatalf("compute: %v", err)
	}

	course, err := courseRepo.GetByID(ctx, nil, "go:b")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if course.DifficultyLevel == nil || *course.DifficultyLevel != 900 {
		t.Fatalf("difficulty: want=900 got=%v", course.DifficultyLevel)
	}
}

func TestComputeForRoadmapUnknownRoadmap(t *testing.T) {
	gdb := newTestDB(t)
	log := newTestLogger(t)

	svc := NewDifficultyService(gdb, log, DefaultDifficultyConfig(),
		repos.NewCourseRepo(gdb, log), repos.NewCoursePrerequisiteRepo(gdb, log))
	err := svc.ComputeForRoadmap(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}
