package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

func TestGradeAnswers(t *testing.T) {
	questions := []types.QuizQuestion{
		{ID: "q1", CorrectAnswer: "a"},
		{ID: "q2", CorrectAnswer: "b"},
		{ID: "q3", CorrectAnswer: "c"},
		{ID: "q4", CorrectAnswer: "d"},
	}

	cases := []struct {
		name    string
		answers map[string]string
		want    float64
	}{
		{"all correct", map[string]string{"q1": "a", "q2": "b", "q3": "c", "q4": "d"}, 100},
		{"half correct", map[string]string{"q1": "a", "q2": "b", "q3": "x", "q4": "x"}, 50},
		{"none correct", map[string]string{"q1": "x"}, 0},
		{"missing answers count wrong", map[string]string{"q1": "a"}, 25},
		{"nil answers", nil, 0},
	}
	for _, tc := range cases {
		if got := GradeAnswers(questions, tc.answers); !almostEqual(got, tc.want) {
			t.Fatalf("%s: want=%f got=%f", tc.name, tc.want, got)
		}
	}
}

func TestGradeAnswersEmptyQuiz(t *testing.T) {
	if got := GradeAnswers(nil, nil); got != 100 {
		t.Fatalf("empty quiz: want=100 got=%f", got)
	}
}

type quizFixture struct {
	db          *gorm.DB
	svc         QuizService
	profileSvc  SkillProfileService
	attemptRepo repos.QuizAttemptRepo
	eventRepo   repos.UserEventRepo
	quizRepo    repos.SkillQuizRepo
	courseRepo  repos.CourseRepo
	profileRepo repos.SkillProfileRepo
}

func newQuizFixture(t *testing.T) (*quizFixture, context.Context) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()

	f := &quizFixture{
		db:          gdb,
		quizRepo:    repos.NewSkillQuizRepo(gdb, log),
		attemptRepo: repos.NewQuizAttemptRepo(gdb, log),
		eventRepo:   repos.NewUserEventRepo(gdb, log),
		courseRepo:  repos.NewCourseRepo(gdb, log),
		profileRepo: repos.NewSkillProfileRepo(gdb, log),
	}
	weightRepo := repos.NewSkillWeightRepo(gdb, log)
	f.profileSvc = NewSkillProfileService(gdb, log, f.profileRepo, weightRepo, f.courseRepo)
	scorer := NewAdaptiveScoreService(gdb, log, DefaultBlendConfig(),
		repos.NewUserSkillRepo(gdb, log), NewSynthesizerService(gdb, log, weightRepo), nil)
	f.svc = NewQuizService(gdb, log, f.quizRepo, f.attemptRepo, f.eventRepo, f.courseRepo, f.profileSvc, scorer)

	if err := f.courseRepo.Upsert(ctx, nil, mkCourses("go", "basics")); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	questions := []types.QuizQuestion{
		{ID: "q1", Question: "?", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{ID: "q2", Question: "?", Options: []string{"a", "b"}, CorrectAnswer: "b"},
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}
	err = f.quizRepo.Upsert(ctx, nil, &types.SkillQuiz{
		ID:           uuid.New(),
		SkillID:      "go:basics",
		Questions:    datatypes.JSON(raw),
		PassingScore: 80,
	})
	if err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return f, ctx
}

func TestGetQuizStripsCorrectAnswers(t *testing.T) {
	f, ctx := newQuizFixture(t)

	quiz, err := f.svc.GetQuiz(ctx, "go:basics")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("questions: want=2 got=%d", len(quiz.Questions))
	}
	for _, q := range quiz.Questions {
		if q.CorrectAnswer != "" {
			t.Fatalf("question %s leaked correct answer %q", q.ID, q.CorrectAnswer)
		}
	}
	if quiz.PassingScore != 80 {
		t.Fatalf("passing score: want=80 got=%d", quiz.PassingScore)
	}
}

func TestGetQuizUnknownSkill(t *testing.T) {
	f, ctx := newQuizFixture(t)
	_, err := f.svc.GetQuiz(ctx, "go:missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}

func TestSubmitAttemptPassRecordsEverything(t *testing.T) {
	f, ctx := newQuizFixture(t)
	userID := uuid.New()

	result, err := f.svc.SubmitAttempt(ctx, userID, "go:basics", map[string]string{"q1": "a", "q2": "b"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Passed || !almostEqual(result.Score, 100) {
		t.Fatalf("result: want passed 100, got passed=%v score=%f", result.Passed, result.Score)
	}

	attempts, err := f.attemptRepo.GetByUserAndSkill(ctx, nil, userID, "go:basics")
	if err != nil {
		t.Fatalf("load attempts: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("attempts: want=1 got=%d", len(attempts))
	}

	profile, err := f.profileRepo.GetByUserAndSkill(ctx, nil, userID, "go:basics")
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile == nil || !almostEqual(profile.QuizProficiency, 1.0) {
		t.Fatalf("profile quiz proficiency: want=1.0 got=%+v", profile)
	}

	done, err := f.eventRepo.HasCompletion(ctx, nil, userID, "go:basics")
	if err != nil {
		t.Fatalf("check completion: %v", err)
	}
	if !done {
		t.Fatal("expected a completion event on pass")
	}
}

func TestSubmitAttemptFailSkipsCompletion(t *testing.T) {
	f, ctx := newQuizFixture(t)
	userID := uuid.New()

	result, err := f.svc.SubmitAttempt(ctx, userID, "go:basics", map[string]string{"q1": "a", "q2": "x"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Passed {
		t.Fatalf("50%% on a pass mark of 80 must fail, got passed")
	}

	done, err := f.eventRepo.HasCompletion(ctx, nil, userID, "go:basics")
	if err != nil {
		t.Fatalf("check completion: %v", err)
	}
	if done {
		t.Fatal("failed attempt must not emit a completion event")
	}

	// The profile still absorbs the failed attempt.
	profile, err := f.profileRepo.GetByUserAndSkill(ctx, nil, userID, "go:basics")
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile == nil || !almostEqual(profile.QuizProficiency, 0.5) {
		t.Fatalf("profile quiz proficiency: want=0.5 got=%+v", profile)
	}
}

func TestSubmitAttemptRepeatPassDeduplicatesCompletion(t *testing.T) {
	f, ctx := newQuizFixture(t)
	userID := uuid.New()
	answers := map[string]string{"q1": "a", "q2": "b"}

	for i := 0; i < 2; i++ {
		if _, err := f.svc.SubmitAttempt(ctx, userID, "go:basics", answers); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	var count int64
	if err := f.db.Model(&types.UserEvent{}).
		Where("user_id = ? AND course_id = ?", userID, "go:basics").
		Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Fatalf("completion events: want=1 got=%d", count)
	}

	attempts, err := f.attemptRepo.GetByUserAndSkill(ctx, nil, userID, "go:basics")
	if err != nil {
		t.Fatalf("load attempts: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("attempts: want=2 got=%d", len(attempts))
	}
}

func TestSubmitAttemptUnknownSkill(t *testing.T) {
	f, ctx := newQuizFixture(t)
	_, err := f.svc.SubmitAttempt(ctx, uuid.New(), "go:missing", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}
