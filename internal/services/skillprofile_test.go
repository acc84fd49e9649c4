package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type profileFixture struct {
	svc         SkillProfileService
	courseRepo  repos.CourseRepo
	weightRepo  repos.SkillWeightRepo
	profileRepo repos.SkillProfileRepo
}

func newProfileFixture(t *testing.T) (*profileFixture, context.Context) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()

	f := &profileFixture{
		courseRepo:  repos.NewCourseRepo(gdb, log),
		weightRepo:  repos.NewSkillWeightRepo(gdb, log),
		profileRepo: repos.NewSkillProfileRepo(gdb, log),
	}
	f.svc = NewSkillProfileService(gdb, log, f.profileRepo, f.weightRepo, f.courseRepo)

	if err := f.courseRepo.Upsert(ctx, nil, mkCourses("go", "basics")); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return f, ctx
}

func (f *profileFixture) seedEvidence(t *testing.T, ctx context.Context, userID uuid.UUID, source string, weight, conf float64) {
	t.Helper()
	err := f.weightRepo.Upsert(ctx, nil, &types.SkillWeight{
		UserID:      userID,
		SkillName:   "go:basics",
		Source:      source,
		Weight:      weight,
		Confidence:  conf,
		LastUpdated: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed evidence: %v", err)
	}
}

func TestGetProfileUnknownSkill(t *testing.T) {
	f, ctx := newProfileFixture(t)
	_, err := f.svc.GetProfile(ctx, uuid.New(), "go:missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}

func TestGetProfileCreatesAndColdStarts(t *testing.T) {
	f, ctx := newProfileFixture(t)
	userID := uuid.New()
	f.seedEvidence(t, ctx, userID, types.SourceGithub, 0.8, 0.5)
	f.seedEvidence(t, ctx, userID, types.SourceResume, 0.6, 1.0)

	profile, err := f.svc.GetProfile(ctx, userID, "go:basics")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}

	// (0.8*0.5 + 0.6*1.0) / (0.5 + 1.0)
	wantProf := (0.8*0.5 + 0.6*1.0) / 1.5
	if !almostEqual(profile.ProficiencyLevel, wantProf) {
		t.Fatalf("proficiency: want=%f got=%f", wantProf, profile.ProficiencyLevel)
	}
	if !almostEqual(profile.Confidence, 1.0) {
		t.Fatalf("confidence: want=1.0 got=%f", profile.Confidence)
	}
	if profile.QuizConfidence != 0 {
		t.Fatalf("quiz confidence: want=0 got=%f", profile.QuizConfidence)
	}
}

func TestGetProfileNoEvidenceStaysZero(t *testing.T) {
	f, ctx := newProfileFixture(t)

	profile, err := f.svc.GetProfile(ctx, uuid.New(), "go:basics")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.ProficiencyLevel != 0 || profile.Confidence != 0 {
		t.Fatalf("expected zero defaults, got prof=%f conf=%f", profile.ProficiencyLevel, profile.Confidence)
	}
}

func TestColdStartGuardedByQuizEvidence(t *testing.T) {
	f, ctx := newProfileFixture(t)
	userID := uuid.New()

	// First quiz observation fixes quiz state.
	if _, err := f.svc.ApplyQuizScore(ctx, nil, userID, "go:basics", "go", 60); err != nil {
		t.Fatalf("apply quiz: %v", err)
	}
	before, err := f.svc.GetProfile(ctx, userID, "go:basics")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}

	// Evidence arriving afterwards must not trigger a cold start reset.
	f.seedEvidence(t, ctx, userID, types.SourceGithub, 0.9, 0.9)
	after, err := f.svc.GetProfile(ctx, userID, "go:basics")
	if err != nil {
		t.Fatalf("get profile again: %v", err)
	}
	if !almostEqual(before.ProficiencyLevel, after.ProficiencyLevel) {
		t.Fatalf("cold start overwrote quiz state: before=%f after=%f", before.ProficiencyLevel, after.ProficiencyLevel)
	}
	if after.GithubConfidence != 0 {
		t.Fatalf("github channel should stay untouched after quiz, got=%f", after.GithubConfidence)
	}
}

func TestApplyQuizScoreFirstObservation(t *testing.T) {
	f, ctx := newProfileFixture(t)
	userID := uuid.New()

	profile, err := f.svc.ApplyQuizScore(ctx, nil, userID, "go:basics", "go", 60)
	if err != nil {
		t.Fatalf("apply quiz: %v", err)
	}

	if !almostEqual(profile.QuizConfidence, 0.2) {
		t.Fatalf("quiz confidence: want=0.2 got=%f", profile.QuizConfidence)
	}
	// (0*0 + 0.6*0.8) / (0 + 0.8) = 0.6
	if !almostEqual(profile.QuizProficiency, 0.6) {
		t.Fatalf("quiz proficiency: want=0.6 got=%f", profile.QuizProficiency)
	}
	// No cold-start channels: overall = quiz channel exactly.
	if !almostEqual(profile.ProficiencyLevel, 0.6) {
		t.Fatalf("overall: want=0.6 got=%f", profile.ProficiencyLevel)
	}
	if !almostEqual(profile.Confidence, 0.2) {
		t.Fatalf("confidence: want=0.2 got=%f", profile.Confidence)
	}
}

func TestApplyQuizScoreBlendsWithColdStart(t *testing.T) {
	f, ctx := newProfileFixture(t)
	userID := uuid.New()
	f.seedEvidence(t, ctx, userID, types.SourceGithub, 0.8, 0.5)

	// Cold start first; read initializes the channels.
	before, err := f.svc.GetProfile(ctx, userID, "go:basics")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !almostEqual(before.ProficiencyLevel, 0.8) {
		t.Fatalf("cold start prof: want=0.8 got=%f", before.ProficiencyLevel)
	}

	profile, err := f.svc.ApplyQuizScore(ctx, nil, userID, "go:basics", "go", 60)
	if err != nil {
		t.Fatalf("apply quiz: %v", err)
	}

	coldWeight := 0.5 * 0.3
	want := (0.6*0.2 + 0.8*coldWeight) / (0.2 + coldWeight)
	if !almostEqual(profile.ProficiencyLevel, want) {
		t.Fatalf("overall: want=%f got=%f", want, profile.ProficiencyLevel)
	}
	if !almostEqual(profile.Confidence, 0.2) {
		t.Fatalf("confidence: want=0.2 got=%f", profile.Confidence)
	}
}

func TestApplyQuizScoreConfidenceSaturates(t *testing.T) {
	f, ctx := newProfileFixture(t)
	userID := uuid.New()

	var profile *types.SkillProfile
	var err error
	for i := 0; i < 6; i++ {
		profile, err = f.svc.ApplyQuizScore(ctx, nil, userID, "go:basics", "go", 80)
		if err != nil {
			t.Fatalf("apply quiz %d: %v", i, err)
		}
	}
	if profile.QuizConfidence != 1 {
		t.Fatalf("quiz confidence: want=1 got=%f", profile.QuizConfidence)
	}
	if !almostEqual(profile.QuizProficiency, 0.8) {
		t.Fatalf("quiz proficiency: want=0.8 got=%f", profile.QuizProficiency)
	}
}

func TestApplyQuizScorePersists(t *testing.T) {
	f, ctx := newProfileFixture(t)
	userID := uuid.New()

	if _, err := f.svc.ApplyQuizScore(ctx, nil, userID, "go:basics", "go", 50); err != nil {
		t.Fatalf("apply quiz: %v", err)
	}
	stored, err := f.profileRepo.GetByUserAndSkill(ctx, nil, userID, "go:basics")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored == nil {
		t.Fatal("profile not persisted")
	}
	if !almostEqual(stored.QuizProficiency, 0.5) {
		t.Fatalf("stored quiz proficiency: want=0.5 got=%f", stored.QuizProficiency)
	}
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	f, ctx := newProfileFixture(t)
	userID := uuid.New()

	first, err := f.svc.GetOrCreate(ctx, nil, userID, "go:basics", "go")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	second, err := f.svc.GetOrCreate(ctx, nil, userID, "go:basics", "go")
	if err != nil {
		t.Fatalf("get or create again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same row, got %s and %s", first.ID, second.ID)
	}
}
