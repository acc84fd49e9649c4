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

// Tuning constants for the quiz-driven update. Each submission adds 0.2
// confidence, so quiz confidence saturates after five attempts; the new
// observation enters the EMA with weight 0.8 relative to accumulated
// confidence; cold-start signal keeps at most 0.3 of its strongest
// channel once quiz evidence exists.
const (
	quizSignalWeight        = 0.8
	quizConfidenceIncrement = 0.2
	coldStartRetention      = 0.3
)

type SkillProfileService interface {
	// GetProfile is the read API: resolves the skill, get-or-creates the
	// profile and runs cold-start initialization when no quiz evidence
	// has ever been applied.
	GetProfile(ctx context.Context, userID uuid.UUID, skillID string) (*types.SkillProfile, error)
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillID, roadmapID string) (*types.SkillProfile, error)
	InitializeColdStart(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillID string) (*types.SkillProfile, error)
	// ApplyQuizScore folds a raw 0-100 quiz percentage into the profile.
	// Runs inside the caller's transaction so attempt, profile and
	// completion event commit together.
	ApplyQuizScore(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillID, roadmapID string, scorePercent float64) (*types.SkillProfile, error)
}

type skillProfileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.SkillProfileRepo
	weightRepo  repos.SkillWeightRepo
	courseRepo  repos.CourseRepo
}

func NewSkillProfileService(
	db *gorm.DB,
	log *logger.Logger,
	profileRepo repos.SkillProfileRepo,
	weightRepo repos.SkillWeightRepo,
	courseRepo repos.CourseRepo,
) SkillProfileService {
	return &skillProfileService{
		db:          db,
		log:         log.With("service", "SkillProfileService"),
		profileRepo: profileRepo,
		weightRepo:  weightRepo,
		courseRepo:  courseRepo,
	}
}

func (s *skillProfileService) GetProfile(ctx context.Context, userID uuid.UUID, skillID string) (*types.SkillProfile, error) {
	course, err := s.courseRepo.GetByID(ctx, nil, skillID)
	if err != nil {
		return nil, fmt.Errorf("load skill %s: %w", skillID, err)
	}
	if course == nil {
		return nil, fmt.Errorf("skill %s: %w", skillID, ErrNotFound)
	}

	profile, err := s.GetOrCreate(ctx, nil, userID, skillID, course.RoadmapID)
	if err != nil {
		return nil, err
	}
	if profile.QuizConfidence == 0 {
		profile, err = s.InitializeColdStart(ctx, nil, userID, skillID)
		if err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// GetOrCreate must be safe under concurrent first creation: insert, and
// on a uniqueness violation re-read the row the other writer won with.
func (s *skillProfileService) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillID, roadmapID string) (*types.SkillProfile, error) {
	profile, err := s.profileRepo.GetByUserAndSkill(ctx, tx, userID, skillID)
	if err != nil {
		return nil, fmt.Errorf("load skill profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	fresh := &types.SkillProfile{
		ID:        uuid.New(),
		UserID:    userID,
		SkillID:   skillID,
		RoadmapID: roadmapID,
	}
	insertErr := s.profileRepo.Insert(ctx, tx, fresh)
	if insertErr == nil {
		return fresh, nil
	}

	// Concurrent insert; the unique index rejected ours, so the row now
	// exists.
	profile, err = s.profileRepo.GetByUserAndSkill(ctx, tx, userID, skillID)
	if err != nil {
		return nil, fmt.Errorf("re-read skill profile after conflict: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("insert skill profile: %w", insertErr)
	}
	s.log.Debug("Recovered from concurrent profile creation", "user_id", userID, "skill_id", skillID)
	return profile, nil
}

// InitializeColdStart bootstraps the profile from github/resume evidence.
// Guarded by quiz_confidence == 0: once any quiz evidence exists the
// cold start must never overwrite it.
func (s *skillProfileService) InitializeColdStart(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillID string) (*types.SkillProfile, error) {
	course, err := s.courseRepo.GetByID(ctx, tx, skillID)
	if err != nil {
		return nil, fmt.Errorf("load skill %s: %w", skillID, err)
	}
	if course == nil {
		return nil, fmt.Errorf("skill %s: %w", skillID, ErrNotFound)
	}

	profile, err := s.GetOrCreate(ctx, tx, userID, skillID, course.RoadmapID)
	if err != nil {
		return nil, err
	}
	if profile.QuizConfidence > 0 {
		return profile, nil
	}

	githubRow, err := s.weightRepo.GetByUserSkillSource(ctx, tx, userID, skillID, types.SourceGithub)
	if err != nil {
		return nil, fmt.Errorf("load github evidence: %w", err)
	}
	resumeRow, err := s.weightRepo.GetByUserSkillSource(ctx, tx, userID, skillID, types.SourceResume)
	if err != nil {
		return nil, fmt.Errorf("load resume evidence: %w", err)
	}

	var githubProf, githubConf, resumeProf, resumeConf float64
	if githubRow != nil {
		githubProf, githubConf = githubRow.Weight, githubRow.Confidence
	}
	if resumeRow != nil {
		resumeProf, resumeConf = resumeRow.Weight, resumeRow.Confidence
	}

	totalConf := githubConf + resumeConf
	if totalConf == 0 {
		// No evidence is not an error; the profile stays at its zero
		// defaults.
		return profile, nil
	}

	profile.GithubProficiency = githubProf
	profile.GithubConfidence = githubConf
	profile.ResumeProficiency = resumeProf
	profile.ResumeConfidence = resumeConf
	profile.ProficiencyLevel = (githubProf*githubConf + resumeProf*resumeConf) / totalConf
	profile.Confidence = max(githubConf, resumeConf)

	if err := s.profileRepo.Save(ctx, tx, profile); err != nil {
		return nil, fmt.Errorf("persist cold-start profile: %w", err)
	}
	return profile, nil
}

func (s *skillProfileService) ApplyQuizScore(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillID, roadmapID string, scorePercent float64) (*types.SkillProfile, error) {
	profile, err := s.GetOrCreate(ctx, tx, userID, skillID, roadmapID)
	if err != nil {
		return nil, err
	}

	applyQuizObservation(profile, scorePercent/100.0)

	if err := s.profileRepo.Save(ctx, tx, profile); err != nil {
		return nil, fmt.Errorf("persist quiz-updated profile: %w", err)
	}
	return profile, nil
}

// applyQuizObservation runs the EMA update in place. score01 is the quiz
// result already converted onto the profile's 0-1 scale.
func applyQuizObservation(profile *types.SkillProfile, score01 float64) {
	oldConfidence := profile.QuizConfidence
	oldProficiency := profile.QuizProficiency

	newConfidence := oldConfidence + quizConfidenceIncrement
	if newConfidence > 1 {
		newConfidence = 1
	}
	newProficiency := (oldProficiency*oldConfidence + score01*quizSignalWeight) / (oldConfidence + quizSignalWeight)

	coldWeight := max(profile.GithubConfidence, profile.ResumeConfidence) * coldStartRetention

	profile.QuizProficiency = newProficiency
	profile.QuizConfidence = newConfidence
	profile.ProficiencyLevel = (newProficiency*newConfidence + profile.ProficiencyLevel*coldWeight) / (newConfidence + coldWeight)
	profile.Confidence = max(newConfidence, coldWeight)
}

