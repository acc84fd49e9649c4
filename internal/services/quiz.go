package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type QuizView struct {
	ID           uuid.UUID            `json:"id"`
	SkillID      string               `json:"skill_id"`
	Questions    []types.QuizQuestion `json:"questions"`
	PassingScore int                  `json:"passing_score"`
}

type QuizResult struct {
	AttemptID uuid.UUID `json:"attempt_id"`
	SkillID   string    `json:"skill_id"`
	Score     float64   `json:"score"`
	Passed    bool      `json:"passed"`
}

type QuizService interface {
	// GetQuiz returns the quiz with correct answers stripped.
	GetQuiz(ctx context.Context, skillID string) (*QuizView, error)
	// SubmitAttempt grades the answers and, in one transaction, records
	// the attempt, folds the score into the adaptive profile and emits
	// the completion event on a pass.
	SubmitAttempt(ctx context.Context, userID uuid.UUID, skillID string, answers map[string]string) (*QuizResult, error)
}

type quizService struct {
	db             *gorm.DB
	log            *logger.Logger
	quizRepo       repos.SkillQuizRepo
	attemptRepo    repos.QuizAttemptRepo
	eventRepo      repos.UserEventRepo
	courseRepo     repos.CourseRepo
	profileService SkillProfileService
	scorer         AdaptiveScoreService
}

func NewQuizService(
	db *gorm.DB,
	log *logger.Logger,
	quizRepo repos.SkillQuizRepo,
	attemptRepo repos.QuizAttemptRepo,
	eventRepo repos.UserEventRepo,
	courseRepo repos.CourseRepo,
	profileService SkillProfileService,
	scorer AdaptiveScoreService,
) QuizService {
	return &quizService{
		db:             db,
		log:            log.With("service", "QuizService"),
		quizRepo:       quizRepo,
		attemptRepo:    attemptRepo,
		eventRepo:      eventRepo,
		courseRepo:     courseRepo,
		profileService: profileService,
		scorer:         scorer,
	}
}

func (s *quizService) GetQuiz(ctx context.Context, skillID string) (*QuizView, error) {
	quiz, err := s.quizRepo.GetBySkillID(ctx, nil, skillID)
	if err != nil {
		return nil, fmt.Errorf("load quiz for skill %s: %w", skillID, err)
	}
	if quiz == nil {
		return nil, fmt.Errorf("quiz for skill %s: %w", skillID, ErrNotFound)
	}

	questions, err := parseQuestions(quiz.Questions)
	if err != nil {
		return nil, fmt.Errorf("parse quiz questions for skill %s: %w", skillID, err)
	}
	for i := range questions {
		questions[i].CorrectAnswer = ""
	}
	return &QuizView{
		ID:           quiz.ID,
		SkillID:      quiz.SkillID,
		Questions:    questions,
		PassingScore: quiz.PassingScore,
	}, nil
}

func (s *quizService) SubmitAttempt(ctx context.Context, userID uuid.UUID, skillID string, answers map[string]string) (*QuizResult, error) {
	quiz, err := s.quizRepo.GetBySkillID(ctx, nil, skillID)
	if err != nil {
		return nil, fmt.Errorf("load quiz for skill %s: %w", skillID, err)
	}
	if quiz == nil {
		return nil, fmt.Errorf("quiz for skill %s: %w", skillID, ErrNotFound)
	}
	course, err := s.courseRepo.GetByID(ctx, nil, skillID)
	if err != nil {
		return nil, fmt.Errorf("load course %s: %w", skillID, err)
	}
	if course == nil {
		return nil, fmt.Errorf("skill %s: %w", skillID, ErrNotFound)
	}

	questions, err := parseQuestions(quiz.Questions)
	if err != nil {
		return nil, fmt.Errorf("parse quiz questions for skill %s: %w", skillID, err)
	}
	score := GradeAnswers(questions, answers)
	passed := score >= float64(quiz.PassingScore)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	attempt := &types.QuizAttempt{
		ID:      uuid.New(),
		UserID:  userID,
		SkillID: skillID,
		Score:   score,
		Passed:  passed,
		Answers: datatypes.JSON(answersJSON),
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.attemptRepo.Create(ctx, tx, attempt); err != nil {
			return fmt.Errorf("record quiz attempt: %w", err)
		}
		if _, err := s.profileService.ApplyQuizScore(ctx, tx, userID, skillID, course.RoadmapID, score); err != nil {
			return err
		}
		if passed {
			payload, _ := json.Marshal(map[string]interface{}{
				"score":      score,
				"attempt_id": attempt.ID,
			})
			event := &types.UserEvent{
				UserID:    userID,
				CourseID:  skillID,
				RoadmapID: course.RoadmapID,
				Payload:   datatypes.JSON(payload),
			}
			if err := s.eventRepo.UpsertCompletion(ctx, tx, event); err != nil {
				return fmt.Errorf("record completion event: %w", err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.scorer.Invalidate(ctx, userID, course.RoadmapID)
	s.log.Info("Quiz attempt recorded", "user_id", userID, "skill_id", skillID, "score", score, "passed", passed)

	return &QuizResult{
		AttemptID: attempt.ID,
		SkillID:   skillID,
		Score:     score,
		Passed:    passed,
	}, nil
}

// GradeAnswers scores an answer map against the stored questions on the
// raw 0-100 scale. An empty quiz grades as a pass at 100.
func GradeAnswers(questions []types.QuizQuestion, answers map[string]string) float64 {
	if len(questions) == 0 {
		return 100
	}
	correct := 0
	for _, q := range questions {
		if answers[q.ID] == q.CorrectAnswer {
			correct++
		}
	}
	return float64(correct) / float64(len(questions)) * 100
}

func parseQuestions(raw datatypes.JSON) ([]types.QuizQuestion, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var questions []types.QuizQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
