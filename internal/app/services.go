package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/services"
)

type Services struct {
	Auth services.AuthService
	User services.UserService

	Curriculum   services.CurriculumService
	Difficulty   services.DifficultyService
	SkillGraph   services.SkillGraphService
	LearningPath services.LearningPathService

	Synthesizer   services.SynthesizerService
	SkillProfile  services.SkillProfileService
	AdaptiveScore services.AdaptiveScoreService

	Quiz     services.QuizService
	Evidence services.EvidenceService
	Resume   services.ResumeService
	Github   services.GithubSkillService
	Resource services.ResourceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, clients Clients) Services {
	log.Info("Wiring services...")

	authService := services.NewAuthService(
		db, log,
		r.User,
		r.UserToken,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	userService := services.NewUserService(db, log, r.User)

	difficultyService := services.NewDifficultyService(db, log, cfg.Difficulty, r.Course, r.CoursePrerequisite)
	skillGraphService := services.NewSkillGraphService(db, log, r.Course, r.SkillEdge, r.UserEvent)
	curriculumService := services.NewCurriculumService(
		db, log,
		r.Roadmap,
		r.Course,
		r.CoursePrerequisite,
		r.CourseResource,
		r.SkillQuiz,
		difficultyService,
		skillGraphService,
	)

	synthesizerService := services.NewSynthesizerService(db, log, r.SkillWeight)
	adaptiveScoreService := services.NewAdaptiveScoreService(db, log, cfg.Blend, r.UserSkill, synthesizerService, clients.ScoreCache)
	skillProfileService := services.NewSkillProfileService(db, log, r.SkillProfile, r.SkillWeight, r.Course)

	learningPathService := services.NewLearningPathService(db, log, r.Course, r.CoursePrerequisite, r.Roadmap, adaptiveScoreService)
	resourceService := services.NewResourceService(db, log, cfg.Blend, r.Course, r.CourseResource, adaptiveScoreService)

	quizService := services.NewQuizService(db, log, r.SkillQuiz, r.QuizAttempt, r.UserEvent, r.Course, skillProfileService, adaptiveScoreService)
	evidenceService := services.NewEvidenceService(db, log, r.SkillWeight, adaptiveScoreService)
	resumeService := services.NewResumeService(db, log, r.Course, r.SkillWeight, adaptiveScoreService)
	githubService := services.NewGithubSkillService(db, log, clients.Github, r.User, r.SkillWeight, adaptiveScoreService)

	return Services{
		Auth:          authService,
		User:          userService,
		Curriculum:    curriculumService,
		Difficulty:    difficultyService,
		SkillGraph:    skillGraphService,
		LearningPath:  learningPathService,
		Synthesizer:   synthesizerService,
		SkillProfile:  skillProfileService,
		AdaptiveScore: adaptiveScoreService,
		Quiz:          quizService,
		Evidence:      evidenceService,
		Resume:        resumeService,
		Github:        githubService,
		Resource:      resourceService,
	}
}
