package app

import (
	"github.com/yungbote/skillpath-backend/internal/handlers"
	"github.com/yungbote/skillpath-backend/internal/logger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Curriculum   *handlers.CurriculumHandler
	LearningPath *handlers.LearningPathHandler
	SkillGraph   *handlers.SkillGraphHandler
	SkillProfile *handlers.SkillProfileHandler
	Quiz         *handlers.QuizHandler
	Evidence     *handlers.EvidenceHandler
	Resume       *handlers.ResumeHandler
	Github       *handlers.GithubHandler
	Resource     *handlers.ResourceHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:         handlers.NewAuthHandler(s.Auth),
		User:         handlers.NewUserHandler(log, s.User),
		Curriculum:   handlers.NewCurriculumHandler(log, s.Curriculum),
		LearningPath: handlers.NewLearningPathHandler(log, s.LearningPath),
		SkillGraph:   handlers.NewSkillGraphHandler(log, s.SkillGraph),
		SkillProfile: handlers.NewSkillProfileHandler(log, s.SkillProfile),
		Quiz:         handlers.NewQuizHandler(log, s.Quiz),
		Evidence:     handlers.NewEvidenceHandler(log, s.Evidence),
		Resume:       handlers.NewResumeHandler(log, s.Resume),
		Github:       handlers.NewGithubHandler(log, s.Github),
		Resource:     handlers.NewResourceHandler(log, s.Resource),
	}
}
