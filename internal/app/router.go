package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillpath-backend/internal/server"
)

func wireRouter(h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:         h.Auth,
		AuthMiddleware:      m.Auth,
		UserHandler:         h.User,
		CurriculumHandler:   h.Curriculum,
		LearningPathHandler: h.LearningPath,
		SkillGraphHandler:   h.SkillGraph,
		SkillProfileHandler: h.SkillProfile,
		QuizHandler:         h.Quiz,
		EvidenceHandler:     h.Evidence,
		ResumeHandler:       h.Resume,
		GithubHandler:       h.Github,
		ResourceHandler:     h.Resource,
	})
}
