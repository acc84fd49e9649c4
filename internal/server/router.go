package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/skillpath-backend/internal/handlers"
	"github.com/yungbote/skillpath-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	UserHandler         *handlers.UserHandler
	CurriculumHandler   *handlers.CurriculumHandler
	LearningPathHandler *handlers.LearningPathHandler
	SkillGraphHandler   *handlers.SkillGraphHandler
	SkillProfileHandler *handlers.SkillProfileHandler
	QuizHandler         *handlers.QuizHandler
	EvidenceHandler     *handlers.EvidenceHandler
	ResumeHandler       *handlers.ResumeHandler
	GithubHandler       *handlers.GithubHandler
	ResourceHandler     *handlers.ResourceHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("skillpath-backend"))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)

	api := protected.Group("/api")
	// User
	api.GET("/me", cfg.UserHandler.GetMe)
	// Curriculum
	api.POST("/curriculum/roadmaps", cfg.CurriculumHandler.IngestRoadmap)
	api.POST("/curriculum/roadmaps/:roadmap_id/recompute-difficulty", cfg.CurriculumHandler.RecomputeDifficulty)
	api.GET("/courses", cfg.CurriculumHandler.ListCourses)
	api.GET("/courses/:course_id", cfg.CurriculumHandler.GetCourse)
	api.GET("/courses/:course_id/resources", cfg.ResourceHandler.GetRanked)
	// Path + graph
	api.GET("/learning-path/:course_id", cfg.LearningPathHandler.GetPath)
	api.GET("/skill-graph/:roadmap_id/status", cfg.SkillGraphHandler.GetStatus)
	// Profile + quiz
	api.GET("/skill-profile/:skill_id", cfg.SkillProfileHandler.GetProfile)
	api.GET("/quiz/:skill_id", cfg.QuizHandler.GetQuiz)
	api.POST("/quiz/:skill_id/submit", cfg.QuizHandler.SubmitAttempt)
	// Evidence
	api.POST("/evidence", cfg.EvidenceHandler.Ingest)
	api.GET("/evidence/:skill_name", cfg.EvidenceHandler.List)
	api.POST("/resume/text", cfg.ResumeHandler.IngestText)
	api.POST("/github/connect", cfg.UserHandler.ConnectGithub)
	api.POST("/github/sync", cfg.GithubHandler.Sync)

	return router
}
