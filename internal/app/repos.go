package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
)

type Repos struct {
	User               repos.UserRepo
	UserToken          repos.UserTokenRepo
	Roadmap            repos.RoadmapRepo
	Course             repos.CourseRepo
	CoursePrerequisite repos.CoursePrerequisiteRepo
	SkillEdge          repos.SkillEdgeRepo
	CourseResource     repos.CourseResourceRepo
	SkillWeight        repos.SkillWeightRepo
	SkillProfile       repos.SkillProfileRepo
	UserSkill          repos.UserSkillRepo
	SkillQuiz          repos.SkillQuizRepo
	QuizAttempt        repos.QuizAttemptRepo
	UserEvent          repos.UserEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               repos.NewUserRepo(db, log),
		UserToken:          repos.NewUserTokenRepo(db, log),
		Roadmap:            repos.NewRoadmapRepo(db, log),
		Course:             repos.NewCourseRepo(db, log),
		CoursePrerequisite: repos.NewCoursePrerequisiteRepo(db, log),
		SkillEdge:          repos.NewSkillEdgeRepo(db, log),
		CourseResource:     repos.NewCourseResourceRepo(db, log),
		SkillWeight:        repos.NewSkillWeightRepo(db, log),
		SkillProfile:       repos.NewSkillProfileRepo(db, log),
		UserSkill:          repos.NewUserSkillRepo(db, log),
		SkillQuiz:          repos.NewSkillQuizRepo(db, log),
		QuizAttempt:        repos.NewQuizAttemptRepo(db, log),
		UserEvent:          repos.NewUserEventRepo(db, log),
	}
}
