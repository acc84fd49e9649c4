package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizAttempt keeps the raw 0-100 percentage the grader produced; the
// 0-1 conversion happens where the score enters the adaptive profile.
type QuizAttempt struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	SkillID   string         `gorm:"not null;index;column:skill_id" json:"skill_id"`
	Skill     *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"-"`
	Score     float64        `gorm:"not null;column:score" json:"score"`
	Passed    bool           `gorm:"not null;column:passed" json:"passed"`
	Answers   datatypes.JSON `gorm:"column:answers" json:"answers"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }
