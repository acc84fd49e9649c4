package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizQuestion is the fixed question shape stored inside
// SkillQuiz.Questions.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}

type SkillQuiz struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SkillID      string         `gorm:"not null;uniqueIndex;column:skill_id" json:"skill_id"`
	Skill        *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"-"`
	Questions    datatypes.JSON `gorm:"column:questions;not null" json:"questions"`
	PassingScore int            `gorm:"not null;column:passing_score" json:"passing_score"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
}

func (SkillQuiz) TableName() string { return "skill_quiz" }
