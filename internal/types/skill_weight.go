package types

import (
	"time"

	"github.com/google/uuid"
)

// Evidence source names. Each source gets at most one SkillWeight row per
// (user, skill) and overwrites it in place when it re-evaluates.
const (
	SourceGithub     = "github"
	SourceResume     = "resume"
	SourceQuiz       = "quiz"
	SourceEngagement = "engagement"
)

// SkillWeight is one source's independent estimate of a user's
// proficiency at a skill. Weight and Confidence are both in [0,1].
type SkillWeight struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey;index;column:user_id" json:"user_id"`
	SkillName   string    `gorm:"primaryKey;index;column:skill_name" json:"skill_name"`
	Source      string    `gorm:"primaryKey;column:source" json:"source"`
	Weight      float64   `gorm:"not null;column:weight" json:"weight"`
	Confidence  float64   `gorm:"not null;column:confidence" json:"confidence"`
	LastUpdated time.Time `gorm:"not null;column:last_updated" json:"last_updated"`
}

func (SkillWeight) TableName() string { return "skill_weight" }
