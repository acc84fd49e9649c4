package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillProfile is the authoritative per-(user, skill) proficiency record.
// Every proficiency and confidence field is in [0,1]; the raw 0-100 quiz
// percentage is converted at the service boundary before it touches this
// row.
type SkillProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_skill_profile;column:user_id" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	SkillID   string    `gorm:"not null;uniqueIndex:idx_user_skill_profile;column:skill_id" json:"skill_id"`
	RoadmapID string    `gorm:"not null;index;column:roadmap_id" json:"roadmap_id"`

	ProficiencyLevel float64 `gorm:"not null;column:proficiency_level" json:"proficiency_level"`
	Confidence       float64 `gorm:"not null;column:confidence" json:"confidence"`

	QuizProficiency   float64 `gorm:"not null;column:quiz_proficiency" json:"quiz_proficiency"`
	QuizConfidence    float64 `gorm:"not null;column:quiz_confidence" json:"quiz_confidence"`
	GithubProficiency float64 `gorm:"not null;column:github_proficiency" json:"github_proficiency"`
	GithubConfidence  float64 `gorm:"not null;column:github_confidence" json:"github_confidence"`
	ResumeProficiency float64 `gorm:"not null;column:resume_proficiency" json:"resume_proficiency"`
	ResumeConfidence  float64 `gorm:"not null;column:resume_confidence" json:"resume_confidence"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (SkillProfile) TableName() string { return "skill_profile" }
