package types

import (
	"time"

	"github.com/google/uuid"
)

// UserSkill carries the legacy roadmap-level trust score consumed by the
// adaptive score blend. It is tracked independently of SkillProfile.
type UserSkill struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_skill;column:user_id" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	SkillName   string    `gorm:"not null;uniqueIndex:idx_user_skill;column:skill_name" json:"skill_name"`
	TrustScore  float64   `gorm:"not null;column:trust_score" json:"trust_score"`
	LastUpdated time.Time `gorm:"not null;column:last_updated" json:"last_updated"`
}

func (UserSkill) TableName() string { return "user_skill" }
