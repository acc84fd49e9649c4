package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillEdge is a roadmap-scoped prerequisite edge: FromSkillID must be
// completed before ToSkillID unlocks.
type SkillEdge struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoadmapID   string    `gorm:"not null;index;index:idx_roadmap_from;index:idx_roadmap_to;column:roadmap_id" json:"roadmap_id"`
	FromSkillID string    `gorm:"index:idx_roadmap_from;uniqueIndex:uniq_skill_edge;column:from_skill_id" json:"from_skill_id"`
	ToSkillID   string    `gorm:"index:idx_roadmap_to;uniqueIndex:uniq_skill_edge;column:to_skill_id" json:"to_skill_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (SkillEdge) TableName() string { return "skill_edge" }
