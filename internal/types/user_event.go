package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const EventCourseCompleted = "course_completed"

// UserEvent is append-only. The unique index over (user_id, course_id,
// type) makes completion emission an idempotent upsert instead of a
// query-then-insert race.
type UserEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_course_event;column:user_id" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Type      string         `gorm:"not null;index;uniqueIndex:idx_user_course_event;column:type" json:"type"`
	CourseID  string         `gorm:"index;uniqueIndex:idx_user_course_event;column:course_id" json:"course_id,omitempty"`
	RoadmapID string         `gorm:"index;column:roadmap_id" json:"roadmap_id,omitempty"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (UserEvent) TableName() string { return "user_event" }
