package types

import (
	"time"

	"github.com/google/uuid"
)

type CourseResource struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID        string    `gorm:"not null;index;column:course_id" json:"course_id"`
	Course          *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"-"`
	ResourceType    string    `gorm:"not null;index;column:resource_type" json:"resource_type"`
	Title           string    `gorm:"not null;column:title" json:"title"`
	URL             string    `gorm:"not null;column:url" json:"url"`
	Platform        string    `gorm:"column:platform" json:"platform,omitempty"`
	DurationSeconds *int      `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	DifficultyLevel *int      `gorm:"column:difficulty_level" json:"difficulty_level,omitempty"`
	QualityScore    *float64  `gorm:"column:quality_score" json:"quality_score,omitempty"`
	IsPrimary       bool      `gorm:"column:is_primary" json:"is_primary"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

func (CourseResource) TableName() string { return "course_resource" }
