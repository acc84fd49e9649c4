package types

import (
	"time"
)

// Course is one skill node in a roadmap. IDs are scoped as
// "<roadmap>:<node>". DifficultyLevel is derived by the difficulty
// ranker and never authored directly.
type Course struct {
	ID              string    `gorm:"primaryKey;column:id" json:"id"`
	RoadmapID       string    `gorm:"not null;index;column:roadmap_id" json:"roadmap_id"`
	NodeID          string    `gorm:"not null;column:node_id" json:"node_id"`
	Title           string    `gorm:"not null;column:title" json:"title"`
	Description     string    `gorm:"column:description" json:"description"`
	DifficultyLevel *int      `gorm:"column:difficulty_level" json:"difficulty_level"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

func (Course) TableName() string { return "course" }
