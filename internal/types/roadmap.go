package types

import (
	"time"
)

// Roadmap is one named curriculum graph. DifficultyComputedAt is the
// readiness marker: unlock and path resolution only make sense once the
// difficulty ranker has run over the full ingested graph.
type Roadmap struct {
	ID                   string     `gorm:"primaryKey;column:id" json:"id"`
	Title                string     `gorm:"column:title" json:"title"`
	DifficultyComputedAt *time.Time `gorm:"column:difficulty_computed_at" json:"difficulty_computed_at,omitempty"`
	CreatedAt            time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"not null" json:"updated_at"`
}

func (Roadmap) TableName() string { return "roadmap" }

func (r *Roadmap) Ready() bool {
	return r != nil && r.DifficultyComputedAt != nil
}
