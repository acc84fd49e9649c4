package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type RoadmapRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.Roadmap) error
	GetByID(ctx context.Context, tx *gorm.DB, roadmapID string) (*types.Roadmap, error)
	MarkDifficultyComputed(ctx context.Context, tx *gorm.DB, roadmapID string, at time.Time) error
}

type roadmapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	return &roadmapRepo{db: db, log: baseLog.With("repo", "RoadmapRepo")}
}

func (r *roadmapRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.Roadmap) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.ID == "" {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "updated_at"}),
		}).
		Create(row).Error
}

func (r *roadmapRepo) GetByID(ctx context.Context, tx *gorm.DB, roadmapID string) (*types.Roadmap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if roadmapID == "" {
		return nil, nil
	}
	var row types.Roadmap
	err := transaction.WithContext(ctx).
		Where("id = ?", roadmapID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, nil
	}
	return &row, nil
}

func (r *roadmapRepo) MarkDifficultyComputed(ctx context.Context, tx *gorm.DB, roadmapID string, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if roadmapID == "" {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Roadmap{}).
		Where("id = ?", roadmapID).
		Update("difficulty_computed_at", at).Error
}
