package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type SkillEdgeRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*types.SkillEdge) error
	GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID string) ([]*types.SkillEdge, error)
	GetByToSkillID(ctx context.Context, tx *gorm.DB, toSkillID string) ([]*types.SkillEdge, error)
}

type skillEdgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillEdgeRepo(db *gorm.DB, baseLog *logger.Logger) SkillEdgeRepo {
	return &skillEdgeRepo{db: db, log: baseLog.With("repo", "SkillEdgeRepo")}
}

func (r *skillEdgeRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*types.SkillEdge) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "from_skill_id"}, {Name: "to_skill_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

func (r *skillEdgeRepo) GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID string) ([]*types.SkillEdge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SkillEdge
	if roadmapID == "" {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("roadmap_id = ?", roadmapID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillEdgeRepo) GetByToSkillID(ctx context.Context, tx *gorm.DB, toSkillID string) ([]*types.SkillEdge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SkillEdge
	if toSkillID == "" {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("to_skill_id = ?", toSkillID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
