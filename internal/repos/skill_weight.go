package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type SkillWeightRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillWeight) error
	GetByUserAndSkill(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillName string) ([]*types.SkillWeight, error)
	GetByUserSkillSource(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillName, source string) (*types.SkillWeight, error)
}

type skillWeightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillWeightRepo(db *gorm.DB, baseLog *logger.Logger) SkillWeightRepo {
	return &skillWeightRepo{db: db, log: baseLog.With("repo", "SkillWeightRepo")}
}

// Upsert replaces the one row a source keeps per (user, skill). A single
// atomic statement, so readers never observe a half-written record.
func (r *skillWeightRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillWeight) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.UserID == uuid.Nil || row.SkillName == "" || row.Source == "" {
		return nil
	}
	if row.LastUpdated.IsZero() {
		row.LastUpdated = time.Now().UTC()
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_name"}, {Name: "source"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight", "confidence", "last_updated"}),
		}).
		Create(row).Error
}

func (r *skillWeightRepo) GetByUserAndSkill(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillName string) ([]*types.SkillWeight, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SkillWeight
	if userID == uuid.Nil || skillName == "" {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND skill_name = ?", userID, skillName).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillWeightRepo) GetByUserSkillSource(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillName, source string) (*types.SkillWeight, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil || skillName == "" || source == "" {
		return nil, nil
	}
	var row types.SkillWeight
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND skill_name = ? AND source = ?", userID, skillName, source).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.UserID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}
