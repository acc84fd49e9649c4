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

type UserSkillRepo interface {
	GetByUserAndSkill(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillName string) (*types.UserSkill, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.UserSkill) error
}

type userSkillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSkillRepo(db *gorm.DB, baseLog *logger.Logger) UserSkillRepo {
	return &userSkillRepo{db: db, log: baseLog.With("repo", "UserSkillRepo")}
}

func (r *userSkillRepo) GetByUserAndSkill(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillName string) (*types.UserSkill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil || skillName == "" {
		return nil, nil
	}
	var row types.UserSkill
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND skill_name = ?", userID, skillName).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *userSkillRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserSkill) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.UserID == uuid.Nil || row.SkillName == "" {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.LastUpdated.IsZero() {
		row.LastUpdated = time.Now().UTC()
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"trust_score", "last_updated"}),
		}).
		Create(row).Error
}
