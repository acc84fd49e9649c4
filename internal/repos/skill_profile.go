package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type SkillProfileRepo interface {
	// Insert is a plain create so the unique (user_id, skill_id) index
	// can reject a concurrent first write; the caller recovers by
	// re-reading.
	Insert(ctx context.Context, tx *gorm.DB, row *types.SkillProfile) error
	GetByUserAndSkill(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillID string) (*types.SkillProfile, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.SkillProfile) error
}

type skillProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillProfileRepo(db *gorm.DB, baseLog *logger.Logger) SkillProfileRepo {
	return &skillProfileRepo{db: db, log: baseLog.With("repo", "SkillProfileRepo")}
}

func (r *skillProfileRepo) Insert(ctx context.Context, tx *gorm.DB, row *types.SkillProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.UserID == uuid.Nil || row.SkillID == "" {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return transaction.WithContext(ctx).Create(row).Error
}

func (r *skillProfileRepo) GetByUserAndSkill(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillID string) (*types.SkillProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil || skillID == "" {
		return nil, nil
	}
	var row types.SkillProfile
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
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

func (r *skillProfileRepo) Save(ctx context.Context, tx *gorm.DB, row *types.SkillProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.ID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}
