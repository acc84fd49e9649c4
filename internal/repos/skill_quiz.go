package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type SkillQuizRepo interface {
	GetBySkillID(ctx context.Context, tx *gorm.DB, skillID string) (*types.SkillQuiz, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillQuiz) error
}

type skillQuizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillQuizRepo(db *gorm.DB, baseLog *logger.Logger) SkillQuizRepo {
	return &skillQuizRepo{db: db, log: baseLog.With("repo", "SkillQuizRepo")}
}

func (r *skillQuizRepo) GetBySkillID(ctx context.Context, tx *gorm.DB, skillID string) (*types.SkillQuiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if skillID == "" {
		return nil, nil
	}
	var row types.SkillQuiz
	err := transaction.WithContext(ctx).
		Where("skill_id = ?", skillID).
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

func (r *skillQuizRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillQuiz) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.SkillID == "" {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "skill_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"questions", "passing_score"}),
		}).
		Create(row).Error
}
