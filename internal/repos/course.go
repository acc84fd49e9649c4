package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type CourseRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*types.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Course, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Course, error)
	GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID string) ([]*types.Course, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Course, error)
	UpdateDifficulties(ctx context.Context, tx *gorm.DB, levels map[string]int) error
	DistinctRoadmapIDs(ctx context.Context, tx *gorm.DB) ([]string, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*types.Course) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	// Difficulty is ranker-owned; re-ingestion must not clobber it.
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description"}),
		}).
		Create(&rows).Error
}

func (r *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == "" {
		return nil, nil
	}
	var row types.Course
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
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

func (r *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Course
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID string) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Course
	if roadmapID == "" {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("roadmap_id = ?", roadmapID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Course
	if err := transaction.WithContext(ctx).
		Order("roadmap_id, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) UpdateDifficulties(ctx context.Context, tx *gorm.DB, levels map[string]int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(levels) == 0 {
		return nil
	}
	for id, level := range levels {
		if err := transaction.WithContext(ctx).
			Model(&types.Course{}).
			Where("id = ?", id).
			Update("difficulty_level", level).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *courseRepo) DistinctRoadmapIDs(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []string
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Distinct("roadmap_id").
		Pluck("roadmap_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
