package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type CourseResourceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.CourseResource) ([]*types.CourseResource, error)
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID string) ([]*types.CourseResource, error)
}

type courseResourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseResourceRepo(db *gorm.DB, baseLog *logger.Logger) CourseResourceRepo {
	return &courseResourceRepo{db: db, log: baseLog.With("repo", "CourseResourceRepo")}
}

func (r *courseResourceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.CourseResource) ([]*types.CourseResource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.CourseResource{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *courseResourceRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID string) ([]*types.CourseResource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CourseResource
	if courseID == "" {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
