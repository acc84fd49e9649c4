package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type CoursePrerequisiteRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*types.CoursePrerequisite) error
	GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []string) ([]*types.CoursePrerequisite, error)
	GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID string) ([]*types.CoursePrerequisite, error)
}

type coursePrerequisiteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoursePrerequisiteRepo(db *gorm.DB, baseLog *logger.Logger) CoursePrerequisiteRepo {
	return &coursePrerequisiteRepo{db: db, log: baseLog.With("repo", "CoursePrerequisiteRepo")}
}

func (r *coursePrerequisiteRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*types.CoursePrerequisite) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}, {Name: "prerequisite_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

func (r *coursePrerequisiteRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []string) ([]*types.CoursePrerequisite, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CoursePrerequisite
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *coursePrerequisiteRepo) GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID string) ([]*types.CoursePrerequisite, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CoursePrerequisite
	if roadmapID == "" {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Joins("JOIN course ON course.id = course_prerequisite.course_id").
		Where("course.roadmap_id = ?", roadmapID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
