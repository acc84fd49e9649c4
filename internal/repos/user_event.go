package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type UserEventRepo interface {
	// UpsertCompletion emits at most one course_completed fact per
	// (user, course); replays hit the unique index and do nothing.
	UpsertCompletion(ctx context.Context, tx *gorm.DB, row *types.UserEvent) error
	GetCompletedCourseIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, roadmapID string) ([]string, error)
	HasCompletion(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseID string) (bool, error)
}

type userEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserEventRepo(db *gorm.DB, baseLog *logger.Logger) UserEventRepo {
	return &userEventRepo{db: db, log: baseLog.With("repo", "UserEventRepo")}
}

func (r *userEventRepo) UpsertCompletion(ctx context.Context, tx *gorm.DB, row *types.UserEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.UserID == uuid.Nil || row.CourseID == "" {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.Type = types.EventCourseCompleted
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(row).Error
}

func (r *userEventRepo) GetCompletedCourseIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, roadmapID string) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []string
	if userID == uuid.Nil || roadmapID == "" {
		return ids, nil
	}
	if err := transaction.WithContext(ctx).
		Model(&types.UserEvent{}).
		Where("user_id = ? AND roadmap_id = ? AND type = ?", userID, roadmapID, types.EventCourseCompleted).
		Pluck("course_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userEventRepo) HasCompletion(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil || courseID == "" {
		return false, nil
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserEvent{}).
		Where("user_id = ? AND course_id = ? AND type = ?", userID, courseID, types.EventCourseCompleted).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
