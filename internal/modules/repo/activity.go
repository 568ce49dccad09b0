package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"gorm.io/gorm"
)

type ActivityRepo interface {
	Create(ctx context.Context, l *model.ActivityLog) error
	// List returns the global trail newest-first.
	List(ctx context.Context) ([]model.ActivityLog, error)
	// ListByProject returns a single project's trail oldest-first, so
	// consumers can replay it as a timeline.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ActivityLog, error)
}

type activityRepo struct{ db *gorm.DB }

func NewActivityRepo(db *gorm.DB) ActivityRepo {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, l *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *activityRepo) List(ctx context.Context) ([]model.ActivityLog, error) {
	var items []model.ActivityLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	return items, err
}

func (r *activityRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ActivityLog, error) {
	var items []model.ActivityLog
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}
