package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepo interface {
	Create(ctx context.Context, rv *model.Review) error
	Get(ctx context.Context, id uuid.UUID) (*model.Review, error)
	GetByShareLink(ctx context.Context, token string) (*model.Review, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Review, error)
	Version(ctx context.Context, rv *model.Review) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReviewStatus) (int64, error)
	CreateApproval(ctx context.Context, ap *model.Approval) error
	ListApprovals(ctx context.Context, reviewID uuid.UUID) ([]model.Approval, error)
}

type reviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) ReviewRepo {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, rv *model.Review) error {
	err := r.db.WithContext(ctx).Create(rv).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("review", "share link already taken")
	}
	return err
}

func (r *reviewRepo) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).Where(&model.Review{ID: id}).First(&rv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// GetByShareLink resolves a share-link token, preloading the owning project
// for the derived fields callers render. Absence is a normal outcome.
func (r *reviewRepo) GetByShareLink(ctx context.Context, token string) (*model.Review, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where(&model.Review{ShareLink: token}).
		First(&rv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Review, error) {
	var items []model.Review
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// Version derives the display version: the review's 1-based position in
// its project's creation-ordered list. (created_at, id) breaks ties the
// same way ListByProject orders them.
func (r *reviewRepo) Version(ctx context.Context, rv *model.Review) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("project_id = ?", rv.ProjectID).
		Where("(created_at < ?) OR (created_at = ? AND id <= ?)", rv.CreatedAt, rv.CreatedAt, rv.ID).
		Count(&n).Error
	return int(n), err
}

func (r *reviewRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReviewStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

// CreateApproval inserts the approval and moves the owning review's status
// in one transaction, so a concurrent reader never observes one without
// the other. On postgres the existence SELECT takes the review row lock
// (FOR UPDATE) before the approval row is timestamped, so racing approvals
// per review commit in the same order as their created_at values and the
// status always tracks the chronologically last decision. Sqlite serializes
// write transactions wholesale and needs no row lock.
func (r *reviewRepo) CreateApproval(ctx context.Context, ap *model.Approval) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where(&model.Review{ID: ap.ReviewID})
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var rv model.Review
		if err := q.First(&rv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("review", ap.ReviewID.String())
			}
			return err
		}

		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		return tx.Model(&model.Review{}).
			Where("id = ?", ap.ReviewID).
			Updates(map[string]interface{}{
				"status":     ap.Decision.Status(),
				"updated_at": time.Now(),
			}).Error
	})
}

func (r *reviewRepo) ListApprovals(ctx context.Context, reviewID uuid.UUID) ([]model.Approval, error) {
	var items []model.Approval
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}
