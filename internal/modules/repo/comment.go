package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"gorm.io/gorm"
)

type CommentRepo interface {
	Create(ctx context.Context, c *model.Comment) error
	// ListByFile scopes by the composite (review, design item) key.
	ListByFile(ctx context.Context, reviewID, designItemID uuid.UUID) ([]model.Comment, error)
	// ListByReview returns every thread of the review in one query, for
	// grouped hydration by the viewer.
	ListByReview(ctx context.Context, reviewID uuid.UUID) ([]model.Comment, error)
}

type commentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepo) ListByFile(ctx context.Context, reviewID, designItemID uuid.UUID) ([]model.Comment, error) {
	var items []model.Comment
	err := r.db.WithContext(ctx).
		Where("review_id = ? AND design_item_id = ?", reviewID, designItemID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *commentRepo) ListByReview(ctx context.Context, reviewID uuid.UUID) ([]model.Comment, error) {
	var items []model.Comment
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}
