package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
	"gorm.io/gorm"
)

type DesignItemRepo interface {
	// Create inserts the item. An OrderIndex of -1 means append-at-end;
	// the next free index is picked inside the insert transaction.
	Create(ctx context.Context, d *model.DesignItem) error
	Get(ctx context.Context, id uuid.UUID) (*model.DesignItem, error)
	ListByReview(ctx context.Context, reviewID uuid.UUID) ([]model.DesignItem, error)
}

type designItemRepo struct{ db *gorm.DB }

func NewDesignItemRepo(db *gorm.DB) DesignItemRepo {
	return &designItemRepo{db: db}
}

func (r *designItemRepo) Create(ctx context.Context, d *model.DesignItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if d.OrderIndex < 0 {
			var max *int
			if err := tx.Model(&model.DesignItem{}).
				Where("review_id = ?", d.ReviewID).
				Select("MAX(order_index)").
				Scan(&max).Error; err != nil {
				return err
			}
			if max == nil {
				d.OrderIndex = 0
			} else {
				d.OrderIndex = *max + 1
			}
		}

		err := tx.Create(d).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("design item", "order index already used in review")
		}
		return err
	})
}

func (r *designItemRepo) Get(ctx context.Context, id uuid.UUID) (*model.DesignItem, error) {
	var d model.DesignItem
	err := r.db.WithContext(ctx).Where(&model.DesignItem{ID: id}).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *designItemRepo) ListByReview(ctx context.Context, reviewID uuid.UUID) ([]model.DesignItem, error) {
	var items []model.DesignItem
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("order_index ASC").
		Find(&items).Error
	return items, err
}
