package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, archived bool) ([]model.Project, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Search(ctx context.Context, query string) ([]model.Project, error)
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Where(&model.Project{ID: id}).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context, archived bool) ([]model.Project, error) {
	var items []model.Project
	err := r.db.WithContext(ctx).
		Where("archived = ?", archived).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// Update applies a partial update and bumps updated_at. Returns the number
// of rows matched so callers can distinguish a missing project.
func (r *projectRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// Search matches the query case-insensitively against name, project number
// and description. Archived projects are excluded.
func (r *projectRepo) Search(ctx context.Context, query string) ([]model.Project, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var items []model.Project
	err := r.db.WithContext(ctx).
		Where("archived = ?", false).
		Where(
			r.db.Where("LOWER(name) LIKE ?", pattern).
				Or("LOWER(project_number) LIKE ?", pattern).
				Or("LOWER(description) LIKE ?", pattern),
		).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}
