package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/modules/repo"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateProjectInput struct {
	ProjectNumber string
	Name          string
	Description   string
	ClientEmail   string
}

// UpdateProjectInput carries a partial update; nil fields are left alone.
type UpdateProjectInput struct {
	Name            *string
	Description     *string
	ClientEmail     *string
	Archived        *bool
	DownloadEnabled *bool
}

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, archived bool) ([]model.Project, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*model.Project, error)
	Search(ctx context.Context, query string) ([]model.Project, error)
}

type projectService struct {
	r        repo.ProjectRepo
	reviews  repo.ReviewRepo
	activity repo.ActivityRepo
	rdb      *redis.Client
	log      *zap.Logger
}

func NewProjectService(r repo.ProjectRepo, reviews repo.ReviewRepo, activity repo.ActivityRepo, rdb *redis.Client, log *zap.Logger) ProjectService {
	return &projectService{r: r, reviews: reviews, activity: activity, rdb: rdb, log: log}
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	number := strings.TrimSpace(in.ProjectNumber)
	name := strings.TrimSpace(in.Name)
	if number == "" {
		return nil, apperr.Validation("project_number", "must not be empty")
	}
	if name == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}

	p := model.Project{
		ProjectNumber: number,
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		ClientEmail:   strings.TrimSpace(in.ClientEmail),
	}
	if err := s.r.Create(ctx, &p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("project", "project number already in use")
		}
		return nil, err
	}

	s.audit(ctx, p.ID, "Admin", model.ActionProjectCreated,
		fmt.Sprintf("Created project %s", p.ProjectNumber))

	return &p, nil
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return s.r.Get(ctx, id)
}

func (s *projectService) List(ctx context.Context, archived bool) ([]model.Project, error) {
	return s.r.List(ctx, archived)
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*model.Project, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("name", "must not be empty")
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.ClientEmail != nil {
		fields["client_email"] = strings.TrimSpace(*in.ClientEmail)
	}
	if in.Archived != nil {
		fields["archived"] = *in.Archived
	}
	if in.DownloadEnabled != nil {
		fields["download_enabled"] = *in.DownloadEnabled
	}
	if len(fields) == 0 {
		return nil, apperr.Validation("update", "no fields to update")
	}

	n, err := s.r.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperr.NotFound("project", id.String())
	}

	p, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// The row can vanish between the update and the re-read.
	if p == nil {
		return nil, apperr.NotFound("project", id.String())
	}

	s.invalidateReviewLinks(ctx, id)
	s.audit(ctx, id, "Admin", model.ActionProjectUpdated,
		fmt.Sprintf("Updated project %s", p.ProjectNumber))

	return p, nil
}

func (s *projectService) Search(ctx context.Context, query string) ([]model.Project, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.r.List(ctx, false)
	}
	return s.r.Search(ctx, query)
}

// invalidateReviewLinks drops the cached share-link payloads of the
// project's reviews. They embed derived project fields (name, number,
// download flag), which an update may have just changed.
func (s *projectService) invalidateReviewLinks(ctx context.Context, projectID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	reviews, err := s.reviews.ListByProject(ctx, projectID)
	if err != nil {
		s.log.Sugar().Warnw("share link cache invalidation failed", "err", err)
		return
	}
	for _, rv := range reviews {
		if err := s.rdb.Del(ctx, shareLinkCacheKey(rv.ShareLink)).Err(); err != nil {
			s.log.Sugar().Warnw("share link cache invalidation failed", "err", err)
		}
	}
}

// audit appends to the activity trail. Best effort: a failed append is
// logged and never fails the primary write.
func (s *projectService) audit(ctx context.Context, projectID uuid.UUID, user, action, details string) {
	err := s.activity.Create(ctx, &model.ActivityLog{
		ProjectID: projectID,
		UserName:  user,
		Action:    action,
		Details:   details,
	})
	if err != nil {
		s.log.Sugar().Warnw("activity append failed", "action", action, "err", err)
	}
}
