package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/modules/repo"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
)

type AppendActivityInput struct {
	ProjectID uuid.UUID
	UserName  string
	Action    string
	Details   string
}

type ActivityService interface {
	Append(ctx context.Context, in AppendActivityInput) (*model.ActivityLog, error)
	// List returns the global trail newest-first, or a single project's
	// trail oldest-first when projectID is set.
	List(ctx context.Context, projectID *uuid.UUID) ([]model.ActivityLog, error)
}

type activityService struct {
	r repo.ActivityRepo
}

func NewActivityService(r repo.ActivityRepo) ActivityService {
	return &activityService{r: r}
}

func (s *activityService) Append(ctx context.Context, in AppendActivityInput) (*model.ActivityLog, error) {
	if in.ProjectID == uuid.Nil {
		return nil, apperr.Validation("project_id", "must not be empty")
	}
	if strings.TrimSpace(in.Action) == "" {
		return nil, apperr.Validation("action", "must not be empty")
	}

	l := model.ActivityLog{
		ProjectID: in.ProjectID,
		UserName:  strings.TrimSpace(in.UserName),
		Action:    strings.TrimSpace(in.Action),
		Details:   in.Details,
	}
	if err := s.r.Create(ctx, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *activityService) List(ctx context.Context, projectID *uuid.UUID) ([]model.ActivityLog, error) {
	if projectID != nil {
		return s.r.ListByProject(ctx, *projectID)
	}
	return s.r.List(ctx)
}
