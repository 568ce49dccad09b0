package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/config"
	"github.com/nsbdesign/proofroom/internal/infra/queue"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/modules/repo"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
	"github.com/nsbdesign/proofroom/internal/pkg/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ReviewWithProject is a review hydrated with the derived project fields
// the client viewer renders, plus its display version (1-based position in
// the project's creation-ordered review list).
type ReviewWithProject struct {
	model.Review
	ProjectName     string `json:"project_name"`
	ProjectNumber   string `json:"project_number"`
	DownloadEnabled bool   `json:"download_enabled"`
	Version         int    `json:"version"`
}

type ReviewService interface {
	Create(ctx context.Context, projectID uuid.UUID) (*model.Review, error)
	// GetByShareLink returns (nil, nil) for an unknown token; absence is a
	// normal outcome, not an error.
	GetByShareLink(ctx context.Context, token string) (*ReviewWithProject, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Review, error)
	SetStatus(ctx context.Context, reviewID uuid.UUID, status model.ReviewStatus) error
	ListApprovals(ctx context.Context, reviewID uuid.UUID) ([]model.Approval, error)
}

type reviewService struct {
	r        repo.ReviewRepo
	projects repo.ProjectRepo
	activity repo.ActivityRepo
	rdb      *redis.Client
	pub      *queue.Publisher
	cfg      *config.Config
	log      *zap.Logger
}

func NewReviewService(
	r repo.ReviewRepo,
	projects repo.ProjectRepo,
	activity repo.ActivityRepo,
	rdb *redis.Client,
	pub *queue.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) ReviewService {
	return &reviewService{
		r:        r,
		projects: projects,
		activity: activity,
		rdb:      rdb,
		pub:      pub,
		cfg:      cfg,
		log:      log,
	}
}

func shareLinkCacheKey(token string) string { return "sharelink:" + token }

// Create opens a new review round under the project with a fresh
// share-link token. Token collisions are retried with a new token and
// never surface to the caller.
func (s *reviewService) Create(ctx context.Context, projectID uuid.UUID) (*model.Review, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("project", projectID.String())
	}

	retries := s.cfg.ShareLink.MaxRetries
	if retries < 1 {
		retries = 1
	}

	var rv *model.Review
	for attempt := 0; attempt < retries; attempt++ {
		token, err := utils.GenerateShareLink(s.cfg.ShareLink.TokenLength)
		if err != nil {
			return nil, fmt.Errorf("generate share link: %w", err)
		}

		candidate := model.Review{
			ProjectID: projectID,
			ShareLink: token,
			Status:    model.StatusPending,
		}
		err = s.r.Create(ctx, &candidate)
		if err == nil {
			rv = &candidate
			break
		}

		var ce *apperr.ConflictError
		if errors.As(err, &ce) {
			s.log.Sugar().Warnw("share link collision, retrying", "attempt", attempt+1)
			continue
		}
		return nil, err
	}
	if rv == nil {
		return nil, fmt.Errorf("share link generation exhausted after %d attempts", retries)
	}

	s.audit(ctx, projectID, "Admin", model.ActionReviewCreated,
		fmt.Sprintf("Created review %s", rv.ShareLink))
	s.publish(ctx, queue.KeyReviewCreated, rv)

	return rv, nil
}

func (s *reviewService) GetByShareLink(ctx context.Context, token string) (*ReviewWithProject, error) {
	if token == "" {
		return nil, nil
	}

	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, shareLinkCacheKey(token)).Result()
		if err == nil {
			var cached ReviewWithProject
			if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Sugar().Warnw("share link cache read failed", "err", err)
		}
	}

	rv, err := s.r.GetByShareLink(ctx, token)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, nil
	}

	version, err := s.r.Version(ctx, rv)
	if err != nil {
		return nil, err
	}

	out := &ReviewWithProject{Review: *rv, Version: version}
	if rv.Project != nil {
		out.ProjectName = rv.Project.Name
		out.ProjectNumber = rv.Project.ProjectNumber
		out.DownloadEnabled = rv.Project.DownloadEnabled
	}

	if s.rdb != nil {
		if raw, jerr := json.Marshal(out); jerr == nil {
			ttl := time.Duration(s.cfg.Redis.ShareLinkTTLSec) * time.Second
			if err := s.rdb.Set(ctx, shareLinkCacheKey(token), raw, ttl).Err(); err != nil {
				s.log.Sugar().Warnw("share link cache write failed", "err", err)
			}
		}
	}

	return out, nil
}

func (s *reviewService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Review, error) {
	return s.r.ListByProject(ctx, projectID)
}

// SetStatus is the direct admin override, independent of the approval flow.
func (s *reviewService) SetStatus(ctx context.Context, reviewID uuid.UUID, status model.ReviewStatus) error {
	if !status.Valid() {
		return apperr.Validation("status", "must be one of pending, approved, revision_requested")
	}

	rv, err := s.r.Get(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv == nil {
		return apperr.NotFound("review", reviewID.String())
	}

	if _, err := s.r.UpdateStatus(ctx, reviewID, status); err != nil {
		return err
	}

	s.invalidateShareLink(ctx, rv.ShareLink)
	s.audit(ctx, rv.ProjectID, "Admin", model.ActionStatusUpdated,
		fmt.Sprintf("Set review %s status to %s", rv.ShareLink, status))

	return nil
}

func (s *reviewService) ListApprovals(ctx context.Context, reviewID uuid.UUID) ([]model.Approval, error) {
	return s.r.ListApprovals(ctx, reviewID)
}

func (s *reviewService) invalidateShareLink(ctx context.Context, token string) {
	if s.rdb == nil || token == "" {
		return
	}
	if err := s.rdb.Del(ctx, shareLinkCacheKey(token)).Err(); err != nil {
		s.log.Sugar().Warnw("share link cache invalidation failed", "err", err)
	}
}

func (s *reviewService) audit(ctx context.Context, projectID uuid.UUID, user, action, details string) {
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

func (s *reviewService) publish(ctx context.Context, key string, data interface{}) {
	if err := s.pub.PublishJSON(ctx, key, data); err != nil {
		s.log.Sugar().Warnw("event publish failed", "key", key, "err", err)
	}
}
