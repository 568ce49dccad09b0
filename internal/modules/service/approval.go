package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/infra/queue"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/modules/repo"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type CreateApprovalInput struct {
	ReviewID  uuid.UUID
	FirstName string
	LastName  string
	Decision  model.Decision
	Notes     string
}

type ApprovalService interface {
	// Create records the decision and moves the owning review's status in
	// the same transaction. The latest approval always determines the
	// current status; both approved and revision_requested are
	// re-enterable.
	Create(ctx context.Context, in CreateApprovalInput) (*model.Approval, error)
}

type approvalService struct {
	reviews  repo.ReviewRepo
	activity repo.ActivityRepo
	rdb      *redis.Client
	pub      *queue.Publisher
	log      *zap.Logger
}

func NewApprovalService(
	reviews repo.ReviewRepo,
	activity repo.ActivityRepo,
	rdb *redis.Client,
	pub *queue.Publisher,
	log *zap.Logger,
) ApprovalService {
	return &approvalService{reviews: reviews, activity: activity, rdb: rdb, pub: pub, log: log}
}

func (s *approvalService) Create(ctx context.Context, in CreateApprovalInput) (*model.Approval, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" {
		return nil, apperr.Validation("first_name", "must not be empty")
	}
	if last == "" {
		return nil, apperr.Validation("last_name", "must not be empty")
	}
	if !in.Decision.Valid() {
		return nil, apperr.Validation("decision", "must be approved or revision_requested")
	}

	ap := model.Approval{
		ReviewID:  in.ReviewID,
		FirstName: first,
		LastName:  last,
		Decision:  in.Decision,
		Notes:     strings.TrimSpace(in.Notes),
	}
	if err := s.reviews.CreateApproval(ctx, &ap); err != nil {
		return nil, err
	}

	rv, err := s.reviews.Get(ctx, in.ReviewID)
	if err == nil && rv != nil {
		if s.rdb != nil {
			if derr := s.rdb.Del(ctx, shareLinkCacheKey(rv.ShareLink)).Err(); derr != nil {
				s.log.Sugar().Warnw("share link cache invalidation failed", "err", derr)
			}
		}

		action := model.ActionRevisionRequested
		details := fmt.Sprintf("Requested revisions on review %s", rv.ShareLink)
		if in.Decision == model.DecisionApproved {
			action = model.ActionReviewApproved
			details = fmt.Sprintf("Approved review %s", rv.ShareLink)
		}
		aerr := s.activity.Create(ctx, &model.ActivityLog{
			ProjectID: rv.ProjectID,
			UserName:  first + " " + last,
			Action:    action,
			Details:   details,
		})
		if aerr != nil {
			s.log.Sugar().Warnw("activity append failed", "action", action, "err", aerr)
		}
	}

	if err := s.pub.PublishJSON(ctx, queue.KeyApprovalRecorded, ap); err != nil {
		s.log.Sugar().Warnw("event publish failed", "key", queue.KeyApprovalRecorded, "err", err)
	}

	return &ap, nil
}
