package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/config"
	"github.com/nsbdesign/proofroom/internal/infra/blob"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/modules/repo"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
	"go.uber.org/zap"
)

type CreateDesignItemInput struct {
	ReviewID uuid.UUID
	FileURL  string
	FileName string
	FileKey  string
	// Version <= 0 defaults to 1.
	Version int
	// OrderIndex nil means append-at-end.
	OrderIndex *int
}

type DesignItemService interface {
	Create(ctx context.Context, in CreateDesignItemInput) (*model.DesignItem, error)
	ListByReview(ctx context.Context, reviewID uuid.UUID) ([]model.DesignItem, error)
	// DownloadURL presigns a GET for the item's stored file. Fails with a
	// ValidationError when the owning project has downloads disabled or
	// the item has no stored object.
	DownloadURL(ctx context.Context, rv *ReviewWithProject, itemID uuid.UUID) (string, error)
}

type designItemService struct {
	r        repo.DesignItemRepo
	reviews  repo.ReviewRepo
	activity repo.ActivityRepo
	blob     *blob.S3Deps
	cfg      *config.Config
	log      *zap.Logger
}

func NewDesignItemService(
	r repo.DesignItemRepo,
	reviews repo.ReviewRepo,
	activity repo.ActivityRepo,
	b *blob.S3Deps,
	cfg *config.Config,
	log *zap.Logger,
) DesignItemService {
	return &designItemService{r: r, reviews: reviews, activity: activity, blob: b, cfg: cfg, log: log}
}

func (s *designItemService) Create(ctx context.Context, in CreateDesignItemInput) (*model.DesignItem, error) {
	fileURL := strings.TrimSpace(in.FileURL)
	fileName := strings.TrimSpace(in.FileName)
	if fileURL == "" {
		return nil, apperr.Validation("file_url", "must not be empty")
	}
	if fileName == "" {
		return nil, apperr.Validation("file_name", "must not be empty")
	}

	rv, err := s.reviews.Get(ctx, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, apperr.NotFound("review", in.ReviewID.String())
	}

	version := in.Version
	if version <= 0 {
		version = 1
	}
	orderIndex := -1
	if in.OrderIndex != nil {
		if *in.OrderIndex < 0 {
			return nil, apperr.Validation("order_index", "must not be negative")
		}
		orderIndex = *in.OrderIndex
	}

	item := model.DesignItem{
		ReviewID:   in.ReviewID,
		FileURL:    fileURL,
		FileName:   fileName,
		FileKey:    strings.TrimSpace(in.FileKey),
		Version:    version,
		OrderIndex: orderIndex,
	}
	if err := s.r.Create(ctx, &item); err != nil {
		return nil, err
	}

	if err := s.activity.Create(ctx, &model.ActivityLog{
		ProjectID: rv.ProjectID,
		UserName:  "Admin",
		Action:    model.ActionDesignItemAdded,
		Details:   fmt.Sprintf("Added %s to review %s", item.FileName, rv.ShareLink),
	}); err != nil {
		s.log.Sugar().Warnw("activity append failed", "action", model.ActionDesignItemAdded, "err", err)
	}

	return &item, nil
}

func (s *designItemService) ListByReview(ctx context.Context, reviewID uuid.UUID) ([]model.DesignItem, error) {
	return s.r.ListByReview(ctx, reviewID)
}

func (s *designItemService) DownloadURL(ctx context.Context, rv *ReviewWithProject, itemID uuid.UUID) (string, error) {
	if !rv.DownloadEnabled {
		return "", apperr.Validation("download", "downloads are disabled for this project")
	}

	item, err := s.r.Get(ctx, itemID)
	if err != nil {
		return "", err
	}
	if item == nil || item.ReviewID != rv.ID {
		return "", apperr.NotFound("design item", itemID.String())
	}
	if item.FileKey == "" || s.blob == nil {
		return "", apperr.Validation("download", "file has no stored object")
	}

	expire := time.Duration(s.cfg.S3.PresignExpireSec) * time.Second
	if expire <= 0 {
		expire = 15 * time.Minute
	}
	return s.blob.PresignGet(ctx, item.FileKey, expire)
}
