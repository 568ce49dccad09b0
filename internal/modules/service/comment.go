package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/infra/blob"
	"github.com/nsbdesign/proofroom/internal/infra/queue"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/modules/repo"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type AddCommentInput struct {
	ReviewID     uuid.UUID
	DesignItemID uuid.UUID
	Author       string
	Content      string
	Type         model.EntryType
	// Drawing is the encoded raster of freehand marks. Only valid on
	// annotation-typed entries.
	Drawing string
	// Meta carries positional data (x, y, color) from the viewer.
	Meta map[string]interface{}
}

type CommentService interface {
	Add(ctx context.Context, in AddCommentInput) (*model.Comment, error)
	ListByFile(ctx context.Context, reviewID, designItemID uuid.UUID) ([]model.Comment, error)
	// ListByReviewGrouped returns every thread of the review keyed by
	// design item id, for one-call hydration of the viewer.
	ListByReviewGrouped(ctx context.Context, reviewID uuid.UUID) (map[uuid.UUID][]model.Comment, error)
}

type commentService struct {
	r        repo.CommentRepo
	items    repo.DesignItemRepo
	reviews  repo.ReviewRepo
	activity repo.ActivityRepo
	blob     *blob.S3Deps
	pub      *queue.Publisher
	log      *zap.Logger
}

func NewCommentService(
	r repo.CommentRepo,
	items repo.DesignItemRepo,
	reviews repo.ReviewRepo,
	activity repo.ActivityRepo,
	b *blob.S3Deps,
	pub *queue.Publisher,
	log *zap.Logger,
) CommentService {
	return &commentService{r: r, items: items, reviews: reviews, activity: activity, blob: b, pub: pub, log: log}
}

// Add appends an entry to a design item's thread. Entries are immutable
// once created; there is no edit or delete path.
func (s *commentService) Add(ctx context.Context, in AddCommentInput) (*model.Comment, error) {
	author := strings.TrimSpace(in.Author)
	content := strings.TrimSpace(in.Content)
	if author == "" {
		return nil, apperr.Validation("author", "must not be empty")
	}
	if content == "" {
		return nil, apperr.Validation("content", "must not be empty")
	}
	if !in.Type.Valid() {
		return nil, apperr.Validation("type", "must be comment or annotation")
	}
	if in.Type == model.EntryComment && in.Drawing != "" {
		return nil, apperr.Validation("drawing", "a comment entry cannot carry a drawing")
	}

	item, err := s.items.Get(ctx, in.DesignItemID)
	if err != nil {
		return nil, err
	}
	// Items are scoped by the composite (review, item) key; an item id
	// from another review is treated as absent.
	if item == nil || item.ReviewID != in.ReviewID {
		return nil, apperr.NotFound("design item", in.DesignItemID.String())
	}

	c := model.Comment{
		DesignItemID: in.DesignItemID,
		ReviewID:     in.ReviewID,
		Author:       author,
		Content:      content,
		Type:         in.Type,
		Meta:         datatypes.JSONMap(in.Meta),
	}

	if in.Type == model.EntryAnnotation && in.Drawing != "" {
		c.HasDrawing = true
		if s.blob != nil {
			key, err := s.blob.UploadDrawing(ctx, in.Drawing)
			if err != nil {
				return nil, fmt.Errorf("store drawing: %w", err)
			}
			c.DrawingKey = key
		} else {
			c.Drawing = in.Drawing
		}
	}

	if err := s.r.Create(ctx, &c); err != nil {
		return nil, err
	}

	action := model.ActionCommentAdded
	if c.Type == model.EntryAnnotation {
		action = model.ActionAnnotationAdded
	}
	if rv, rerr := s.reviews.Get(ctx, in.ReviewID); rerr == nil && rv != nil {
		err := s.activity.Create(ctx, &model.ActivityLog{
			ProjectID: rv.ProjectID,
			UserName:  author,
			Action:    action,
			Details:   fmt.Sprintf("Added %s on %s", c.Type, item.FileName),
		})
		if err != nil {
			s.log.Sugar().Warnw("activity append failed", "action", action, "err", err)
		}
	}

	if err := s.pub.PublishJSON(ctx, queue.KeyCommentAdded, c); err != nil {
		s.log.Sugar().Warnw("event publish failed", "key", queue.KeyCommentAdded, "err", err)
	}

	return &c, nil
}

func (s *commentService) ListByFile(ctx context.Context, reviewID, designItemID uuid.UUID) ([]model.Comment, error) {
	return s.r.ListByFile(ctx, reviewID, designItemID)
}

func (s *commentService) ListByReviewGrouped(ctx context.Context, reviewID uuid.UUID) (map[uuid.UUID][]model.Comment, error) {
	all, err := s.r.ListByReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID][]model.Comment, len(all))
	for _, c := range all {
		grouped[c.DesignItemID] = append(grouped[c.DesignItemID], c)
	}
	return grouped, nil
}
