package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newApprovalService(reviews *MockReviewRepo, activity *MockActivityRepo) ApprovalService {
	return NewApprovalService(reviews, activity, nil, nil, zap.NewNop())
}

func TestApprovalService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	reviewID := uuid.New()

	tests := []struct {
		name string
		in   CreateApprovalInput
	}{
		{
			name: "missing first name",
			in:   CreateApprovalInput{ReviewID: reviewID, LastName: "Rivera", Decision: model.DecisionApproved},
		},
		{
			name: "missing last name",
			in:   CreateApprovalInput{ReviewID: reviewID, FirstName: "Sam", Decision: model.DecisionApproved},
		},
		{
			name: "whitespace-only names",
			in:   CreateApprovalInput{ReviewID: reviewID, FirstName: " ", LastName: "\t", Decision: model.DecisionApproved},
		},
		{
			name: "unknown decision",
			in:   CreateApprovalInput{ReviewID: reviewID, FirstName: "Sam", LastName: "Rivera", Decision: model.Decision("maybe")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := &MockReviewRepo{}

			_, err := newApprovalService(reviews, &MockActivityRepo{}).Create(ctx, tt.in)

			var ve *apperr.ValidationError
			assert.ErrorAs(t, err, &ve)
			reviews.AssertNotCalled(t, "CreateApproval")
		})
	}
}

func TestApprovalService_Create(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()
	reviewID := uuid.New()
	review := &model.Review{ID: reviewID, ProjectID: projectID, ShareLink: "abc123xyz0"}

	t.Run("approval records decision and audits", func(t *testing.T) {
		reviews := &MockReviewRepo{}
		activity := &MockActivityRepo{}

		reviews.On("CreateApproval", ctx, mock.AnythingOfType("*model.Approval")).Return(nil)
		reviews.On("Get", ctx, reviewID).Return(review, nil)
		activity.On("Create", ctx, mock.MatchedBy(func(l *model.ActivityLog) bool {
			return l.Action == model.ActionReviewApproved && l.UserName == "Sam Rivera"
		})).Return(nil)

		ap, err := newApprovalService(reviews, activity).Create(ctx, CreateApprovalInput{
			ReviewID:  reviewID,
			FirstName: " Sam ",
			LastName:  " Rivera ",
			Decision:  model.DecisionApproved,
			Notes:     "ship it",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Sam", ap.FirstName)
		assert.Equal(t, "Rivera", ap.LastName)
		assert.Equal(t, model.DecisionApproved, ap.Decision)
		activity.AssertExpectations(t)
	})

	t.Run("revision request maps to its own audit action", func(t *testing.T) {
		reviews := &MockReviewRepo{}
		activity := &MockActivityRepo{}

		reviews.On("CreateApproval", ctx, mock.AnythingOfType("*model.Approval")).Return(nil)
		reviews.On("Get", ctx, reviewID).Return(review, nil)
		activity.On("Create", ctx, mock.MatchedBy(func(l *model.ActivityLog) bool {
			return l.Action == model.ActionRevisionRequested
		})).Return(nil)

		_, err := newApprovalService(reviews, activity).Create(ctx, CreateApprovalInput{
			ReviewID:  reviewID,
			FirstName: "Sam",
			LastName:  "Rivera",
			Decision:  model.DecisionRevisionRequested,
		})

		assert.NoError(t, err)
		activity.AssertExpectations(t)
	})

	t.Run("unknown review surfaces the repo error", func(t *testing.T) {
		reviews := &MockReviewRepo{}

		reviews.On("CreateApproval", ctx, mock.AnythingOfType("*model.Approval")).
			Return(apperr.NotFound("review", reviewID.String()))

		_, err := newApprovalService(reviews, &MockActivityRepo{}).Create(ctx, CreateApprovalInput{
			ReviewID:  reviewID,
			FirstName: "Sam",
			LastName:  "Rivera",
			Decision:  model.DecisionApproved,
		})

		var nf *apperr.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}

func TestDecision_Status(t *testing.T) {
	assert.Equal(t, model.StatusApproved, model.DecisionApproved.Status())
	assert.Equal(t, model.StatusRevisionRequested, model.DecisionRevisionRequested.Status())
}
