package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/config"
	"github.com/nsbdesign/proofroom/internal/middleware"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/modules/service"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockActivityService is a mock implementation of service.ActivityService
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Append(ctx context.Context, in service.AppendActivityInput) (*model.ActivityLog, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ActivityLog), args.Error(1)
}

func (m *MockActivityService) List(ctx context.Context, projectID *uuid.UUID) ([]model.ActivityLog, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ActivityLog), args.Error(1)
}

func newReviewRouter(reviews *MockReviewService, items *MockDesignItemService, activity *MockActivityService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Admin: config.AdminCfg{BearerToken: testAdminToken}}
	rh := NewReviewHandler(reviews, items)
	ah := NewActivityHandler(activity)

	r := gin.New()
	g := r.Group("/api/v1/admin", middleware.AdminAuth(cfg))
	g.POST("/projects/:project_id/reviews", rh.CreateReview)
	g.GET("/projects/:project_id/reviews", rh.ListReviews)
	g.PUT("/reviews/:review_id/status", rh.SetStatus)
	g.GET("/reviews/:review_id/approvals", rh.ListApprovals)
	g.POST("/reviews/:review_id/items", rh.CreateDesignItem)
	g.GET("/reviews/:review_id/items", rh.ListDesignItems)
	g.GET("/activity", ah.ListActivity)
	g.POST("/activity", ah.AppendActivity)
	return r
}

func TestReviewHandler_CreateReview(t *testing.T) {
	projectID := uuid.New()

	t.Run("opens a round and returns 201", func(t *testing.T) {
		reviews := &MockReviewService{}
		reviews.On("Create", mock.Anything, projectID).
			Return(&model.Review{ID: uuid.New(), ProjectID: projectID, ShareLink: "abc123xyz0", Status: model.StatusPending}, nil)

		r := newReviewRouter(reviews, &MockDesignItemService{}, &MockActivityService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("POST", "/api/v1/admin/projects/"+projectID.String()+"/reviews", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "abc123xyz0")
	})

	t.Run("unknown project is 404", func(t *testing.T) {
		reviews := &MockReviewService{}
		reviews.On("Create", mock.Anything, projectID).
			Return(nil, apperr.NotFound("project", projectID.String()))

		r := newReviewRouter(reviews, &MockDesignItemService{}, &MockActivityService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("POST", "/api/v1/admin/projects/"+projectID.String()+"/reviews", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReviewHandler_SetStatus(t *testing.T) {
	reviewID := uuid.New()

	t.Run("valid override returns 200", func(t *testing.T) {
		reviews := &MockReviewService{}
		reviews.On("SetStatus", mock.Anything, reviewID, model.StatusApproved).Return(nil)

		r := newReviewRouter(reviews, &MockDesignItemService{}, &MockActivityService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("PUT", "/api/v1/admin/reviews/"+reviewID.String()+"/status", map[string]interface{}{
			"status": "approved",
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		reviews.AssertExpectations(t)
	})

	t.Run("out-of-enum status is 400", func(t *testing.T) {
		reviews := &MockReviewService{}
		reviews.On("SetStatus", mock.Anything, reviewID, model.ReviewStatus("shipped")).
			Return(apperr.Validation("status", "must be one of pending, approved, revision_requested"))

		r := newReviewRouter(reviews, &MockDesignItemService{}, &MockActivityService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("PUT", "/api/v1/admin/reviews/"+reviewID.String()+"/status", map[string]interface{}{
			"status": "shipped",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing status fails binding", func(t *testing.T) {
		reviews := &MockReviewService{}
		r := newReviewRouter(reviews, &MockDesignItemService{}, &MockActivityService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("PUT", "/api/v1/admin/reviews/"+reviewID.String()+"/status", map[string]interface{}{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		reviews.AssertNotCalled(t, "SetStatus")
	})
}

func TestReviewHandler_CreateDesignItem(t *testing.T) {
	reviewID := uuid.New()

	t.Run("registers a file under the review", func(t *testing.T) {
		items := &MockDesignItemService{}
		items.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateDesignItemInput) bool {
			return in.ReviewID == reviewID && in.FileName == "hero.png" && in.OrderIndex == nil
		})).Return(&model.DesignItem{ID: uuid.New(), ReviewID: reviewID, FileName: "hero.png"}, nil)

		r := newReviewRouter(&MockReviewService{}, items, &MockActivityService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("POST", "/api/v1/admin/reviews/"+reviewID.String()+"/items", map[string]interface{}{
			"file_url":  "https://cdn.example.com/hero.png",
			"file_name": "hero.png",
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
		items.AssertExpectations(t)
	})

	t.Run("explicit order index reaches the service", func(t *testing.T) {
		items := &MockDesignItemService{}
		items.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateDesignItemInput) bool {
			return in.OrderIndex != nil && *in.OrderIndex == 0
		})).Return(&model.DesignItem{ID: uuid.New()}, nil)

		r := newReviewRouter(&MockReviewService{}, items, &MockActivityService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("POST", "/api/v1/admin/reviews/"+reviewID.String()+"/items", map[string]interface{}{
			"file_url":    "https://cdn.example.com/hero.png",
			"file_name":   "hero.png",
			"order_index": 0,
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
		items.AssertExpectations(t)
	})

	t.Run("taken order index is 409", func(t *testing.T) {
		items := &MockDesignItemService{}
		items.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperr.Conflict("design item", "order index already taken"))

		r := newReviewRouter(&MockReviewService{}, items, &MockActivityService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("POST", "/api/v1/admin/reviews/"+reviewID.String()+"/items", map[string]interface{}{
			"file_url":    "https://cdn.example.com/hero.png",
			"file_name":   "hero.png",
			"order_index": 2,
		}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestActivityHandler_ListActivity(t *testing.T) {
	t.Run("global list passes a nil filter", func(t *testing.T) {
		activity := &MockActivityService{}
		activity.On("List", mock.Anything, (*uuid.UUID)(nil)).Return([]model.ActivityLog{}, nil)

		r := newReviewRouter(&MockReviewService{}, &MockDesignItemService{}, activity)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("GET", "/api/v1/admin/activity", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		activity.AssertExpectations(t)
	})

	t.Run("project filter is parsed and forwarded", func(t *testing.T) {
		projectID := uuid.New()
		activity := &MockActivityService{}
		activity.On("List", mock.Anything, mock.MatchedBy(func(id *uuid.UUID) bool {
			return id != nil && *id == projectID
		})).Return([]model.ActivityLog{}, nil)

		r := newReviewRouter(&MockReviewService{}, &MockDesignItemService{}, activity)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("GET", "/api/v1/admin/activity?project_id="+projectID.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		activity.AssertExpectations(t)
	})

	t.Run("malformed project filter is 400", func(t *testing.T) {
		activity := &MockActivityService{}
		r := newReviewRouter(&MockReviewService{}, &MockDesignItemService{}, activity)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("GET", "/api/v1/admin/activity?project_id=nope", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		activity.AssertNotCalled(t, "List")
	})
}

func TestActivityHandler_AppendActivity(t *testing.T) {
	projectID := uuid.New()

	t.Run("valid entry returns 201", func(t *testing.T) {
		activity := &MockActivityService{}
		activity.On("Append", mock.Anything, mock.MatchedBy(func(in service.AppendActivityInput) bool {
			return in.ProjectID == projectID && in.Action == model.ActionProjectUpdated
		})).Return(&model.ActivityLog{ID: uuid.New(), ProjectID: projectID}, nil)

		r := newReviewRouter(&MockReviewService{}, &MockDesignItemService{}, activity)
		w := httptest.NewRecorder()
		raw, _ := json.Marshal(map[string]interface{}{
			"project_id": projectID.String(),
			"user_name":  "Admin",
			"action":     model.ActionProjectUpdated,
			"details":    "Toggled downloads",
		})
		req, _ := http.NewRequest("POST", "/api/v1/admin/activity", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+testAdminToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		activity.AssertExpectations(t)
	})

	t.Run("missing action fails binding", func(t *testing.T) {
		activity := &MockActivityService{}
		r := newReviewRouter(&MockReviewService{}, &MockDesignItemService{}, activity)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("POST", "/api/v1/admin/activity", map[string]interface{}{
			"project_id": projectID.String(),
			"user_name":  "Admin",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		activity.AssertNotCalled(t, "Append")
	})
}
