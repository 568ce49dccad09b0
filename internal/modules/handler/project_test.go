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

// MockProjectService is a mock implementation of service.ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, archived bool) ([]model.Project, error) {
	args := m.Called(ctx, archived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, id uuid.UUID, in service.UpdateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Search(ctx context.Context, query string) ([]model.Project, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

const testAdminToken = "test-admin-token"

func newAdminRouter(projects *MockProjectService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Admin: config.AdminCfg{BearerToken: testAdminToken}}
	h := NewProjectHandler(projects)

	r := gin.New()
	g := r.Group("/api/v1/admin", middleware.AdminAuth(cfg))
	g.POST("/projects", h.CreateProject)
	g.GET("/projects", h.ListProjects)
	g.GET("/projects/search", h.SearchProjects)
	g.GET("/projects/:project_id", h.GetProject)
	g.PATCH("/projects/:project_id", h.UpdateProject)
	return r
}

func adminReq(method, path string, body interface{}) *http.Request {
	var req *http.Request
	if body != nil {
		raw, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	return req
}

func TestAdminAuth(t *testing.T) {
	r := newAdminRouter(&MockProjectService{})

	t.Run("missing header is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/admin/projects", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong token is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/admin/projects", nil)
		req.Header.Set("Authorization", "Bearer wrong-token")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-bearer scheme is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/admin/projects", nil)
		req.Header.Set("Authorization", "Basic "+testAdminToken)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProjectHandler_CreateProject(t *testing.T) {
	t.Run("creates and returns 201", func(t *testing.T) {
		projects := &MockProjectService{}
		projects.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateProjectInput) bool {
			return in.ProjectNumber == "NSB-2024-001" && in.Name == "Brand Identity Package"
		})).Return(&model.Project{ID: uuid.New(), ProjectNumber: "NSB-2024-001"}, nil)

		r := newAdminRouter(projects)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("POST", "/api/v1/admin/projects", map[string]interface{}{
			"project_number": "NSB-2024-001",
			"name":           "Brand Identity Package",
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
		projects.AssertExpectations(t)
	})

	t.Run("missing name fails binding", func(t *testing.T) {
		projects := &MockProjectService{}
		r := newAdminRouter(projects)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("POST", "/api/v1/admin/projects", map[string]interface{}{
			"project_number": "NSB-2024-001",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		projects.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate number is 409", func(t *testing.T) {
		projects := &MockProjectService{}
		projects.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperr.Conflict("project", "project number already in use"))

		r := newAdminRouter(projects)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("POST", "/api/v1/admin/projects", map[string]interface{}{
			"project_number": "NSB-2024-001",
			"name":           "Brand Identity Package",
		}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestProjectHandler_GetProject(t *testing.T) {
	t.Run("absent project is 404", func(t *testing.T) {
		id := uuid.New()
		projects := &MockProjectService{}
		projects.On("Get", mock.Anything, id).Return(nil, nil)

		r := newAdminRouter(projects)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("GET", "/api/v1/admin/projects/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		r := newAdminRouter(&MockProjectService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("GET", "/api/v1/admin/projects/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProjectHandler_ListProjects(t *testing.T) {
	t.Run("archived flag is passed through", func(t *testing.T) {
		projects := &MockProjectService{}
		projects.On("List", mock.Anything, true).Return([]model.Project{}, nil)

		r := newAdminRouter(projects)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("GET", "/api/v1/admin/projects?archived=true", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		projects.AssertExpectations(t)
	})

	t.Run("search requires a query", func(t *testing.T) {
		projects := &MockProjectService{}
		r := newAdminRouter(projects)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("GET", "/api/v1/admin/projects/search", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		projects.AssertNotCalled(t, "Search")
	})
}

func TestProjectHandler_UpdateProject(t *testing.T) {
	id := uuid.New()

	t.Run("partial body maps to pointer fields", func(t *testing.T) {
		projects := &MockProjectService{}
		projects.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateProjectInput) bool {
			return in.Archived != nil && *in.Archived && in.Name == nil
		})).Return(&model.Project{ID: id, Archived: true}, nil)

		r := newAdminRouter(projects)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("PATCH", "/api/v1/admin/projects/"+id.String(), map[string]interface{}{
			"archived": true,
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		projects.AssertExpectations(t)
	})

	t.Run("unknown project is 404", func(t *testing.T) {
		projects := &MockProjectService{}
		projects.On("Update", mock.Anything, id, mock.Anything).
			Return(nil, apperr.NotFound("project", id.String()))

		r := newAdminRouter(projects)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq("PATCH", "/api/v1/admin/projects/"+id.String(), map[string]interface{}{
			"archived": true,
		}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
