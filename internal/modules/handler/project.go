package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/serializer"
	"github.com/nsbdesign/proofroom/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	ProjectNumber string `json:"project_number" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	ClientEmail   string `json:"client_email"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Register a new client project
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"CreateProject payload"
//	@Security		AdminAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Router			/admin/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	project, err := h.svc.Create(c.Request.Context(), service.CreateProjectInput{
		ProjectNumber: req.ProjectNumber,
		Name:          req.Name,
		Description:   req.Description,
		ClientEmail:   req.ClientEmail,
	})
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: project})
}

type ListProjectsReq struct {
	Archived bool `form:"archived,default=false" json:"archived"`
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Description	List projects by archived flag, oldest first
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			archived	query	bool	false	"List archived projects instead of active ones"
//	@Security		AdminAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/admin/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	req := ListProjectsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projects, err := h.svc.List(c.Request.Context(), req.Archived)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

type SearchProjectsReq struct {
	Query string `form:"q" json:"q" binding:"required"`
}

// SearchProjects godoc
//
//	@Summary		Search projects
//	@Description	Case-insensitive substring search over name, number and description of active projects
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			q	query	string	true	"Search query"
//	@Security		AdminAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/admin/projects/search [get]
func (h *ProjectHandler) SearchProjects(c *gin.Context) {
	req := SearchProjectsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projects, err := h.svc.Search(c.Request.Context(), req.Query)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// GetProject godoc
//
//	@Summary		Get project
//	@Description	Fetch one project by id
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		AdminAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/admin/projects/{project_id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	project, err := h.svc.Get(c.Request.Context(), projectID)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

type UpdateProjectReq struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	ClientEmail     *string `json:"client_email"`
	Archived        *bool   `json:"archived"`
	DownloadEnabled *bool   `json:"download_enabled"`
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Apply a partial update; omitted fields are left alone
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string						true	"Project ID"	Format(uuid)
//	@Param			payload		body	handler.UpdateProjectReq	true	"UpdateProject payload"
//	@Security		AdminAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/admin/projects/{project_id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	project, err := h.svc.Update(c.Request.Context(), projectID, service.UpdateProjectInput{
		Name:            req.Name,
		Description:     req.Description,
		ClientEmail:     req.ClientEmail,
		Archived:        req.Archived,
		DownloadEnabled: req.DownloadEnabled,
	})
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}
