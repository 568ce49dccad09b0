package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/serializer"
	"github.com/nsbdesign/proofroom/internal/modules/service"
)

type ActivityHandler struct {
	svc service.ActivityService
}

func NewActivityHandler(s service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: s}
}

type ListActivityReq struct {
	ProjectID string `form:"project_id" json:"project_id"`
}

// ListActivity godoc
//
//	@Summary		List activity log
//	@Description	Global trail newest first; a project's trail oldest first when project_id is given
//	@Tags			activity
//	@Accept			json
//	@Produce		json
//	@Param			project_id	query	string	false	"Filter by project"	Format(uuid)
//	@Security		AdminAuth
//	@Success		200	{object}	serializer.Response{data=[]model.ActivityLog}
//	@Router			/admin/activity [get]
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	req := ListActivityReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	var projectID *uuid.UUID
	if req.ProjectID != "" {
		id, err := uuid.Parse(req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		projectID = &id
	}

	logs, err := h.svc.List(c.Request.Context(), projectID)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: logs})
}

type AppendActivityReq struct {
	ProjectID string `json:"project_id" binding:"required"`
	UserName  string `json:"user_name" binding:"required"`
	Action    string `json:"action" binding:"required"`
	Details   string `json:"details"`
}

// AppendActivity godoc
//
//	@Summary		Append activity entry
//	@Description	Record an audit entry against a project
//	@Tags			activity
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.AppendActivityReq	true	"AppendActivity payload"
//	@Security		AdminAuth
//	@Success		201	{object}	serializer.Response{data=model.ActivityLog}
//	@Router			/admin/activity [post]
func (h *ActivityHandler) AppendActivity(c *gin.Context) {
	req := AppendActivityReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	entry, err := h.svc.Append(c.Request.Context(), service.AppendActivityInput{
		ProjectID: projectID,
		UserName:  req.UserName,
		Action:    req.Action,
		Details:   req.Details,
	})
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: entry})
}
