package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/modules/serializer"
	"github.com/nsbdesign/proofroom/internal/modules/service"
)

// ReviewHandler serves the admin side of the review lifecycle: opening
// review rounds, listing them, overriding status, and registering design
// items under a round.
type ReviewHandler struct {
	svc   service.ReviewService
	items service.DesignItemService
}

func NewReviewHandler(s service.ReviewService, items service.DesignItemService) *ReviewHandler {
	return &ReviewHandler{svc: s, items: items}
}

// CreateReview godoc
//
//	@Summary		Create review
//	@Description	Open a new review round under a project with a fresh share link
//	@Tags			review
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		AdminAuth
//	@Success		201	{object}	serializer.Response{data=model.Review}
//	@Router			/admin/projects/{project_id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	review, err := h.svc.Create(c.Request.Context(), projectID)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: review})
}

// ListReviews godoc
//
//	@Summary		List reviews
//	@Description	List a project's review rounds oldest first; position N is display version N
//	@Tags			review
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		AdminAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Review}
//	@Router			/admin/projects/{project_id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	reviews, err := h.svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: reviews})
}

type SetStatusReq struct {
	Status model.ReviewStatus `json:"status" binding:"required"`
}

// SetStatus godoc
//
//	@Summary		Override review status
//	@Description	Admin override of the review lifecycle status, independent of approvals
//	@Tags			review
//	@Accept			json
//	@Produce		json
//	@Param			review_id	path	string					true	"Review ID"	Format(uuid)
//	@Param			payload		body	handler.SetStatusReq	true	"SetStatus payload"
//	@Security		AdminAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/admin/reviews/{review_id}/status [put]
func (h *ReviewHandler) SetStatus(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := SetStatusReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.SetStatus(c.Request.Context(), reviewID, req.Status); err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// ListApprovals godoc
//
//	@Summary		List approvals
//	@Description	List a review's recorded decisions oldest first
//	@Tags			review
//	@Accept			json
//	@Produce		json
//	@Param			review_id	path	string	true	"Review ID"	Format(uuid)
//	@Security		AdminAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Approval}
//	@Router			/admin/reviews/{review_id}/approvals [get]
func (h *ReviewHandler) ListApprovals(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	approvals, err := h.svc.ListApprovals(c.Request.Context(), reviewID)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: approvals})
}

type CreateDesignItemReq struct {
	FileURL    string `json:"file_url" binding:"required"`
	FileName   string `json:"file_name" binding:"required"`
	FileKey    string `json:"file_key"`
	Version    int    `json:"version"`
	OrderIndex *int   `json:"order_index"`
}

// CreateDesignItem godoc
//
//	@Summary		Add design item
//	@Description	Register an uploaded file under a review; order index defaults to append-at-end
//	@Tags			review
//	@Accept			json
//	@Produce		json
//	@Param			review_id	path	string						true	"Review ID"	Format(uuid)
//	@Param			payload		body	handler.CreateDesignItemReq	true	"CreateDesignItem payload"
//	@Security		AdminAuth
//	@Success		201	{object}	serializer.Response{data=model.DesignItem}
//	@Router			/admin/reviews/{review_id}/items [post]
func (h *ReviewHandler) CreateDesignItem(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := CreateDesignItemReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	item, err := h.items.Create(c.Request.Context(), service.CreateDesignItemInput{
		ReviewID:   reviewID,
		FileURL:    req.FileURL,
		FileName:   req.FileName,
		FileKey:    req.FileKey,
		Version:    req.Version,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: item})
}

// ListDesignItems godoc
//
//	@Summary		List design items
//	@Description	List a review's files ordered by their display index
//	@Tags			review
//	@Accept			json
//	@Produce		json
//	@Param			review_id	path	string	true	"Review ID"	Format(uuid)
//	@Security		AdminAuth
//	@Success		200	{object}	serializer.Response{data=[]model.DesignItem}
//	@Router			/admin/reviews/{review_id}/items [get]
func (h *ReviewHandler) ListDesignItems(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, err := h.items.ListByReview(c.Request.Context(), reviewID)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: items})
}
