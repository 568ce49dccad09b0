package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/middleware"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/modules/serializer"
	"github.com/nsbdesign/proofroom/internal/modules/service"
)

// ClientHandler serves the unauthenticated review surface a client reaches
// through a share link. Every route sits behind the ShareLink middleware,
// so the review is already resolved when a handler runs.
type ClientHandler struct {
	items     service.DesignItemService
	comments  service.CommentService
	approvals service.ApprovalService
}

func NewClientHandler(items service.DesignItemService, comments service.CommentService, approvals service.ApprovalService) *ClientHandler {
	return &ClientHandler{items: items, comments: comments, approvals: approvals}
}

func reviewFromContext(c *gin.Context) (*service.ReviewWithProject, bool) {
	rv, ok := c.MustGet(middleware.ReviewContextKey).(*service.ReviewWithProject)
	return rv, ok
}

// GetReview godoc
//
//	@Summary		Get review by share link
//	@Description	Resolve a share link to its review, with derived project fields and display version
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			share_link	path	string	true	"Share link token"
//	@Success		200	{object}	serializer.Response{data=service.ReviewWithProject}
//	@Failure		404	{object}	serializer.Response
//	@Router			/review/{share_link} [get]
func (h *ClientHandler) GetReview(c *gin.Context) {
	rv, ok := reviewFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "review missing from context", nil))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: rv})
}

// ListItems godoc
//
//	@Summary		List review files
//	@Description	List the review's design items ordered by display index
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			share_link	path	string	true	"Share link token"
//	@Success		200	{object}	serializer.Response{data=[]model.DesignItem}
//	@Router			/review/{share_link}/items [get]
func (h *ClientHandler) ListItems(c *gin.Context) {
	rv, ok := reviewFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "review missing from context", nil))
		return
	}

	items, err := h.items.ListByReview(c.Request.Context(), rv.ID)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

// ListGroupedComments godoc
//
//	@Summary		List all threads
//	@Description	Return every comment thread of the review keyed by design item id, for one-call hydration
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			share_link	path	string	true	"Share link token"
//	@Success		200	{object}	serializer.Response
//	@Router			/review/{share_link}/comments [get]
func (h *ClientHandler) ListGroupedComments(c *gin.Context) {
	rv, ok := reviewFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "review missing from context", nil))
		return
	}

	grouped, err := h.comments.ListByReviewGrouped(c.Request.Context(), rv.ID)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: grouped})
}

// ListFileComments godoc
//
//	@Summary		List one file's thread
//	@Description	List a design item's comments in creation order
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			share_link	path	string	true	"Share link token"
//	@Param			item_id		path	string	true	"Design item ID"	Format(uuid)
//	@Success		200	{object}	serializer.Response{data=[]model.Comment}
//	@Router			/review/{share_link}/items/{item_id}/comments [get]
func (h *ClientHandler) ListFileComments(c *gin.Context) {
	rv, ok := reviewFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "review missing from context", nil))
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	comments, err := h.comments.ListByFile(c.Request.Context(), rv.ID, itemID)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: comments})
}

type AddCommentReq struct {
	Author  string                 `json:"author" binding:"required"`
	Content string                 `json:"content" binding:"required"`
	Type    model.EntryType        `json:"type" binding:"required"`
	Drawing string                 `json:"drawing"`
	Meta    map[string]interface{} `json:"meta"`
}

// AddComment godoc
//
//	@Summary		Add comment or annotation
//	@Description	Append an entry to a design item's feedback thread
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			share_link	path	string					true	"Share link token"
//	@Param			item_id		path	string					true	"Design item ID"	Format(uuid)
//	@Param			payload		body	handler.AddCommentReq	true	"AddComment payload"
//	@Success		201	{object}	serializer.Response{data=model.Comment}
//	@Failure		400	{object}	serializer.Response
//	@Router			/review/{share_link}/items/{item_id}/comments [post]
func (h *ClientHandler) AddComment(c *gin.Context) {
	rv, ok := reviewFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "review missing from context", nil))
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := AddCommentReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), service.AddCommentInput{
		ReviewID:     rv.ID,
		DesignItemID: itemID,
		Author:       req.Author,
		Content:      req.Content,
		Type:         req.Type,
		Drawing:      req.Drawing,
		Meta:         req.Meta,
	})
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: comment})
}

type CreateApprovalReq struct {
	FirstName string         `json:"first_name" binding:"required"`
	LastName  string         `json:"last_name" binding:"required"`
	Decision  model.Decision `json:"decision" binding:"required"`
	Notes     string         `json:"notes"`
}

// CreateApproval godoc
//
//	@Summary		Record decision
//	@Description	Record an approve / request-revision decision; the review status follows the latest decision
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			share_link	path	string						true	"Share link token"
//	@Param			payload		body	handler.CreateApprovalReq	true	"CreateApproval payload"
//	@Success		201	{object}	serializer.Response{data=model.Approval}
//	@Failure		400	{object}	serializer.Response
//	@Router			/review/{share_link}/approval [post]
func (h *ClientHandler) CreateApproval(c *gin.Context) {
	rv, ok := reviewFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "review missing from context", nil))
		return
	}

	req := CreateApprovalReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	approval, err := h.approvals.Create(c.Request.Context(), service.CreateApprovalInput{
		ReviewID:  rv.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Decision:  req.Decision,
		Notes:     req.Notes,
	})
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: approval})
}

type DownloadRes struct {
	URL string `json:"url"`
}

// DownloadItem godoc
//
//	@Summary		Download a file
//	@Description	Presign a download URL for a design item when the project allows downloads
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			share_link	path	string	true	"Share link token"
//	@Param			item_id		path	string	true	"Design item ID"	Format(uuid)
//	@Success		200	{object}	serializer.Response{data=handler.DownloadRes}
//	@Failure		400	{object}	serializer.Response
//	@Router			/review/{share_link}/items/{item_id}/download [get]
func (h *ClientHandler) DownloadItem(c *gin.Context) {
	rv, ok := reviewFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "review missing from context", nil))
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	url, err := h.items.DownloadURL(c.Request.Context(), rv, itemID)
	if err != nil {
		code, body := serializer.FromError(err)
		c.JSON(code, body)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: DownloadRes{URL: url}})
}
