package handlers

import (
	"net/http"

	"yamdb_backend/internal/services"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{BaseHandler: base, commentService: commentService}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	comments := rg.Group("/titles/:title_id/reviews/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.Get)
		comments.POST("", authMW, h.Create)
		comments.PATCH("/:comment_id", authMW, h.Update)
		comments.DELETE("/:comment_id", authMW, h.Delete)
	}
}

func (h *CommentHandler) List(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	resp, err := h.commentService.List(h.GetDB(c), c.Param("title_id"), c.Param("review_id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Get(c *gin.Context) {
	resp, err := h.commentService.Get(h.GetDB(c), c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Create(c *gin.Context) {
	requester := h.CurrentUser(c)
	if requester == nil {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.commentService.Create(h.GetDB(c), requester, c.Param("title_id"), c.Param("review_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CommentHandler) Update(c *gin.Context) {
	requester := h.CurrentUser(c)
	if requester == nil {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req dto.UpdateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.commentService.Update(h.GetDB(c), requester, c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	requester := h.CurrentUser(c)
	if requester == nil {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	if err := h.commentService.Delete(h.GetDB(c), requester, c.Param("title_id"), c.Param("review_id"), c.Param("comment_id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
