package handlers

import (
	"net/http"

	"yamdb_backend/internal/services"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

// RegisterRoutes nests reviews under their title. Reads are public; writes
// need an authenticated requester, ownership is enforced in the service.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	reviews := rg.Group("/titles/:title_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:review_id", h.Get)
		reviews.POST("", authMW, h.Create)
		reviews.PATCH("/:review_id", authMW, h.Update)
		reviews.DELETE("/:review_id", authMW, h.Delete)
	}
}

func (h *ReviewHandler) List(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	resp, err := h.reviewService.List(h.GetDB(c), c.Param("title_id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	resp, err := h.reviewService.Get(h.GetDB(c), c.Param("title_id"), c.Param("review_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	requester := h.CurrentUser(c)
	if requester == nil {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.reviewService.Create(h.GetDB(c), requester, c.Param("title_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	requester := h.CurrentUser(c)
	if requester == nil {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req dto.UpdateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.reviewService.Update(h.GetDB(c), requester, c.Param("title_id"), c.Param("review_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	requester := h.CurrentUser(c)
	if requester == nil {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	if err := h.reviewService.Delete(h.GetDB(c), requester, c.Param("title_id"), c.Param("review_id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
