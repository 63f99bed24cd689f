package handlers

import (
	"net/http"
	"strconv"

	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/middleware"
	"yamdb_backend/internal/repositories"
	"yamdb_backend/internal/services"
	"yamdb_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	*BaseHandler
	titleService services.TitleService
}

func NewTitleHandler(base *BaseHandler, titleService services.TitleService) *TitleHandler {
	return &TitleHandler{BaseHandler: base, titleService: titleService}
}

func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	adminMW := middleware.RequireAdmin(auth.ScopeTitles)

	titles := rg.Group("/titles")
	{
		titles.GET("", h.List)
		titles.GET("/:title_id", h.Get)
		titles.POST("", authMW, adminMW, h.Create)
		titles.PATCH("/:title_id", authMW, adminMW, h.Update)
		titles.DELETE("/:title_id", authMW, adminMW, h.Delete)
	}
}

func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)

	filter := repositories.TitleFilter{
		Name:         c.Query("name"),
		GenreSlug:    c.Query("genre"),
		CategorySlug: c.Query("category"),
	}
	if year := c.Query("year"); year != "" {
		filter.Year, _ = strconv.Atoi(year)
	}

	resp, err := h.titleService.List(h.GetDB(c), filter, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) Get(c *gin.Context) {
	resp, err := h.titleService.Get(h.GetDB(c), c.Param("title_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.titleService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TitleHandler) Update(c *gin.Context) {
	var req dto.UpdateTitleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.titleService.Update(h.GetDB(c), c.Param("title_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) Delete(c *gin.Context) {
	if err := h.titleService.Delete(h.GetDB(c), c.Param("title_id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
