package handlers

import (
	"net/http"

	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/middleware"
	"yamdb_backend/internal/services"
	"yamdb_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// TaxonomyHandler serves /categories and /genres. Both namespaces are
// append-or-delete only; listings are public, writes are admin-gated.
type TaxonomyHandler struct {
	*BaseHandler
	taxonomyService services.TaxonomyService
}

func NewTaxonomyHandler(base *BaseHandler, taxonomyService services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{BaseHandler: base, taxonomyService: taxonomyService}
}

func (h *TaxonomyHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	adminMW := middleware.RequireAdmin(auth.ScopeTaxonomy)

	categories := rg.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", authMW, adminMW, h.CreateCategory)
		categories.DELETE("/:slug", authMW, adminMW, h.DeleteCategory)
	}

	genres := rg.Group("/genres")
	{
		genres.GET("", h.ListGenres)
		genres.POST("", authMW, adminMW, h.CreateGenre)
		genres.DELETE("/:slug", authMW, adminMW, h.DeleteGenre)
	}
}

func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	resp, err := h.taxonomyService.ListCategories(h.GetDB(c), c.Query("search"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req dto.TaxonomyEntryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.taxonomyService.CreateCategory(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	if err := h.taxonomyService.DeleteCategory(h.GetDB(c), c.Param("slug")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaxonomyHandler) ListGenres(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	resp, err := h.taxonomyService.ListGenres(h.GetDB(c), c.Query("search"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TaxonomyHandler) CreateGenre(c *gin.Context) {
	var req dto.TaxonomyEntryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.taxonomyService.CreateGenre(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TaxonomyHandler) DeleteGenre(c *gin.Context) {
	if err := h.taxonomyService.DeleteGenre(h.GetDB(c), c.Param("slug")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
