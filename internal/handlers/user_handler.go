package handlers

import (
	"net/http"

	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/middleware"
	"yamdb_backend/internal/services"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

// RegisterRoutes mounts /users. The "me" alias shares the collection
// prefix, so every route here requires authentication; administration of
// other accounts additionally requires the admin gate.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	adminMW := middleware.RequireAdmin(auth.ScopeUsers)

	users := rg.Group("/users", authMW)
	{
		users.GET("/me", h.GetProfile)
		users.PATCH("/me", h.UpdateProfile)

		users.GET("", adminMW, h.List)
		users.POST("", adminMW, h.Create)
		users.GET("/:username", adminMW, h.Get)
		users.PATCH("/:username", adminMW, h.Update)
		users.DELETE("/:username", adminMW, h.Delete)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	resp, err := h.userService.List(h.GetDB(c), c.Query("search"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Get(c *gin.Context) {
	resp, err := h.userService.GetByUsername(h.GetDB(c), c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.Update(h.GetDB(c), c.Param("username"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(h.GetDB(c), c.Param("username")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	requester := h.CurrentUser(c)
	if requester == nil {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	resp, err := h.userService.GetProfile(h.GetDB(c), requester.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	requester := h.CurrentUser(c)
	if requester == nil {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateProfile(h.GetDB(c), requester.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
