package handlers

import (
	"strconv"

	"yamdb_backend/internal/middleware"
	"yamdb_backend/internal/models"
	"yamdb_backend/internal/validator"
	"yamdb_backend/pkg/apperrors"
	"yamdb_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// BaseHandler carries the helpers shared by every resource handler.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetDB pulls the request-scoped database handle set by DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	value, _ := c.Get(string(contextkeys.DBContextKey))
	db, _ := value.(*gorm.DB)
	return db
}

// BindAndValidate_JSON binds the JSON body into obj and validates it.
// On failure the error response is already written and false is returned.
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid JSON payload"))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if ve, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(ve.Errors))
		} else {
			apperrors.HandleError(c, err)
		}
		return false
	}
	return true
}

// HandleServiceError maps a service error onto the uniform error envelope.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// ParsePagination reads ?page and ?page_size with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// CurrentUser returns the authenticated requester, nil on public routes.
func (h *BaseHandler) CurrentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}
