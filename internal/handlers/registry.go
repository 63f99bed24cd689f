package handlers

import (
	"yamdb_backend/internal/services"
	"yamdb_backend/internal/validator"
)

// AppHandlers bundles every resource handler for route registration.
type AppHandlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Taxonomy *TaxonomyHandler
	Titles   *TitleHandler
	Reviews  *ReviewHandler
	Comments *CommentHandler
}

func NewAppHandlers(svc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		Auth:     NewAuthHandler(base, svc.Auth),
		Users:    NewUserHandler(base, svc.Users),
		Taxonomy: NewTaxonomyHandler(base, svc.Taxonomy),
		Titles:   NewTitleHandler(base, svc.Titles),
		Reviews:  NewReviewHandler(base, svc.Reviews),
		Comments: NewCommentHandler(base, svc.Comments),
	}
}
