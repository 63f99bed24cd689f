package services

import (
	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/email"
	"yamdb_backend/internal/repositories"
)

// ServiceContainer wires every service with its repositories and shared
// collaborators. Built once at startup.
type ServiceContainer struct {
	Auth     AuthService
	Users    UserService
	Taxonomy TaxonomyService
	Titles   TitleService
	Reviews  ReviewService
	Comments CommentService
}

func NewServiceContainer(mailer email.Provider, codes auth.CodeConfig, tokens *auth.TokenManager) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	categoryRepo := repositories.NewCategoryRepository()
	genreRepo := repositories.NewGenreRepository()
	titleRepo := repositories.NewTitleRepository()
	reviewRepo := repositories.NewReviewRepository()
	commentRepo := repositories.NewCommentRepository()

	return &ServiceContainer{
		Auth:     NewAuthService(userRepo, mailer, codes, tokens),
		Users:    NewUserService(userRepo),
		Taxonomy: NewTaxonomyService(categoryRepo, genreRepo),
		Titles:   NewTitleService(titleRepo, categoryRepo, genreRepo),
		Reviews:  NewReviewService(reviewRepo, titleRepo),
		Comments: NewCommentService(commentRepo, reviewRepo),
	}
}
