package services

import (
	"yamdb_backend/internal/models"
	"yamdb_backend/internal/repositories"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/internal/validator"
	"yamdb_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TitleService interface {
	Create(db *gorm.DB, req *dto.CreateTitleRequest) (*dto.TitleResponse, error)
	Get(db *gorm.DB, id string) (*dto.TitleResponse, error)
	List(db *gorm.DB, filter repositories.TitleFilter, page, pageSize int) (*dto.TitleListResponse, error)
	Update(db *gorm.DB, id string, req *dto.UpdateTitleRequest) (*dto.TitleResponse, error)
	Delete(db *gorm.DB, id string) error
}

type titleService struct {
	titleRepo    repositories.TitleRepository
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
}

func NewTitleService(
	titleRepo repositories.TitleRepository,
	categoryRepo repositories.CategoryRepository,
	genreRepo repositories.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) Create(db *gorm.DB, req *dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	if err := validator.ValidateYear(req.Year); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"year": err.Error()})
	}

	category, err := s.resolveCategory(db, req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(db, req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  category.ID,
		Genres:      genres,
	}
	if err := s.titleRepo.Create(db, title); err != nil {
		if apperrors.Is(err, repositories.ErrTitleAlreadyExists) {
			return nil, apperrors.ErrConflict(err, "titles", "A title with this name already exists in this category")
		}
		return nil, err
	}

	return s.Get(db, title.ID)
}

func (s *titleService) Get(db *gorm.DB, id string) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.FindByID(db, id)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrTitleNotFound)
	}
	resp := dto.NewTitleResponse(title)
	return &resp, nil
}

func (s *titleService) List(db *gorm.DB, filter repositories.TitleFilter, page, pageSize int) (*dto.TitleListResponse, error) {
	titles, total, err := s.titleRepo.List(db, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.TitleListResponse{
		Results:  make([]dto.TitleResponse, 0, len(titles)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range titles {
		resp.Results = append(resp.Results, dto.NewTitleResponse(&titles[i]))
	}
	return resp, nil
}

func (s *titleService) Update(db *gorm.DB, id string, req *dto.UpdateTitleRequest) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.FindByID(db, id)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrTitleNotFound)
	}

	if req.Year != nil {
		if err := validator.ValidateYear(*req.Year); err != nil {
			return nil, apperrors.ValidationError(map[string]string{"year": err.Error()})
		}
		title.Year = *req.Year
	}
	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(db, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = category.ID
	}

	if err := s.titleRepo.Update(db, title); err != nil {
		if apperrors.Is(err, repositories.ErrTitleAlreadyExists) {
			return nil, apperrors.ErrConflict(err, "titles", "A title with this name already exists in this category")
		}
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(db, req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(db, title, genres); err != nil {
			return nil, err
		}
	}

	return s.Get(db, title.ID)
}

func (s *titleService) Delete(db *gorm.DB, id string) error {
	if err := s.titleRepo.Delete(db, id); err != nil {
		return notFoundOr(err, repositories.ErrTitleNotFound)
	}
	return nil
}

// resolveCategory maps an unknown slug to a validation failure, not a 404:
// the slug arrived in the request body.
func (s *titleService) resolveCategory(db *gorm.DB, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(db, slug)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ValidationError(map[string]string{"category": "unknown category slug"})
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(db *gorm.DB, slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(db, dedupe(slugs))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUnknownGenreSlug) {
			return nil, apperrors.ValidationError(map[string]string{"genre": "unknown genre slug"})
		}
		return nil, err
	}
	return genres, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
