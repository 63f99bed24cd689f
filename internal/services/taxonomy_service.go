package services

import (
	"yamdb_backend/internal/models"
	"yamdb_backend/internal/repositories"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// TaxonomyService manages the two flat slug namespaces, categories and
// genres. Entries are created and deleted, never updated.
type TaxonomyService interface {
	CreateCategory(db *gorm.DB, req *dto.TaxonomyEntryRequest) (*dto.TaxonomyEntryResponse, error)
	ListCategories(db *gorm.DB, search string, page, pageSize int) (*dto.TaxonomyListResponse, error)
	DeleteCategory(db *gorm.DB, slug string) error

	CreateGenre(db *gorm.DB, req *dto.TaxonomyEntryRequest) (*dto.TaxonomyEntryResponse, error)
	ListGenres(db *gorm.DB, search string, page, pageSize int) (*dto.TaxonomyListResponse, error)
	DeleteGenre(db *gorm.DB, slug string) error
}

type taxonomyService struct {
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
}

func NewTaxonomyService(
	categoryRepo repositories.CategoryRepository,
	genreRepo repositories.GenreRepository,
) TaxonomyService {
	return &taxonomyService{categoryRepo: categoryRepo, genreRepo: genreRepo}
}

func (s *taxonomyService) CreateCategory(db *gorm.DB, req *dto.TaxonomyEntryRequest) (*dto.TaxonomyEntryResponse, error) {
	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categoryRepo.Create(db, category); err != nil {
		if apperrors.Is(err, repositories.ErrSlugAlreadyExists) {
			return nil, apperrors.ErrConflict(err, "categories", "Category slug already exists")
		}
		return nil, err
	}
	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

func (s *taxonomyService) ListCategories(db *gorm.DB, search string, page, pageSize int) (*dto.TaxonomyListResponse, error) {
	categories, total, err := s.categoryRepo.List(db, search, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	resp := newTaxonomyList(total, page, pageSize, len(categories))
	for i := range categories {
		resp.Results = append(resp.Results, dto.NewCategoryResponse(&categories[i]))
	}
	return resp, nil
}

func (s *taxonomyService) DeleteCategory(db *gorm.DB, slug string) error {
	if err := s.categoryRepo.DeleteBySlug(db, slug); err != nil {
		return notFoundOr(err, repositories.ErrCategoryNotFound)
	}
	return nil
}

func (s *taxonomyService) CreateGenre(db *gorm.DB, req *dto.TaxonomyEntryRequest) (*dto.TaxonomyEntryResponse, error) {
	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.genreRepo.Create(db, genre); err != nil {
		if apperrors.Is(err, repositories.ErrSlugAlreadyExists) {
			return nil, apperrors.ErrConflict(err, "genres", "Genre slug already exists")
		}
		return nil, err
	}
	resp := dto.NewGenreResponse(genre)
	return &resp, nil
}

func (s *taxonomyService) ListGenres(db *gorm.DB, search string, page, pageSize int) (*dto.TaxonomyListResponse, error) {
	genres, total, err := s.genreRepo.List(db, search, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	resp := newTaxonomyList(total, page, pageSize, len(genres))
	for i := range genres {
		resp.Results = append(resp.Results, dto.NewGenreResponse(&genres[i]))
	}
	return resp, nil
}

func (s *taxonomyService) DeleteGenre(db *gorm.DB, slug string) error {
	if err := s.genreRepo.DeleteBySlug(db, slug); err != nil {
		return notFoundOr(err, repositories.ErrGenreNotFound)
	}
	return nil
}

func newTaxonomyList(total int64, page, pageSize, capacity int) *dto.TaxonomyListResponse {
	return &dto.TaxonomyListResponse{
		Results:  make([]dto.TaxonomyEntryResponse, 0, capacity),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
