package dto

import "yamdb_backend/internal/models"

// TaxonomyEntryRequest creates a category or genre.
type TaxonomyEntryRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type TaxonomyEntryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TaxonomyListResponse struct {
	Results  []TaxonomyEntryResponse `json:"results"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

func NewCategoryResponse(category *models.Category) TaxonomyEntryResponse {
	return TaxonomyEntryResponse{Name: category.Name, Slug: category.Slug}
}

func NewGenreResponse(genre *models.Genre) TaxonomyEntryResponse {
	return TaxonomyEntryResponse{Name: genre.Name, Slug: genre.Slug}
}
