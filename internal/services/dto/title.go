package dto

import "yamdb_backend/internal/models"

// CreateTitleRequest references category and genres by slug.
type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,max=50"`
	Category    string   `json:"category" validate:"required,max=50"`
}

// UpdateTitleRequest is a partial update; nil fields are left untouched.
type UpdateTitleRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" validate:"omitempty,min=1,dive,max=50"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
}

// TitleResponse denormalizes category and genres and carries the computed
// rating (null with zero reviews).
type TitleResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Year        int                     `json:"year"`
	Rating      *float64                `json:"rating"`
	Description *string                 `json:"description"`
	Genre       []TaxonomyEntryResponse `json:"genre"`
	Category    TaxonomyEntryResponse   `json:"category"`
}

type TitleListResponse struct {
	Results  []TitleResponse `json:"results"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func NewTitleResponse(title *models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      title.Rating,
		Description: title.Description,
		Genre:       make([]TaxonomyEntryResponse, 0, len(title.Genres)),
	}
	for i := range title.Genres {
		resp.Genre = append(resp.Genre, NewGenreResponse(&title.Genres[i]))
	}
	if title.Category != nil {
		resp.Category = NewCategoryResponse(title.Category)
	}
	return resp
}
