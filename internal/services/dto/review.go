package dto

import (
	"time"

	"yamdb_backend/internal/models"
)

type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// ReviewResponse exposes the author by username, never by id.
type ReviewResponse struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type ReviewListResponse struct {
	Results  []ReviewResponse `json:"results"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

func NewReviewResponse(review *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
	if review.Author != nil {
		resp.Author = review.Author.Username
	}
	return resp
}
