package dto

import (
	"time"

	"yamdb_backend/internal/models"
)

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

type CommentResponse struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

type CommentListResponse struct {
	Results  []CommentResponse `json:"results"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func NewCommentResponse(comment *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		PubDate: comment.PubDate,
	}
	if comment.Author != nil {
		resp.Author = comment.Author.Username
	}
	return resp
}
