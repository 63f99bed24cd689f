package services

import (
	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/models"
	"yamdb_backend/internal/repositories"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(db *gorm.DB, requester *models.User, titleID, reviewID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Get(db *gorm.DB, titleID, reviewID, commentID string) (*dto.CommentResponse, error)
	List(db *gorm.DB, titleID, reviewID string, page, pageSize int) (*dto.CommentListResponse, error)
	Update(db *gorm.DB, requester *models.User, titleID, reviewID, commentID string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(db *gorm.DB, requester *models.User, titleID, reviewID, commentID string) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	reviewRepo  repositories.ReviewRepository
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	reviewRepo repositories.ReviewRepository,
) CommentService {
	return &commentService{commentRepo: commentRepo, reviewRepo: reviewRepo}
}

func (s *commentService) Create(db *gorm.DB, requester *models.User, titleID, reviewID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	// The review lookup validates the whole title/review path pair.
	review, err := s.reviewRepo.FindByID(db, titleID, reviewID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrReviewNotFound)
	}

	comment := &models.Comment{
		Authored: models.Authored{Text: req.Text, AuthorID: requester.ID},
		ReviewID: review.ID,
		TitleID:  review.TitleID,
	}
	if err := s.commentRepo.Create(db, comment); err != nil {
		return nil, err
	}

	comment.Author = requester
	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Get(db *gorm.DB, titleID, reviewID, commentID string) (*dto.CommentResponse, error) {
	comment, err := s.findScoped(db, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) List(db *gorm.DB, titleID, reviewID string, page, pageSize int) (*dto.CommentListResponse, error) {
	if _, err := s.reviewRepo.FindByID(db, titleID, reviewID); err != nil {
		return nil, notFoundOr(err, repositories.ErrReviewNotFound)
	}

	comments, total, err := s.commentRepo.ListByReview(db, reviewID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.CommentListResponse{
		Results:  make([]dto.CommentResponse, 0, len(comments)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range comments {
		resp.Results = append(resp.Results, dto.NewCommentResponse(&comments[i]))
	}
	return resp, nil
}

func (s *commentService) Update(db *gorm.DB, requester *models.User, titleID, reviewID, commentID string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.findScoped(db, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !auth.CanModifyContent(requester, comment.AuthorID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := s.commentRepo.Update(db, comment); err != nil {
		return nil, err
	}
	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(db *gorm.DB, requester *models.User, titleID, reviewID, commentID string) error {
	comment, err := s.findScoped(db, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !auth.CanModifyContent(requester, comment.AuthorID) {
		return apperrors.ErrInsufficientPermissions
	}
	return s.commentRepo.Delete(db, reviewID, commentID)
}

// findScoped walks title -> review -> comment so a comment is unreachable
// under a mismatched path.
func (s *commentService) findScoped(db *gorm.DB, titleID, reviewID, commentID string) (*models.Comment, error) {
	if _, err := s.reviewRepo.FindByID(db, titleID, reviewID); err != nil {
		return nil, notFoundOr(err, repositories.ErrReviewNotFound)
	}
	comment, err := s.commentRepo.FindByID(db, reviewID, commentID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrCommentNotFound)
	}
	return comment, nil
}
