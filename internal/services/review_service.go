package services

import (
	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/models"
	"yamdb_backend/internal/repositories"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/internal/validator"
	"yamdb_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	Create(db *gorm.DB, requester *models.User, titleID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Get(db *gorm.DB, titleID, reviewID string) (*dto.ReviewResponse, error)
	List(db *gorm.DB, titleID string, page, pageSize int) (*dto.ReviewListResponse, error)
	Update(db *gorm.DB, requester *models.User, titleID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(db *gorm.DB, requester *models.User, titleID, reviewID string) error
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	titleRepo  repositories.TitleRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	titleRepo repositories.TitleRepository,
) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, titleRepo: titleRepo}
}

func (s *reviewService) Create(db *gorm.DB, requester *models.User, titleID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if err := validator.ValidateScore(req.Score); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"score": err.Error()})
	}
	if err := s.ensureTitleExists(db, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByAuthorAndTitle(db, requester.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	review := &models.Review{
		Authored: models.Authored{Text: req.Text, AuthorID: requester.ID},
		Score:    req.Score,
		TitleID:  titleID,
	}
	if err := s.reviewRepo.Create(db, review); err != nil {
		// The unique index closes the check-then-create race.
		if apperrors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrDuplicateReview
		}
		return nil, err
	}

	review.Author = requester
	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) Get(db *gorm.DB, titleID, reviewID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(db, titleID, reviewID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrReviewNotFound)
	}
	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) List(db *gorm.DB, titleID string, page, pageSize int) (*dto.ReviewListResponse, error) {
	if err := s.ensureTitleExists(db, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(db, titleID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReviewListResponse{
		Results:  make([]dto.ReviewResponse, 0, len(reviews)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range reviews {
		resp.Results = append(resp.Results, dto.NewReviewResponse(&reviews[i]))
	}
	return resp, nil
}

func (s *reviewService) Update(db *gorm.DB, requester *models.User, titleID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(db, titleID, reviewID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrReviewNotFound)
	}
	if !auth.CanModifyContent(requester, review.AuthorID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Score != nil {
		if err := validator.ValidateScore(*req.Score); err != nil {
			return nil, apperrors.ValidationError(map[string]string{"score": err.Error()})
		}
		review.Score = *req.Score
	}
	if req.Text != nil {
		review.Text = *req.Text
	}

	if err := s.reviewRepo.Update(db, review); err != nil {
		return nil, err
	}
	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) Delete(db *gorm.DB, requester *models.User, titleID, reviewID string) error {
	review, err := s.reviewRepo.FindByID(db, titleID, reviewID)
	if err != nil {
		return notFoundOr(err, repositories.ErrReviewNotFound)
	}
	if !auth.CanModifyContent(requester, review.AuthorID) {
		return apperrors.ErrInsufficientPermissions
	}
	return s.reviewRepo.Delete(db, titleID, reviewID)
}

func (s *reviewService) ensureTitleExists(db *gorm.DB, titleID string) error {
	if _, err := s.titleRepo.FindByID(db, titleID); err != nil {
		return notFoundOr(err, repositories.ErrTitleNotFound)
	}
	return nil
}
