package repositories

import (
	"errors"

	"yamdb_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this title")
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	// FindByID is scoped to a title so /titles/{a}/reviews/{b} cannot
	// address a review of another title.
	FindByID(db *gorm.DB, titleID, reviewID string) (*models.Review, error)
	ExistsByAuthorAndTitle(db *gorm.DB, authorID, titleID string) (bool, error)
	ListByTitle(db *gorm.DB, titleID string, limit, offset int) ([]models.Review, int64, error)
	Update(db *gorm.DB, review *models.Review) error
	Delete(db *gorm.DB, titleID, reviewID string) error
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if IsDuplicate(err) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *reviewRepository) FindByID(db *gorm.DB, titleID, reviewID string) (*models.Review, error) {
	var review models.Review
	err := db.
		Preload("Author").
		First(&review, "id = ? AND title_id = ?", reviewID, titleID).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ExistsByAuthorAndTitle(db *gorm.DB, authorID, titleID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("author_id = ? AND title_id = ?", authorID, titleID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListByTitle(db *gorm.DB, titleID string, limit, offset int) ([]models.Review, int64, error) {
	query := db.Model(&models.Review{}).Where("title_id = ?", titleID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.
		Preload("Author").
		Order("pub_date DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepository) Update(db *gorm.DB, review *models.Review) error {
	return db.Save(review).Error
}

func (r *reviewRepository) Delete(db *gorm.DB, titleID, reviewID string) error {
	result := db.Delete(&models.Review{}, "id = ? AND title_id = ?", reviewID, titleID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
