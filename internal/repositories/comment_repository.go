package repositories

import (
	"errors"

	"yamdb_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.Comment) error
	// FindByID is scoped to the parent review.
	FindByID(db *gorm.DB, reviewID, commentID string) (*models.Comment, error)
	ListByReview(db *gorm.DB, reviewID string, limit, offset int) ([]models.Comment, int64, error)
	Update(db *gorm.DB, comment *models.Comment) error
	Delete(db *gorm.DB, reviewID, commentID string) error
}

type commentRepository struct{}

func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *commentRepository) FindByID(db *gorm.DB, reviewID, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := db.
		Preload("Author").
		First(&comment, "id = ? AND review_id = ?", commentID, reviewID).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByReview(db *gorm.DB, reviewID string, limit, offset int) ([]models.Comment, int64, error) {
	query := db.Model(&models.Comment{}).Where("review_id = ?", reviewID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := query.
		Preload("Author").
		Order("pub_date DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, total, err
}

func (r *commentRepository) Update(db *gorm.DB, comment *models.Comment) error {
	return db.Save(comment).Error
}

func (r *commentRepository) Delete(db *gorm.DB, reviewID, commentID string) error {
	result := db.Delete(&models.Comment{}, "id = ? AND review_id = ?", commentID, reviewID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
