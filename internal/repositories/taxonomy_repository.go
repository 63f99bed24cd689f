package repositories

import (
	"errors"

	"yamdb_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrGenreNotFound     = errors.New("genre not found")
	ErrSlugAlreadyExists = errors.New("slug already exists")
	ErrUnknownGenreSlug  = errors.New("unknown genre slug")
)

type CategoryRepository interface {
	Create(db *gorm.DB, category *models.Category) error
	FindBySlug(db *gorm.DB, slug string) (*models.Category, error)
	List(db *gorm.DB, search string, limit, offset int) ([]models.Category, int64, error)
	DeleteBySlug(db *gorm.DB, slug string) error
}

type GenreRepository interface {
	Create(db *gorm.DB, genre *models.Genre) error
	FindBySlug(db *gorm.DB, slug string) (*models.Genre, error)
	// FindBySlugs resolves every slug or fails with ErrUnknownGenreSlug.
	FindBySlugs(db *gorm.DB, slugs []string) ([]models.Genre, error)
	List(db *gorm.DB, search string, limit, offset int) ([]models.Genre, int64, error)
	DeleteBySlug(db *gorm.DB, slug string) error
}

type categoryRepository struct{}

func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(db *gorm.DB, category *models.Category) error {
	if err := db.Create(category).Error; err != nil {
		if IsDuplicate(err) {
			return ErrSlugAlreadyExists
		}
		return err
	}
	return nil
}

func (r *categoryRepository) FindBySlug(db *gorm.DB, slug string) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, "slug = ?", slug).Error; err != nil {
		if IsNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(db *gorm.DB, search string, limit, offset int) ([]models.Category, int64, error) {
	query := db.Model(&models.Category{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.Category
	err := query.Order("name").Limit(limit).Offset(offset).Find(&categories).Error
	return categories, total, err
}

func (r *categoryRepository) DeleteBySlug(db *gorm.DB, slug string) error {
	result := db.Delete(&models.Category{}, "slug = ?", slug)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

type genreRepository struct{}

func NewGenreRepository() GenreRepository {
	return &genreRepository{}
}

func (r *genreRepository) Create(db *gorm.DB, genre *models.Genre) error {
	if err := db.Create(genre).Error; err != nil {
		if IsDuplicate(err) {
			return ErrSlugAlreadyExists
		}
		return err
	}
	return nil
}

func (r *genreRepository) FindBySlug(db *gorm.DB, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := db.First(&genre, "slug = ?", slug).Error; err != nil {
		if IsNotFound(err) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindBySlugs(db *gorm.DB, slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if err := db.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, ErrUnknownGenreSlug
	}
	return genres, nil
}

func (r *genreRepository) List(db *gorm.DB, search string, limit, offset int) ([]models.Genre, int64, error) {
	query := db.Model(&models.Genre{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var genres []models.Genre
	err := query.Order("name").Limit(limit).Offset(offset).Find(&genres).Error
	return genres, total, err
}

func (r *genreRepository) DeleteBySlug(db *gorm.DB, slug string) error {
	result := db.Delete(&models.Genre{}, "slug = ?", slug)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGenreNotFound
	}
	return nil
}
