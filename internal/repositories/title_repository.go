package repositories

import (
	"errors"

	"yamdb_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTitleNotFound      = errors.New("title not found")
	ErrTitleAlreadyExists = errors.New("title already exists in this category")
)

// TitleFilter narrows title listings. Zero values mean "no filter".
type TitleFilter struct {
	Name         string
	Year         int
	GenreSlug    string
	CategorySlug string
}

type TitleRepository interface {
	Create(db *gorm.DB, title *models.Title) error
	// FindByID returns the title with category, genres and the rating
	// annotation loaded.
	FindByID(db *gorm.DB, id string) (*models.Title, error)
	List(db *gorm.DB, filter TitleFilter, limit, offset int) ([]models.Title, int64, error)
	Update(db *gorm.DB, title *models.Title) error
	ReplaceGenres(db *gorm.DB, title *models.Title, genres []models.Genre) error
	Delete(db *gorm.DB, id string) error
}

type titleRepository struct{}

func NewTitleRepository() TitleRepository {
	return &titleRepository{}
}

// ratingSelect annotates each row with the average review score; NULL when
// the title has no reviews yet.
const ratingSelect = "titles.*, (SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

func (r *titleRepository) Create(db *gorm.DB, title *models.Title) error {
	if err := db.Create(title).Error; err != nil {
		if IsDuplicate(err) {
			return ErrTitleAlreadyExists
		}
		return err
	}
	return nil
}

func (r *titleRepository) FindByID(db *gorm.DB, id string) (*models.Title, error) {
	var title models.Title
	err := db.
		Preload("Category").
		Preload("Genres").
		Select(ratingSelect).
		First(&title, "titles.id = ?", id).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) List(db *gorm.DB, filter TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	query := db.Model(&models.Title{})

	if filter.Name != "" {
		query = query.Where("titles.name = ?", filter.Name)
	}
	if filter.Year != 0 {
		query = query.Where("titles.year = ?", filter.Year)
	}
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		query = query.
			Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}

	var total int64
	if err := query.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var titles []models.Title
	err := query.
		Preload("Category").
		Preload("Genres").
		Select(ratingSelect).
		Order("titles.name").
		Limit(limit).Offset(offset).
		Find(&titles).Error
	return titles, total, err
}

func (r *titleRepository) Update(db *gorm.DB, title *models.Title) error {
	err := db.Omit("Genres", "Category").Save(title).Error
	if err != nil {
		if IsDuplicate(err) {
			return ErrTitleAlreadyExists
		}
		return err
	}
	return nil
}

func (r *titleRepository) ReplaceGenres(db *gorm.DB, title *models.Title, genres []models.Genre) error {
	return db.Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Title{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTitleNotFound
	}
	return nil
}
