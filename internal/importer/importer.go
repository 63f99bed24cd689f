// Package importer bulk-loads the seed CSV files into the database. The
// load is idempotent: rows are matched by their natural keys, so re-running
// the import refreshes rather than duplicates.
package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"yamdb_backend/internal/logger"
	"yamdb_backend/internal/models"

	"gorm.io/gorm"
)

const (
	fileCategories  = "category.csv"
	fileGenres      = "genre.csv"
	fileUsers       = "users.csv"
	fileTitles      = "titles.csv"
	fileGenreTitles = "genre_title.csv"
	fileReviews     = "review.csv"
	fileComments    = "comments.csv"
)

// Importer loads the fixture CSVs from a directory. File-local numeric ids
// are translated to stored uuids as the load proceeds, which is why the
// files must load in dependency order.
type Importer struct {
	dir string

	categoryIDs map[string]string
	genreIDs    map[string]string
	userIDs     map[string]string
	titleIDs    map[string]string
	reviewIDs   map[string]string
}

func New(dir string) *Importer {
	return &Importer{
		dir:         dir,
		categoryIDs: make(map[string]string),
		genreIDs:    make(map[string]string),
		userIDs:     make(map[string]string),
		titleIDs:    make(map[string]string),
		reviewIDs:   make(map[string]string),
	}
}

// Run executes the whole import. A missing file is skipped with a warning;
// a malformed file aborts the run.
func (im *Importer) Run(db *gorm.DB) error {
	steps := []struct {
		file string
		load func(*gorm.DB, *os.File) error
	}{
		{fileCategories, im.loadCategories},
		{fileGenres, im.loadGenres},
		{fileUsers, im.loadUsers},
		{fileTitles, im.loadTitles},
		{fileGenreTitles, im.loadGenreTitles},
		{fileReviews, im.loadReviews},
		{fileComments, im.loadComments},
	}

	for _, step := range steps {
		path := filepath.Join(im.dir, step.file)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Warn("import file missing, skipping", "file", step.file)
				continue
			}
			return fmt.Errorf("open %s: %w", step.file, err)
		}

		err = step.load(db, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("import %s: %w", step.file, err)
		}
	}
	return nil
}

func (im *Importer) loadCategories(db *gorm.DB, f *os.File) error {
	rows, err := parseTaxonomy(f)
	if err != nil {
		return err
	}

	for _, row := range rows {
		category := models.Category{Slug: row.Slug}
		if err := db.Where(&category).
			Assign(models.Category{Name: row.Name}).
			FirstOrCreate(&category).Error; err != nil {
			return err
		}
		im.categoryIDs[row.ID] = category.ID
		logger.Debug("imported category", "slug", row.Slug)
	}
	logger.Info("imported categories", "count", len(rows))
	return nil
}

func (im *Importer) loadGenres(db *gorm.DB, f *os.File) error {
	rows, err := parseTaxonomy(f)
	if err != nil {
		return err
	}

	for _, row := range rows {
		genre := models.Genre{Slug: row.Slug}
		if err := db.Where(&genre).
			Assign(models.Genre{Name: row.Name}).
			FirstOrCreate(&genre).Error; err != nil {
			return err
		}
		im.genreIDs[row.ID] = genre.ID
		logger.Debug("imported genre", "slug", row.Slug)
	}
	logger.Info("imported genres", "count", len(rows))
	return nil
}

func (im *Importer) loadUsers(db *gorm.DB, f *os.File) error {
	rows, err := parseUsers(f)
	if err != nil {
		return err
	}

	for _, row := range rows {
		role := models.UserRole(row.Role)
		if !models.ValidRole(role) {
			logger.Warn("skipping user with unknown role", "username", row.Username, "role", row.Role)
			continue
		}

		assign := models.User{
			Email:     row.Email,
			Role:      role,
			FirstName: row.FirstName,
			LastName:  row.LastName,
		}
		if row.Bio != "" {
			bio := row.Bio
			assign.Bio = &bio
		}

		user := models.User{Username: row.Username}
		if err := db.Where(&models.User{Username: row.Username}).
			Assign(assign).
			FirstOrCreate(&user).Error; err != nil {
			return err
		}
		im.userIDs[row.ID] = user.ID
		logger.Debug("imported user", "username", row.Username)
	}
	logger.Info("imported users", "count", len(rows))
	return nil
}

func (im *Importer) loadTitles(db *gorm.DB, f *os.File) error {
	rows, err := parseTitles(f)
	if err != nil {
		return err
	}

	for _, row := range rows {
		categoryID, ok := im.categoryIDs[row.CategoryID]
		if !ok {
			logger.Warn("skipping title with unknown category", "title", row.Name, "category", row.CategoryID)
			continue
		}

		title := models.Title{Name: row.Name, CategoryID: categoryID}
		if err := db.Where(&models.Title{Name: row.Name, CategoryID: categoryID}).
			Assign(models.Title{Year: row.Year}).
			FirstOrCreate(&title).Error; err != nil {
			return err
		}
		im.titleIDs[row.ID] = title.ID
		logger.Debug("imported title", "name", row.Name)
	}
	logger.Info("imported titles", "count", len(rows))
	return nil
}

func (im *Importer) loadGenreTitles(db *gorm.DB, f *os.File) error {
	rows, err := parseGenreTitles(f)
	if err != nil {
		return err
	}

	linked := 0
	for _, row := range rows {
		titleID, okTitle := im.titleIDs[row.TitleID]
		genreID, okGenre := im.genreIDs[row.GenreID]
		if !okTitle || !okGenre {
			logger.Warn("skipping genre link with unknown endpoint", "title", row.TitleID, "genre", row.GenreID)
			continue
		}

		title := models.Title{BaseModel: models.BaseModel{ID: titleID}}
		genre := models.Genre{BaseModel: models.BaseModel{ID: genreID}}
		if err := db.Model(&title).Association("Genres").Append(&genre); err != nil {
			return err
		}
		linked++
	}
	logger.Info("linked title genres", "count", linked)
	return nil
}

func (im *Importer) loadReviews(db *gorm.DB, f *os.File) error {
	rows, err := parseReviews(f)
	if err != nil {
		return err
	}

	for _, row := range rows {
		titleID, okTitle := im.titleIDs[row.TitleID]
		authorID, okAuthor := im.userIDs[row.AuthorID]
		if !okTitle || !okAuthor {
			logger.Warn("skipping review with unknown reference", "title", row.TitleID, "author", row.AuthorID)
			continue
		}

		review := models.Review{
			Authored: models.Authored{AuthorID: authorID},
			TitleID:  titleID,
		}
		assign := models.Review{
			Authored: models.Authored{Text: row.Text, AuthorID: authorID, PubDate: row.PubDate},
			Score:    row.Score,
			TitleID:  titleID,
		}
		if err := db.Where("author_id = ? AND title_id = ?", authorID, titleID).
			Assign(assign).
			FirstOrCreate(&review).Error; err != nil {
			return err
		}
		im.reviewIDs[row.ID] = review.ID
		logger.Debug("imported review", "title", row.TitleID, "author", row.AuthorID)
	}
	logger.Info("imported reviews", "count", len(rows))
	return nil
}

func (im *Importer) loadComments(db *gorm.DB, f *os.File) error {
	rows, err := parseComments(f)
	if err != nil {
		return err
	}

	for _, row := range rows {
		reviewID, okReview := im.reviewIDs[row.ReviewID]
		authorID, okAuthor := im.userIDs[row.AuthorID]
		if !okReview || !okAuthor {
			logger.Warn("skipping comment with unknown reference", "review", row.ReviewID, "author", row.AuthorID)
			continue
		}

		var review models.Review
		if err := db.First(&review, "id = ?", reviewID).Error; err != nil {
			return err
		}

		comment := models.Comment{
			Authored: models.Authored{AuthorID: authorID, PubDate: row.PubDate},
			ReviewID: reviewID,
			TitleID:  review.TitleID,
		}
		assign := comment
		assign.Text = row.Text
		if err := db.Where("author_id = ? AND review_id = ? AND pub_date = ?", authorID, reviewID, row.PubDate).
			Assign(assign).
			FirstOrCreate(&comment).Error; err != nil {
			return err
		}
	}
	logger.Info("imported comments", "count", len(rows))
	return nil
}
