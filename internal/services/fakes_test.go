package services

import (
	"fmt"
	"strings"

	"yamdb_backend/internal/email"
	"yamdb_backend/internal/models"
	"yamdb_backend/internal/repositories"

	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. The db handle is ignored;
// service logic is what is under test here.

type fakeUserRepo struct {
	users  map[string]*models.User // keyed by id
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ *gorm.DB, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsernameAndEmail(_ *gorm.DB, username, mail string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username && user.Email == mail {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByUsername(_ *gorm.DB, username string) (bool, error) {
	_, err := r.FindByUsername(nil, username)
	return err == nil, nil
}

func (r *fakeUserRepo) List(_ *gorm.DB, search string, limit, offset int) ([]models.User, int64, error) {
	var out []models.User
	for _, user := range r.users {
		if search == "" || strings.Contains(strings.ToLower(user.Username), strings.ToLower(search)) {
			out = append(out, *user)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for id, other := range r.users {
		if id == user.ID {
			continue
		}
		if other.Username == user.Username || other.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	*stored = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ *gorm.DB, id string) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// storedCode reads a user's confirmation code straight from the fake store.
func (r *fakeUserRepo) storedCode(username string) *string {
	for _, user := range r.users {
		if user.Username == username {
			return user.ConfirmationCode
		}
	}
	return nil
}

type fakeTitleRepo struct {
	titles map[string]*models.Title
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{titles: make(map[string]*models.Title)}
}

func (r *fakeTitleRepo) Create(_ *gorm.DB, title *models.Title) error {
	r.titles[title.ID] = title
	return nil
}

func (r *fakeTitleRepo) FindByID(_ *gorm.DB, id string) (*models.Title, error) {
	if title, ok := r.titles[id]; ok {
		return title, nil
	}
	return nil, repositories.ErrTitleNotFound
}

func (r *fakeTitleRepo) List(_ *gorm.DB, _ repositories.TitleFilter, _, _ int) ([]models.Title, int64, error) {
	return nil, 0, nil
}

func (r *fakeTitleRepo) Update(_ *gorm.DB, title *models.Title) error {
	r.titles[title.ID] = title
	return nil
}

func (r *fakeTitleRepo) ReplaceGenres(_ *gorm.DB, _ *models.Title, _ []models.Genre) error {
	return nil
}

func (r *fakeTitleRepo) Delete(_ *gorm.DB, id string) error {
	if _, ok := r.titles[id]; !ok {
		return repositories.ErrTitleNotFound
	}
	delete(r.titles, id)
	return nil
}

type fakeReviewRepo struct {
	reviews map[string]*models.Review
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (r *fakeReviewRepo) Create(_ *gorm.DB, review *models.Review) error {
	for _, existing := range r.reviews {
		if existing.AuthorID == review.AuthorID && existing.TitleID == review.TitleID {
			return repositories.ErrReviewAlreadyExists
		}
	}
	r.nextID++
	review.ID = fmt.Sprintf("review-%d", r.nextID)
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *fakeReviewRepo) FindByID(_ *gorm.DB, titleID, reviewID string) (*models.Review, error) {
	review, ok := r.reviews[reviewID]
	if !ok || review.TitleID != titleID {
		return nil, repositories.ErrReviewNotFound
	}
	clone := *review
	return &clone, nil
}

func (r *fakeReviewRepo) ExistsByAuthorAndTitle(_ *gorm.DB, authorID, titleID string) (bool, error) {
	for _, review := range r.reviews {
		if review.AuthorID == authorID && review.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) ListByTitle(_ *gorm.DB, titleID string, _, _ int) ([]models.Review, int64, error) {
	var out []models.Review
	for _, review := range r.reviews {
		if review.TitleID == titleID {
			out = append(out, *review)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) Update(_ *gorm.DB, review *models.Review) error {
	stored, ok := r.reviews[review.ID]
	if !ok {
		return repositories.ErrReviewNotFound
	}
	*stored = *review
	return nil
}

func (r *fakeReviewRepo) Delete(_ *gorm.DB, titleID, reviewID string) error {
	review, ok := r.reviews[reviewID]
	if !ok || review.TitleID != titleID {
		return repositories.ErrReviewNotFound
	}
	delete(r.reviews, reviewID)
	return nil
}

// userFixture builds a plain user with no confirmation code issued.
func userFixture(id, username, mail string) *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: id},
		Username:  username,
		Email:     mail,
		Role:      models.UserRoleUser,
	}
}

// captureMailer records outgoing messages instead of sending them.
type captureMailer struct {
	sent []*email.Message
	err  error
}

func (m *captureMailer) Send(msg *email.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
