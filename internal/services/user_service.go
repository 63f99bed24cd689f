package services

import (
	"yamdb_backend/internal/models"
	"yamdb_backend/internal/repositories"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	Create(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByUsername(db *gorm.DB, username string) (*dto.UserResponse, error)
	List(db *gorm.DB, search string, page, pageSize int) (*dto.UserListResponse, error)
	Update(db *gorm.DB, username string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(db *gorm.DB, username string) error

	GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error)
	// UpdateProfile applies the same partial update as Update but keeps
	// the stored role, whatever the request says.
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      models.UserRoleUser,
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Create(db, user); err != nil {
		return nil, s.translateDuplicate(db, err, user.Username, "")
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) GetByUsername(db *gorm.DB, username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(db, username)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) List(db *gorm.DB, search string, page, pageSize int) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.List(db, search, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{
		Users:    make([]dto.UserResponse, 0, len(users)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(&users[i]))
	}
	return resp, nil
}

func (s *userService) Update(db *gorm.DB, username string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(db, username)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound)
	}

	s.applyProfileFields(user, req)
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, s.translateDuplicate(db, err, user.Username, user.ID)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) Delete(db *gorm.DB, username string) error {
	user, err := s.userRepo.FindByUsername(db, username)
	if err != nil {
		return notFoundOr(err, repositories.ErrUserNotFound)
	}
	if err := s.userRepo.Delete(db, user.ID); err != nil {
		return notFoundOr(err, repositories.ErrUserNotFound)
	}
	return nil
}

func (s *userService) GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound)
	}

	// Role stays as stored: a submitted role on the profile endpoint is
	// silently dropped, never an error.
	s.applyProfileFields(user, req)

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, s.translateDuplicate(db, err, user.Username, user.ID)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) applyProfileFields(user *models.User, req *dto.UpdateUserRequest) {
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
}

// translateDuplicate maps a uniqueness violation to the field that caused
// it, matching the signup endpoint's reporting. selfID excludes the row
// being updated from the username check.
func (s *userService) translateDuplicate(db *gorm.DB, err error, username, selfID string) error {
	if !apperrors.Is(err, repositories.ErrUserAlreadyExists) {
		return err
	}
	other, lookupErr := s.userRepo.FindByUsername(db, username)
	if lookupErr != nil && !apperrors.Is(lookupErr, repositories.ErrUserNotFound) {
		return lookupErr
	}
	if other != nil && other.ID != selfID {
		return apperrors.ErrUsernameTaken
	}
	return apperrors.ErrEmailTaken
}

// notFoundOr wraps a known repository miss into a 404, passing anything
// else through untouched.
func notFoundOr(err, miss error) error {
	if apperrors.Is(err, miss) {
		return apperrors.ErrNotFound(err)
	}
	return err
}
