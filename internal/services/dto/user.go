package dto

import "yamdb_backend/internal/models"

type UserResponse struct {
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Bio       *string         `json:"bio"`
	Role      models.UserRole `json:"role"`
}

// CreateUserRequest is the admin-side user creation payload.
type CreateUserRequest struct {
	Username  string           `json:"username" validate:"required,max=150,username"`
	Email     string           `json:"email" validate:"required,email,max=254"`
	FirstName string           `json:"first_name" validate:"omitempty,max=150"`
	LastName  string           `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string          `json:"bio"`
	Role      *models.UserRole `json:"role" validate:"omitempty,role"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
// Role is honored on the admin path only — the self-profile path always
// preserves the stored role.
type UpdateUserRequest struct {
	Username  *string          `json:"username" validate:"omitempty,max=150,username"`
	Email     *string          `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string          `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string          `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string          `json:"bio"`
	Role      *models.UserRole `json:"role" validate:"omitempty,role"`
}

type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// NewUserResponse maps a model to its API shape.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}
