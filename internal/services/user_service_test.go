package services

import (
	"testing"

	"yamdb_backend/internal/models"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUpdateChangesRole(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["user-1"] = userFixture("user-1", "alice", "alice@example.com")
	svc := NewUserService(repo)

	role := models.UserRoleModerator
	resp, err := svc.Update(nil, "alice", &dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleModerator, resp.Role)
	assert.Equal(t, models.UserRoleModerator, repo.users["user-1"].Role)
}

func TestProfileUpdateKeepsStoredRole(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["user-1"] = userFixture("user-1", "alice", "alice@example.com")
	svc := NewUserService(repo)

	role := models.UserRoleAdmin
	bio := "hello"
	resp, err := svc.UpdateProfile(nil, "user-1", &dto.UpdateUserRequest{Role: &role, Bio: &bio})
	require.NoError(t, err)

	// The submitted role is dropped, the rest of the update applies.
	assert.Equal(t, models.UserRoleUser, resp.Role)
	require.NotNil(t, resp.Bio)
	assert.Equal(t, "hello", *resp.Bio)
	assert.Equal(t, models.UserRoleUser, repo.users["user-1"].Role)
}

func TestCreateUserDefaultsToUserRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	resp, err := svc.Create(nil, &dto.CreateUserRequest{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, resp.Role)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["user-1"] = userFixture("user-1", "bob", "bob@example.com")
	svc := NewUserService(repo)

	_, err := svc.Create(nil, &dto.CreateUserRequest{Username: "bob", Email: "new@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestUpdateOwnUsernameDuplicateEmailReportsEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["user-1"] = userFixture("user-1", "alice", "alice@example.com")
	repo.users["user-2"] = userFixture("user-2", "bob", "bob@example.com")
	svc := NewUserService(repo)

	// Username unchanged, email collides with another account.
	mail := "bob@example.com"
	_, err := svc.Update(nil, "alice", &dto.UpdateUserRequest{Email: &mail})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestDeleteUnknownUserIs404(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.Delete(nil, "ghost")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
