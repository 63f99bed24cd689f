package helpers

import (
	"fmt"
	"testing"
	"time"

	"yamdb_backend/internal/models"
)

// CreateUser inserts a user with the given role straight into the store.
func CreateUser(t *testing.T, ts *TestServer, username string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s_%d@test.local", username, time.Now().UnixNano()),
		Role:     role,
	}
	if err := ts.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// TokenFor issues a valid access token for the user, bypassing the
// confirmation-code exchange.
func TokenFor(t *testing.T, ts *TestServer, user *models.User) string {
	t.Helper()

	token, err := ts.Tokens.Generate(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token for %s: %v", user.Username, err)
	}
	return token
}

// CreateUserWithToken is the common "authenticated actor" fixture.
func CreateUserWithToken(t *testing.T, ts *TestServer, username string, role models.UserRole) (*models.User, string) {
	t.Helper()

	user := CreateUser(t, ts, username, role)
	return user, TokenFor(t, ts, user)
}

// StoredConfirmationCode reads the code persisted for username, as the
// email would have delivered it.
func StoredConfirmationCode(t *testing.T, ts *TestServer, username string) string {
	t.Helper()

	var user models.User
	if err := ts.DB.First(&user, "username = ?", username).Error; err != nil {
		t.Fatalf("failed to load user %s: %v", username, err)
	}
	if user.ConfirmationCode == nil {
		t.Fatalf("user %s has no confirmation code", username)
	}
	return *user.ConfirmationCode
}
