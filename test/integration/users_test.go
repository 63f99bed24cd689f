package integration

import (
	"net/http"
	"testing"

	"yamdb_backend/internal/models"
	"yamdb_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserAdministrationRequiresAdmin(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	_, userToken := helpers.CreateUserWithToken(t, ts, "plain", models.UserRoleUser)
	_, modToken := helpers.CreateUserWithToken(t, ts, "mod", models.UserRoleModerator)

	for _, token := range []string{userToken, modToken} {
		res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/users", token, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	}
}

func TestAdminUserCRUD(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	_, adminToken := helpers.CreateUserWithToken(t, ts, "root", models.UserRoleAdmin)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/users", adminToken, map[string]string{
		"username": "carol",
		"email":    "carol@test.local",
		"role":     "moderator",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, `"role":"moderator"`)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/users/carol", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/users/carol", adminToken, map[string]string{
		"role": "admin",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"role":"admin"`)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/users/carol", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/carol", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRoleGrantTakesEffectImmediately(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	_, adminToken := helpers.CreateUserWithToken(t, ts, "root", models.UserRoleAdmin)
	_, userToken := helpers.CreateUserWithToken(t, ts, "carol", models.UserRoleUser)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/users", userToken, nil)
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/users/carol", adminToken, map[string]string{
		"role": "admin",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Same token, new effective role: it carries identity, not role.
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users", userToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestProfileUpdateCannotEscalateRole(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	_, token := helpers.CreateUserWithToken(t, ts, "alice", models.UserRoleUser)

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/users/me", token, map[string]string{
		"role": "admin",
		"bio":  "just me",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"role":"user"`)
	assert.Contains(t, body, `"bio":"just me"`)

	// Still not an admin.
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users", token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
