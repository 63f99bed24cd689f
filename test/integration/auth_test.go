package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"yamdb_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupTokenProfileFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "alice",
		"email":    "alice@test.local",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	code := helpers.StoredConfirmationCode(t, ts, "alice")

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username":          "alice",
		"confirmation_code": code,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var tokenResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &tokenResp))
	require.NotEmpty(t, tokenResp.Token)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", tokenResp.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"username":"alice"`)
	assert.Contains(t, body, `"role":"user"`)
}

func TestSignupIsIdempotentForSamePair(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	payload := map[string]string{"username": "alice", "email": "alice@test.local"}

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", payload)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	first := helpers.StoredConfirmationCode(t, ts, "alice")

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", payload)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	second := helpers.StoredConfirmationCode(t, ts, "alice")

	assert.NotEqual(t, first, second, "a repeat signup should rotate the code")
}

func TestSignupCollisionsAreBadRequest(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "alice", "email": "alice@test.local",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Same username, different email.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "alice", "email": "other@test.local",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Same email, different username.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "bob", "email": "alice@test.local",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSignupRejectsReservedAndMalformedUsernames(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	for _, username := range []string{"me", "bad name", "no$good"} {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
			"username": username, "email": "x@test.local",
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	}
}

func TestWrongCodeBurnsTheRealOne(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "alice", "email": "alice@test.local",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	code := helpers.StoredConfirmationCode(t, ts, "alice")

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "alice", "confirmation_code": "definitely-wrong",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	// The previously valid code no longer works either.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "alice", "confirmation_code": code,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestTokenForUnknownUserIs404(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "ghost", "confirmation_code": "whatever",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
