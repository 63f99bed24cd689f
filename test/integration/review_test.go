package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"yamdb_backend/internal/models"
	"yamdb_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postReview(t *testing.T, ts *helpers.TestServer, token, titleID string, score int) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/titles/"+titleID+"/reviews", token, map[string]interface{}{
		"text":  "review text",
		"score": score,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	return created.ID
}

func TestReviewAffectsTitleRating(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	_, adminToken := helpers.CreateUserWithToken(t, ts, "root", models.UserRoleAdmin)
	seedTaxonomy(t, ts, adminToken)
	titleID := createTitle(t, ts, adminToken, "Dune", "books", []string{"drama"}, 1965)

	_, aliceToken := helpers.CreateUserWithToken(t, ts, "alice", models.UserRoleUser)
	_, bobToken := helpers.CreateUserWithToken(t, ts, "bob", models.UserRoleUser)

	postReview(t, ts, aliceToken, titleID, 7)
	postReview(t, ts, bobToken, titleID, 10)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/titles/"+titleID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"rating":8.5`)
}

func TestSecondReviewPerTitleIsRejected(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	_, adminToken := helpers.CreateUserWithToken(t, ts, "root", models.UserRoleAdmin)
	seedTaxonomy(t, ts, adminToken)
	titleID := createTitle(t, ts, adminToken, "Dune", "books", []string{"drama"}, 1965)

	_, aliceToken := helpers.CreateUserWithToken(t, ts, "alice", models.UserRoleUser)
	postReview(t, ts, aliceToken, titleID, 7)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/titles/"+titleID+"/reviews", aliceToken, map[string]interface{}{
		"text": "again", "score": 8,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestReviewScoreBounds(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	_, adminToken := helpers.CreateUserWithToken(t, ts, "root", models.UserRoleAdmin)
	seedTaxonomy(t, ts, adminToken)
	titleID := createTitle(t, ts, adminToken, "Dune", "books", []string{"drama"}, 1965)

	_, aliceToken := helpers.CreateUserWithToken(t, ts, "alice", models.UserRoleUser)

	for _, score := range []int{0, 11} {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/titles/"+titleID+"/reviews", aliceToken, map[string]interface{}{
			"text": "x", "score": score,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "score %d must be rejected", score)
	}
}

func TestContentOwnershipPolicy(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	_, adminToken := helpers.CreateUserWithToken(t, ts, "root", models.UserRoleAdmin)
	seedTaxonomy(t, ts, adminToken)
	titleID := createTitle(t, ts, adminToken, "Dune", "books", []string{"drama"}, 1965)

	_, aliceToken := helpers.CreateUserWithToken(t, ts, "alice", models.UserRoleUser)
	_, bobToken := helpers.CreateUserWithToken(t, ts, "bob", models.UserRoleUser)
	_, modToken := helpers.CreateUserWithToken(t, ts, "mod", models.UserRoleModerator)

	reviewID := postReview(t, ts, aliceToken, titleID, 7)
	reviewPath := fmt.Sprintf("/api/v1/titles/%s/reviews/%s", titleID, reviewID)

	// A stranger cannot touch it.
	res, _ := ts.SendRequest(t, http.MethodPatch, reviewPath, bobToken, map[string]interface{}{"text": "hijack"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodDelete, reviewPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// The author can edit.
	res, body := ts.SendRequest(t, http.MethodPatch, reviewPath, aliceToken, map[string]interface{}{"score": 9})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"score":9`)

	// A moderator can delete someone else's review.
	res, _ = ts.SendRequest(t, http.MethodDelete, reviewPath, modToken, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestCommentFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	_, adminToken := helpers.CreateUserWithToken(t, ts, "root", models.UserRoleAdmin)
	seedTaxonomy(t, ts, adminToken)
	titleID := createTitle(t, ts, adminToken, "Dune", "books", []string{"drama"}, 1965)

	_, aliceToken := helpers.CreateUserWithToken(t, ts, "alice", models.UserRoleUser)
	_, bobToken := helpers.CreateUserWithToken(t, ts, "bob", models.UserRoleUser)

	reviewID := postReview(t, ts, aliceToken, titleID, 7)
	commentsPath := fmt.Sprintf("/api/v1/titles/%s/reviews/%s/comments", titleID, reviewID)

	res, body := ts.SendRequest(t, http.MethodPost, commentsPath, bobToken, map[string]string{"text": "agreed"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, `"author":"bob"`)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))

	// Anonymous listing works.
	res, body = ts.SendRequest(t, http.MethodGet, commentsPath, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "agreed")

	// Anonymous writes do not.
	res, _ = ts.SendRequest(t, http.MethodPost, commentsPath, "", map[string]string{"text": "nope"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Only the author (or staff) edits a comment.
	commentPath := commentsPath + "/" + created.ID
	res, _ = ts.SendRequest(t, http.MethodPatch, commentPath, aliceToken, map[string]string{"text": "hijack"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPatch, commentPath, bobToken, map[string]string{"text": "edited"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "edited")
}

func TestReviewDeletionRemovesItsComments(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	_, adminToken := helpers.CreateUserWithToken(t, ts, "root", models.UserRoleAdmin)
	seedTaxonomy(t, ts, adminToken)
	titleID := createTitle(t, ts, adminToken, "Dune", "books", []string{"drama"}, 1965)

	_, aliceToken := helpers.CreateUserWithToken(t, ts, "alice", models.UserRoleUser)
	reviewID := postReview(t, ts, aliceToken, titleID, 7)

	commentsPath := fmt.Sprintf("/api/v1/titles/%s/reviews/%s/comments", titleID, reviewID)
	res, body := ts.SendRequest(t, http.MethodPost, commentsPath, aliceToken, map[string]string{"text": "note"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodDelete, fmt.Sprintf("/api/v1/titles/%s/reviews/%s", titleID, reviewID), aliceToken, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	var count int64
	require.NoError(t, ts.DB.Table("comments").Count(&count).Error)
	assert.Zero(t, count)
}
