package services

import (
	"errors"
	"net/http"
	"testing"

	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCodes = auth.CodeConfig{
	Alphabet: "abcdefghijklmnopqrstuvwxyz0123456789",
	Length:   16,
	Sentinel: "----------------",
}

func newAuthFixture() (*authService, *fakeUserRepo, *captureMailer) {
	repo := newFakeUserRepo()
	mailer := &captureMailer{}
	tokens := auth.NewTokenManager("test-secret", 60)
	svc := NewAuthService(repo, mailer, testCodes, tokens).(*authService)
	return svc, repo, mailer
}

func TestSignupCreatesUserAndSendsCode(t *testing.T) {
	svc, repo, mailer := newAuthFixture()

	resp, err := svc.Signup(nil, &dto.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)

	code := repo.storedCode("alice")
	require.NotNil(t, code)
	assert.Len(t, *code, testCodes.Length)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, *code)
}

func TestSignupIsIdempotentForSamePair(t *testing.T) {
	svc, repo, mailer := newAuthFixture()

	req := &dto.SignupRequest{Username: "alice", Email: "alice@example.com"}
	_, err := svc.Signup(nil, req)
	require.NoError(t, err)
	first := repo.storedCode("alice")

	_, err = svc.Signup(nil, req)
	require.NoError(t, err)
	second := repo.storedCode("alice")

	assert.Len(t, repo.users, 1)
	assert.Len(t, mailer.sent, 2)
	// A repeat signup rotates the code.
	assert.NotEqual(t, *first, *second)
}

func TestSignupRejectsTakenUsername(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Signup(nil, &dto.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Signup(nil, &dto.SignupRequest{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestSignupRejectsTakenEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Signup(nil, &dto.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Signup(nil, &dto.SignupRequest{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestSignupSucceedsWhenMailFails(t *testing.T) {
	svc, repo, mailer := newAuthFixture()
	mailer.err = errors.New("smtp down")

	_, err := svc.Signup(nil, &dto.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, repo.storedCode("alice"))
}

func TestIssueTokenWithValidCode(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	_, err := svc.Signup(nil, &dto.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	code := repo.storedCode("alice")
	require.NotNil(t, code)

	resp, err := svc.IssueToken(nil, &dto.TokenRequest{Username: "alice", ConfirmationCode: *code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// The code survives a successful exchange.
	assert.Equal(t, *code, *repo.storedCode("alice"))
}

func TestIssueTokenUnknownUserIs404(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.IssueToken(nil, &dto.TokenRequest{Username: "ghost", ConfirmationCode: "whatever"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestIssueTokenWrongCodeInvalidatesStoredCode(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	_, err := svc.Signup(nil, &dto.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	original := *repo.storedCode("alice")

	_, err = svc.IssueToken(nil, &dto.TokenRequest{Username: "alice", ConfirmationCode: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfirmationCode)
	assert.Equal(t, testCodes.Sentinel, *repo.storedCode("alice"))

	// The original code is burned too.
	_, err = svc.IssueToken(nil, &dto.TokenRequest{Username: "alice", ConfirmationCode: original})
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfirmationCode)
}

func TestIssueTokenSentinelNeverMatches(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Signup(nil, &dto.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = svc.IssueToken(nil, &dto.TokenRequest{Username: "alice", ConfirmationCode: "wrong"})
	require.ErrorIs(t, err, apperrors.ErrInvalidConfirmationCode)

	// Submitting the sentinel itself must not be accepted.
	_, err = svc.IssueToken(nil, &dto.TokenRequest{Username: "alice", ConfirmationCode: testCodes.Sentinel})
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfirmationCode)
}

func TestIssueTokenWithoutIssuedCode(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	repo.users["user-1"] = userFixture("user-1", "alice", "alice@example.com")

	_, err := svc.IssueToken(nil, &dto.TokenRequest{Username: "alice", ConfirmationCode: "anything"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfirmationCode)
}
