package services

import (
	"fmt"

	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/email"
	"yamdb_backend/internal/logger"
	"yamdb_backend/internal/models"
	"yamdb_backend/internal/repositories"
	"yamdb_backend/internal/services/dto"
	"yamdb_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const confirmationMailSubject = "Confirmation code"

type AuthService interface {
	// Signup registers a user (or idempotently re-issues for an existing
	// exact username/email pair) and emails a fresh confirmation code.
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error)
	// IssueToken exchanges a confirmation code for a signed access token.
	IssueToken(db *gorm.DB, req *dto.TokenRequest) (*dto.TokenResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
	mailer   email.Provider
	codes    auth.CodeConfig
	tokens   *auth.TokenManager
}

func NewAuthService(
	userRepo repositories.UserRepository,
	mailer email.Provider,
	codes auth.CodeConfig,
	tokens *auth.TokenManager,
) AuthService {
	return &authService{
		userRepo: userRepo,
		mailer:   mailer,
		codes:    codes,
		tokens:   tokens,
	}
}

func (s *authService) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	user, err := s.userRepo.FindByUsernameAndEmail(db, req.Username, req.Email)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, err
		}

		user = &models.User{
			Username: req.Username,
			Email:    req.Email,
			Role:     models.UserRoleUser,
		}
		if err := s.userRepo.Create(db, user); err != nil {
			if !apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return nil, err
			}
			// The pair does not exist but one half collides: report
			// which one. The store constraint resolves racing signups.
			taken, lookupErr := s.userRepo.ExistsByUsername(db, req.Username)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if taken {
				return nil, apperrors.ErrUsernameTaken
			}
			return nil, apperrors.ErrEmailTaken
		}
	}

	code, err := s.codes.Generate()
	if err != nil {
		return nil, err
	}
	user.ConfirmationCode = &code
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, err
	}

	// Accept-and-forget dispatch: delivery failures are the notification
	// collaborator's problem, the signup itself already succeeded.
	msg := &email.Message{
		To:      user.Email,
		Subject: confirmationMailSubject,
		Body:    fmt.Sprintf("Your confirmation code: %s", code),
	}
	if err := s.mailer.Send(msg); err != nil {
		logger.Error("failed to dispatch confirmation code", "username", user.Username, "error", err)
	}

	return &dto.SignupResponse{Username: user.Username, Email: user.Email}, nil
}

func (s *authService) IssueToken(db *gorm.DB, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if !s.codeMatches(user, req.ConfirmationCode) {
		// A still-valid code is consumed by the first wrong guess so it
		// cannot be brute-forced. The sentinel stays as it is.
		if user.ConfirmationCode != nil && !s.codes.IsSentinel(*user.ConfirmationCode) {
			sentinel := s.codes.Sentinel
			user.ConfirmationCode = &sentinel
			if err := s.userRepo.Update(db, user); err != nil {
				return nil, err
			}
		}
		return nil, apperrors.ErrInvalidConfirmationCode
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

// codeMatches requires an issued, non-sentinel code equal to the input.
func (s *authService) codeMatches(user *models.User, input string) bool {
	if user.ConfirmationCode == nil || s.codes.IsSentinel(*user.ConfirmationCode) {
		return false
	}
	return *user.ConfirmationCode == input
}
