package middleware

import (
	"errors"
	"strings"

	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/logger"
	"yamdb_backend/internal/models"
	"yamdb_backend/internal/repositories"
	"yamdb_backend/pkg/apperrors"
	"yamdb_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errDBNotAttached = errors.New("database handle missing from request context")

// AuthMiddleware verifies the bearer token and loads the user behind it.
// The token carries identity only; the role always comes from storage so
// a role change or account deletion takes effect on the next request.
func AuthMiddleware(tokens *auth.TokenManager, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			abortWith(c, apperrors.NewUnauthorizedError("Authorization header is missing or malformed"))
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			if apperrors.Is(err, auth.ErrExpiredToken) {
				abortWith(c, apperrors.NewUnauthorizedError("Token expired"))
				return
			}
			abortWith(c, apperrors.NewUnauthorizedError("Invalid token"))
			return
		}

		value, ok := c.Get(string(contextkeys.DBContextKey))
		db, _ := value.(*gorm.DB)
		if !ok || db == nil {
			abortWith(c, apperrors.InternalError(errDBNotAttached))
			return
		}

		user, err := userRepo.FindByID(db, claims.UserID)
		if err != nil {
			// A token for a deleted account is just an invalid credential.
			abortWith(c, apperrors.NewUnauthorizedError("Invalid token"))
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(contextkeys.CurrentUserKey), user)
		c.Set(string(contextkeys.UserIDKey), user.ID)
		c.Next()
	}
}

// RequireAdmin gates the admin-only surfaces: user administration,
// taxonomy and title writes. Runs after AuthMiddleware.
func RequireAdmin(scope auth.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if !auth.Allows(user, auth.VerbWrite, scope, false) {
			abortWith(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil on public routes.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(string(contextkeys.CurrentUserKey))
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortWith(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPCode, apperrors.ErrorResponse{Error: err})
}
