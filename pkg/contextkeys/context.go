package contextkeys

// Custom key type to avoid collisions with other context users.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB
// (connection pool or transaction) is stored.
const DBContextKey = contextKey("db")

// CurrentUserKey holds the authenticated *models.User, freshly loaded
// from storage by the auth middleware.
const CurrentUserKey = contextKey("current_user")

// UserIDKey holds the authenticated user's id.
const UserIDKey = contextKey("user_id")
