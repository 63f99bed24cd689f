package apperrors

import "net/http"

// Factories and predefined values for the domain error taxonomy.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and the
// like) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrConflict converts a storage-level uniqueness violation into a 409.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrUsernameTaken: signup username collides with a different account.
// The signup endpoint reports uniqueness failures as 400, not 409.
var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"auth",
	"This username is already registered",
	http.StatusBadRequest,
)

// ErrEmailTaken: signup email collides with a different account.
var ErrEmailTaken = New(
	CodeAlreadyExists,
	"auth",
	"This email is already registered",
	http.StatusBadRequest,
)

// ErrInvalidConfirmationCode: confirmation code mismatch. A new code has
// to be requested via signup.
var ErrInvalidConfirmationCode = New(
	CodeInvalidCode,
	"auth",
	"Invalid confirmation code, request a new one",
	http.StatusBadRequest,
)

// ErrDuplicateReview: a user already reviewed this title.
var ErrDuplicateReview = New(
	CodeAlreadyExists,
	"reviews",
	"You have already reviewed this title",
	http.StatusBadRequest,
)

// ErrInsufficientPermissions: the action is reserved for a higher role.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
