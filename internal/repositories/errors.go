package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsDuplicate reports whether err is a unique-constraint violation.
// Requires the gorm connection to be opened with TranslateError, see
// app.OpenDatabase.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
