package models

const (
	MaxLengthUsername = 150
	MaxLengthEmail    = 254
)

type User struct {
	BaseModel
	Username  string   `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email     string   `gorm:"type:varchar(254);uniqueIndex;not null"`
	FirstName string   `gorm:"type:varchar(150)"`
	LastName  string   `gorm:"type:varchar(150)"`
	Bio       *string  `gorm:"type:text"`
	Role      UserRole `gorm:"type:varchar(20);not null;default:'user'"`

	// IsStaff grants admin-equivalent rights regardless of Role.
	IsStaff bool `gorm:"not null;default:false"`

	// ConfirmationCode is nil until the first signup. After a failed token
	// exchange it holds the sentinel value.
	ConfirmationCode *string `gorm:"type:varchar(64)"`
}

// IsAdmin reports whether the user holds admin-equivalent rights.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin || u.IsStaff
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == UserRoleModerator
}
