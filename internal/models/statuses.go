package models

type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleModerator UserRole = "moderator"
	UserRoleAdmin     UserRole = "admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleUser, UserRoleModerator, UserRoleAdmin:
		return true
	default:
		return false
	}
}
