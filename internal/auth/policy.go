package auth

import "yamdb_backend/internal/models"

// Verb classifies a request by its effect, mirroring HTTP safe methods.
type Verb int

const (
	VerbRead Verb = iota
	VerbWrite
)

// Scope identifies the kind of resource a decision is about.
type Scope int

const (
	// ScopeUsers is the admin-only user account collection.
	ScopeUsers Scope = iota
	// ScopeTaxonomy covers categories and genres.
	ScopeTaxonomy
	// ScopeTitles covers the title catalog.
	ScopeTitles
	// ScopeContent covers reviews and comments; ownership matters here.
	ScopeContent
	// ScopeProfile is a user's own record via /users/me.
	ScopeProfile
)

// Allows is the single policy decision for the whole API: given the
// requester (nil when anonymous), the verb class, the resource scope and —
// for content — whether the requester owns the object, it returns
// allow/deny. For content creation callers pass isOwner=true, since the
// author is always the requester.
func Allows(requester *models.User, verb Verb, scope Scope, isOwner bool) bool {
	// Reads on public resources are open to everyone.
	if verb == VerbRead && (scope == ScopeTaxonomy || scope == ScopeTitles || scope == ScopeContent) {
		return true
	}

	if requester == nil {
		return false
	}

	switch scope {
	case ScopeUsers, ScopeTaxonomy, ScopeTitles:
		return requester.IsAdmin()
	case ScopeProfile:
		// Any authenticated user, own record only; the handler scopes
		// the query to the requester.
		return true
	case ScopeContent:
		return isOwner || requester.IsModerator() || requester.IsAdmin()
	}
	return false
}

// CanModifyContent is the object-level check for reviews and comments.
func CanModifyContent(requester *models.User, authorID string) bool {
	if requester == nil {
		return false
	}
	return Allows(requester, VerbWrite, ScopeContent, requester.ID == authorID)
}
