package dto

// SignupRequest starts (or re-issues) email confirmation for a user.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// SignupResponse echoes the accepted identity. The confirmation code is
// only ever delivered out of band.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest exchanges a confirmation code for an access token.
type TokenRequest struct {
	Username         string `json:"username" validate:"required,max=150,username"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
