package credential

import "errors"

// Credential is a stored Google OAuth refresh token for one user
type Credential struct {
	UserID       string `json:"user_id"`
	RefreshToken string `json:"-"`
}

// ErrMalformed marks a stored token that cannot be decoded
var ErrMalformed = errors.New("malformed refresh token")
