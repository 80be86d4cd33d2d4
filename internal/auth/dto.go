package auth

import "github.com/oltecnologia/analyst-management/internal"

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return internal.NewValidationFieldError("username", "username is required", internal.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// LoginResponse carries the session token plus the user snapshot the client
// renders after login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
