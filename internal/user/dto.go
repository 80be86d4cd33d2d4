package user

import (
	"github.com/oltecnologia/analyst-management/internal"
	"github.com/oltecnologia/analyst-management/internal/auth"
)

// CreateUserDTO is the payload for explicit account creation (admin only).
type CreateUserDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

func (d CreateUserDTO) Validate() error {
	if d.Username == "" {
		return internal.NewValidationFieldError("username", "username is required", internal.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeValidationFailed)
	}
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if d.Email == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeValidationFailed)
	}
	if !auth.ValidRole(d.Role) {
		return internal.NewValidationFieldError("role", "role must be one of admin, manager, analyst", internal.ErrCodeInvalidRole)
	}
	return nil
}
