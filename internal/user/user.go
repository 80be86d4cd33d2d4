package user

import (
	"time"

	userDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/user"
)

// User is the account record as exposed to API consumers. The password hash
// never leaves the store layer.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
