package auth

import (
	"context"
)

// Roles recognized by the access-control layer.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAnalyst = "analyst"
)

// ValidRole reports whether role is one of the recognized roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleAnalyst:
		return true
	}
	return false
}

// SessionUser is the snapshot bound to a session token at login time. It is
// what handlers see in the request context; the full account record stays in
// the store.
type SessionUser struct {
	ID       int64  `json:"id"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type ctxKey string

const ContextUserKey ctxKey = "sessionUser"

// UserFromContext returns the authenticated user snapshot, if any.
func UserFromContext(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(ContextUserKey).(*SessionUser)
	return u, ok
}

// ContextWithUser binds the authenticated user snapshot to the context.
func ContextWithUser(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
