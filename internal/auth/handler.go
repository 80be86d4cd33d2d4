package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/oltecnologia/analyst-management/internal/transport"
	"github.com/oltecnologia/analyst-management/pkg/logger"
)

type ServiceAPI interface {
	Login(dto LoginDTO) (*LoginResponse, error)
	Logout(token string)
	ResolveSession(token string) (SessionUser, bool)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Warn("login rejected", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token != "" {
		h.Service.Logout(token)
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me returns the session snapshot for the caller's token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// AuthMiddleware resolves the bearer token against the session registry and
// binds the user snapshot to the request context. Runs before any role check.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, ok := h.Service.ResolveSession(token)
		if !ok {
			h.Logger.Warn("session resolution failed")
			h.WriteError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		ctx := ContextWithUser(r.Context(), &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route group to the given roles. AuthMiddleware must
// run first so the snapshot is in context.
func (h *Handler) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				h.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if _, ok := allowed[user.Role]; !ok {
				h.Logger.Warn("access denied: insufficient role",
					"user_id", user.ID,
					"role", user.Role,
					"required", roles)
				h.WriteError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
