package user

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/oltecnologia/analyst-management/internal/auth"
	"github.com/oltecnologia/analyst-management/internal/transport"
	"github.com/oltecnologia/analyst-management/pkg/logger"
)

type ServiceAPI interface {
	GetByID(id int64) (*User, error)
	Create(dto CreateUserDTO) (*User, error)
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

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := auth.UserFromContext(r.Context())
	if !ok || snapshot == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(snapshot.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "user_id", snapshot.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// CreateUser handles POST /users (admin only)
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateUser: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateUser: account created", "user_id", u.ID, "role", u.Role)

	h.WriteJSON(w, http.StatusCreated, u)
}
