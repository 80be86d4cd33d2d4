package analyst

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/oltecnologia/analyst-management/internal/auth"
	"github.com/oltecnologia/analyst-management/internal/transport"
	"github.com/oltecnologia/analyst-management/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*Analyst, error)
	GetByID(id int64) (*Analyst, error)
	Create(dto CreateAnalystDTO) (*Analyst, error)
	Update(id int64, dto UpdateAnalystDTO) (*Analyst, error)
	Delete(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// ListAnalysts handles GET /analysts. The response is redacted per the
// caller's role.
func (h *Handler) ListAnalysts(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	analysts, err := h.Service.List()
	if err != nil {
		h.Logger.Error("ListAnalysts: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ViewListForRole(user.Role, analysts))
}

// GetAnalyst handles GET /analysts/{id}, redacted per role.
func (h *Handler) GetAnalyst(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid analyst ID")
		return
	}

	a, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ViewForRole(user.Role, a))
}

// CreateAnalyst handles POST /analysts (admin/manager).
func (h *Handler) CreateAnalyst(w http.ResponseWriter, r *http.Request) {
	var dto CreateAnalystDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateAnalyst: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

// UpdateAnalyst handles PUT /analysts/{id} with a partial payload.
func (h *Handler) UpdateAnalyst(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid analyst ID")
		return
	}

	var dto UpdateAnalystDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

// DeleteAnalyst handles DELETE /analysts/{id}. Cascades to children.
func (h *Handler) DeleteAnalyst(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid analyst ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Analyst deleted successfully"})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
