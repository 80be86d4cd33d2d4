package salary

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/oltecnologia/analyst-management/internal/transport"
	"github.com/oltecnologia/analyst-management/pkg/logger"
)

type ServiceAPI interface {
	ListByAnalyst(analystID int64) ([]*SalaryHistory, error)
	CreateAdjustment(analystID int64, dto CreateSalaryHistoryDTO) (*SalaryHistory, error)
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

// ListSalaryHistory handles GET /analysts/{id}/salary-history
// (admin/manager only).
func (h *Handler) ListSalaryHistory(w http.ResponseWriter, r *http.Request) {
	analystID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid analyst ID")
		return
	}

	entries, err := h.Service.ListByAnalyst(analystID)
	if err != nil {
		h.Logger.Error("ListSalaryHistory: service error", "error", err, "analyst_id", analystID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entries)
}

// CreateSalaryHistory handles POST /analysts/{id}/salary-history
// (admin/manager only). Also updates the analyst's current salary.
func (h *Handler) CreateSalaryHistory(w http.ResponseWriter, r *http.Request) {
	analystID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid analyst ID")
		return
	}

	var dto CreateSalaryHistoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.CreateAdjustment(analystID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, entry)
}
