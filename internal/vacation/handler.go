package vacation

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
	ListByAnalyst(analystID int64) ([]*VacationPeriod, error)
	Create(analystID int64, dto CreateVacationPeriodDTO) (*VacationPeriod, error)
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

// ListVacationPeriods handles GET /analysts/{id}/vacation-periods.
func (h *Handler) ListVacationPeriods(w http.ResponseWriter, r *http.Request) {
	analystID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid analyst ID")
		return
	}

	periods, err := h.Service.ListByAnalyst(analystID)
	if err != nil {
		h.Logger.Error("ListVacationPeriods: service error", "error", err, "analyst_id", analystID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, periods)
}

// CreateVacationPeriod handles POST /analysts/{id}/vacation-periods
// (admin/manager). The analyst id is injected from the path.
func (h *Handler) CreateVacationPeriod(w http.ResponseWriter, r *http.Request) {
	analystID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid analyst ID")
		return
	}

	var dto CreateVacationPeriodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	period, err := h.Service.Create(analystID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, period)
}

// DeleteVacationPeriod handles DELETE /vacation-periods/{id} (admin/manager).
func (h *Handler) DeleteVacationPeriod(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vacation period ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Vacation period deleted successfully"})
}
