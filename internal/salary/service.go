package salary

import (
	"log/slog"

	"github.com/oltecnologia/analyst-management/internal"
	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
	salaryDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/salary"
)

// Repository defines the data access methods for salary history.
type Repository interface {
	ListByAnalyst(analystID int64) ([]*salaryDatamodel.SalaryHistory, error)
	// CreateAdjustment inserts the history row and updates the parent
	// analyst's current salary in one transaction, so a failure cannot leave
	// the history and the analyst disagreeing.
	CreateAdjustment(entry *salaryDatamodel.SalaryHistory) error
}

// AnalystGetter verifies the parent analyst and provides the salary to
// snapshot.
type AnalystGetter interface {
	GetByID(id int64) (*analystDatamodel.Analyst, error)
}

type Service struct {
	repo     Repository
	analysts AnalystGetter
	logger   *slog.Logger
}

func NewService(repo Repository, analysts AnalystGetter, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		analysts: analysts,
		logger:   logger,
	}
}

// ListByAnalyst returns entries most recent first.
func (s *Service) ListByAnalyst(analystID int64) ([]*SalaryHistory, error) {
	entries, err := s.repo.ListByAnalyst(analystID)
	if err != nil {
		s.logger.Error("failed to list salary history", "error", err, "analyst_id", analystID)
		return nil, internal.NewInternalError("failed to list salary history", err)
	}
	return FromDataModelSlice(entries), nil
}

// CreateAdjustment records a salary change and synchronizes the analyst's
// currentSalary/lastSalaryAdjustment fields atomically.
func (s *Service) CreateAdjustment(analystID int64, dto CreateSalaryHistoryDTO) (*SalaryHistory, error) {
	newAmount, previousAmount, adjustmentDate, err := dto.Parse()
	if err != nil {
		return nil, err
	}

	parent, err := s.analysts.GetByID(analystID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load analyst", err)
	}
	if parent == nil {
		return nil, internal.ErrAnalystNotFound
	}

	if previousAmount == nil {
		previousAmount = parent.CurrentSalary
	}

	entry := &salaryDatamodel.SalaryHistory{
		AnalystID:      analystID,
		PreviousAmount: previousAmount,
		NewAmount:      newAmount,
		AdjustmentDate: adjustmentDate,
		Notes:          dto.Notes,
	}

	if err := s.repo.CreateAdjustment(entry); err != nil {
		s.logger.Error("failed to record salary adjustment", "error", err, "analyst_id", analystID)
		return nil, internal.NewInternalError("failed to record salary adjustment", err)
	}

	s.logger.Info("salary adjusted",
		"analyst_id", analystID,
		"entry_id", entry.ID,
		"new_amount", newAmount)

	return FromDataModel(entry), nil
}
