package vacation

import (
	"log/slog"

	"github.com/oltecnologia/analyst-management/internal"
	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
	vacationDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/vacation"
)

// Repository defines the data access methods for vacation periods.
type Repository interface {
	ListByAnalyst(analystID int64) ([]*vacationDatamodel.VacationPeriod, error)
	CountByAnalyst(analystID int64) (int64, error)
	Create(p *vacationDatamodel.VacationPeriod) error
	Delete(id int64) (bool, error)
}

// AnalystGetter is the slice of the analyst store this service needs to
// verify the parent exists.
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

// ListByAnalyst returns periods ascending by start date.
func (s *Service) ListByAnalyst(analystID int64) ([]*VacationPeriod, error) {
	periods, err := s.repo.ListByAnalyst(analystID)
	if err != nil {
		s.logger.Error("failed to list vacation periods", "error", err, "analyst_id", analystID)
		return nil, internal.NewInternalError("failed to list vacation periods", err)
	}
	return FromDataModelSlice(periods), nil
}

// Create adds a period for an existing analyst, enforcing the per-analyst
// cap. Overlapping periods are accepted.
func (s *Service) Create(analystID int64, dto CreateVacationPeriodDTO) (*VacationPeriod, error) {
	start, end, err := dto.Parse()
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

	count, err := s.repo.CountByAnalyst(analystID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count vacation periods", err)
	}
	if count >= MaxPeriodsPerAnalyst {
		s.logger.Warn("vacation period rejected: cap reached", "analyst_id", analystID, "count", count)
		return nil, internal.ErrVacationLimit
	}

	record := &vacationDatamodel.VacationPeriod{
		AnalystID: analystID,
		StartDate: start,
		EndDate:   end,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create vacation period", "error", err, "analyst_id", analystID)
		return nil, internal.NewInternalError("failed to create vacation period", err)
	}

	s.logger.Info("vacation period created", "vacation_id", record.ID, "analyst_id", analystID)

	return FromDataModel(record), nil
}

// Delete removes a single period by id.
func (s *Service) Delete(id int64) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		s.logger.Error("failed to delete vacation period", "error", err, "vacation_id", id)
		return internal.NewInternalError("failed to delete vacation period", err)
	}
	if !deleted {
		return internal.ErrVacationNotFound
	}
	return nil
}
