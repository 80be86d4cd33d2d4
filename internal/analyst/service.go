package analyst

import (
	"log/slog"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/oltecnologia/analyst-management/internal"
	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
)

// Repository defines the data access methods for analysts.
type Repository interface {
	List() ([]*analystDatamodel.Analyst, error)
	GetByID(id int64) (*analystDatamodel.Analyst, error)
	Create(a *analystDatamodel.Analyst) error
	Update(a *analystDatamodel.Analyst) error
	// Delete removes the analyst and all of its vacation periods and salary
	// history in one transaction. Returns false when the id was absent.
	Delete(id int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns all analysts ordered by name. The store hands records back in
// insertion order; the locale-aware stable sort keeps that order for ties.
func (s *Service) List() ([]*Analyst, error) {
	records, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list analysts", "error", err)
		return nil, internal.NewInternalError("failed to list analysts", err)
	}

	analysts := FromDataModelSlice(records)

	collator := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(analysts, func(i, j int) bool {
		return collator.CompareString(analysts[i].Name, analysts[j].Name) < 0
	})

	return analysts, nil
}

func (s *Service) GetByID(id int64) (*Analyst, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get analyst", "error", err, "analyst_id", id)
		return nil, internal.NewInternalError("failed to get analyst", err)
	}
	if record == nil {
		return nil, internal.ErrAnalystNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) Create(dto CreateAnalystDTO) (*Analyst, error) {
	record, err := dto.ToDataModel()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create analyst", "error", err)
		return nil, internal.NewInternalError("failed to create analyst", err)
	}

	s.logger.Info("analyst created", "analyst_id", record.ID, "name", record.Name)

	return FromDataModel(record), nil
}

// Update merges the present fields over the stored record. Validation runs
// before anything is written; an absent id mutates nothing.
func (s *Service) Update(id int64, dto UpdateAnalystDTO) (*Analyst, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load analyst for update", "error", err, "analyst_id", id)
		return nil, internal.NewInternalError("failed to load analyst", err)
	}
	if record == nil {
		return nil, internal.ErrAnalystNotFound
	}

	if err := dto.Apply(record, time.Now()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update analyst", "error", err, "analyst_id", id)
		return nil, internal.NewInternalError("failed to update analyst", err)
	}

	s.logger.Info("analyst updated", "analyst_id", id)

	return FromDataModel(record), nil
}

// Delete removes the analyst together with its vacation periods and salary
// history.
func (s *Service) Delete(id int64) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		s.logger.Error("failed to delete analyst", "error", err, "analyst_id", id)
		return internal.NewInternalError("failed to delete analyst", err)
	}
	if !deleted {
		return internal.ErrAnalystNotFound
	}

	s.logger.Info("analyst deleted", "analyst_id", id)
	return nil
}
