package analyst

import (
	"time"

	"github.com/oltecnologia/analyst-management/internal"
	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
	"github.com/oltecnologia/analyst-management/internal/core/common/validation"
)

// CreateAnalystDTO is the payload for creating an analyst. Dates travel as
// YYYY-MM-DD strings, monetary values as decimal strings.
type CreateAnalystDTO struct {
	Name                 string  `json:"name"`
	Position             string  `json:"position"`
	StartDate            string  `json:"startDate"`
	IsActive             *bool   `json:"isActive"`
	DayOffEnabled        *bool   `json:"dayOffEnabled"`
	Observations         *string `json:"observations"`
	Performance          *string `json:"performance"`
	CurrentSalary        *string `json:"currentSalary"`
	LastSalaryAdjustment *string `json:"lastSalaryAdjustment"`
}

// ToDataModel validates the payload and builds the record to store. Schema
// defaults apply when the optional booleans are omitted.
func (d CreateAnalystDTO) ToDataModel() (*analystDatamodel.Analyst, error) {
	if d.Name == "" {
		return nil, internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if d.Position == "" {
		return nil, internal.NewValidationFieldError("position", "position is required", internal.ErrCodeValidationFailed)
	}

	startDate, appErr := validation.ParseDate("startDate", d.StartDate)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := validation.ValidatePerformance(d.Performance); appErr != nil {
		return nil, appErr
	}

	salary, appErr := validation.NormalizeOptionalAmount("currentSalary", d.CurrentSalary)
	if appErr != nil {
		return nil, appErr
	}

	lastAdjustment, appErr := validation.ParseOptionalDate("lastSalaryAdjustment", d.LastSalaryAdjustment)
	if appErr != nil {
		return nil, appErr
	}

	record := &analystDatamodel.Analyst{
		Name:                 d.Name,
		Position:             d.Position,
		StartDate:            startDate,
		IsActive:             true,
		DayOffEnabled:        false,
		Observations:         d.Observations,
		Performance:          d.Performance,
		CurrentSalary:        salary,
		LastSalaryAdjustment: lastAdjustment,
	}
	if d.IsActive != nil {
		record.IsActive = *d.IsActive
	}
	if d.DayOffEnabled != nil {
		record.DayOffEnabled = *d.DayOffEnabled
	}

	return record, nil
}

// UpdateAnalystDTO carries a partial update; absent fields leave the stored
// record unchanged.
type UpdateAnalystDTO struct {
	Name                 *string `json:"name"`
	Position             *string `json:"position"`
	StartDate            *string `json:"startDate"`
	IsActive             *bool   `json:"isActive"`
	DayOffEnabled        *bool   `json:"dayOffEnabled"`
	Observations         *string `json:"observations"`
	Performance          *string `json:"performance"`
	CurrentSalary        *string `json:"currentSalary"`
	LastSalaryAdjustment *string `json:"lastSalaryAdjustment"`
}

// Apply validates the present fields and merges them over the stored record.
func (d UpdateAnalystDTO) Apply(record *analystDatamodel.Analyst, now time.Time) error {
	if d.Name != nil {
		if *d.Name == "" {
			return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeValidationFailed)
		}
		record.Name = *d.Name
	}
	if d.Position != nil {
		if *d.Position == "" {
			return internal.NewValidationFieldError("position", "position cannot be empty", internal.ErrCodeValidationFailed)
		}
		record.Position = *d.Position
	}
	if d.StartDate != nil {
		startDate, appErr := validation.ParseDate("startDate", *d.StartDate)
		if appErr != nil {
			return appErr
		}
		record.StartDate = startDate
	}
	if d.IsActive != nil {
		record.IsActive = *d.IsActive
	}
	if d.DayOffEnabled != nil {
		record.DayOffEnabled = *d.DayOffEnabled
	}
	if d.Observations != nil {
		record.Observations = d.Observations
	}
	if d.Performance != nil {
		if appErr := validation.ValidatePerformance(d.Performance); appErr != nil {
			return appErr
		}
		record.Performance = d.Performance
	}
	if d.CurrentSalary != nil {
		salary, appErr := validation.NormalizeOptionalAmount("currentSalary", d.CurrentSalary)
		if appErr != nil {
			return appErr
		}
		record.CurrentSalary = salary
	}
	if d.LastSalaryAdjustment != nil {
		lastAdjustment, appErr := validation.ParseOptionalDate("lastSalaryAdjustment", d.LastSalaryAdjustment)
		if appErr != nil {
			return appErr
		}
		record.LastSalaryAdjustment = lastAdjustment
	}

	record.UpdatedAt = now
	return nil
}
