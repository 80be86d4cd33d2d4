package salary

import (
	"time"

	salaryDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/salary"
)

type SalaryHistory struct {
	ID             int64     `json:"id"`
	AnalystID      int64     `json:"analystId"`
	PreviousAmount *string   `json:"previousAmount,omitempty"`
	NewAmount      string    `json:"newAmount"`
	AdjustmentDate time.Time `json:"adjustmentDate"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func FromDataModel(e *salaryDatamodel.SalaryHistory) *SalaryHistory {
	return &SalaryHistory{
		ID:             e.ID,
		AnalystID:      e.AnalystID,
		PreviousAmount: e.PreviousAmount,
		NewAmount:      e.NewAmount,
		AdjustmentDate: e.AdjustmentDate,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
	}
}

func FromDataModelSlice(entries []*salaryDatamodel.SalaryHistory) []*SalaryHistory {
	result := make([]*SalaryHistory, len(entries))
	for i, e := range entries {
		result[i] = FromDataModel(e)
	}
	return result
}
