package salary

import (
	"time"

	"github.com/oltecnologia/analyst-management/internal/core/common/validation"
)

// CreateSalaryHistoryDTO is the adjustment payload. previousAmount is
// optional; when omitted the analyst's stored salary is snapshotted instead.
type CreateSalaryHistoryDTO struct {
	PreviousAmount *string `json:"previousAmount"`
	NewAmount      string  `json:"newAmount"`
	AdjustmentDate string  `json:"adjustmentDate"`
	Notes          *string `json:"notes"`
}

// Parse validates and normalizes the monetary fields and the date.
func (d CreateSalaryHistoryDTO) Parse() (newAmount string, previousAmount *string, adjustmentDate time.Time, err error) {
	newAmount, appErr := validation.NormalizeAmount("newAmount", d.NewAmount)
	if appErr != nil {
		return "", nil, time.Time{}, appErr
	}

	previousAmount, appErr = validation.NormalizeOptionalAmount("previousAmount", d.PreviousAmount)
	if appErr != nil {
		return "", nil, time.Time{}, appErr
	}

	adjustmentDate, appErr = validation.ParseDate("adjustmentDate", d.AdjustmentDate)
	if appErr != nil {
		return "", nil, time.Time{}, appErr
	}

	return newAmount, previousAmount, adjustmentDate, nil
}
