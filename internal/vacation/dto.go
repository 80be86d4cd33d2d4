package vacation

import (
	"time"

	"github.com/oltecnologia/analyst-management/internal"
	"github.com/oltecnologia/analyst-management/internal/core/common/validation"
)

// CreateVacationPeriodDTO is the request payload. The analyst id comes from
// the URL path, never from the body.
type CreateVacationPeriodDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Parse validates and converts the wire dates.
func (d CreateVacationPeriodDTO) Parse() (start, end time.Time, err error) {
	start, appErr := validation.ParseDate("startDate", d.StartDate)
	if appErr != nil {
		return time.Time{}, time.Time{}, appErr
	}

	end, appErr = validation.ParseDate("endDate", d.EndDate)
	if appErr != nil {
		return time.Time{}, time.Time{}, appErr
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, internal.NewValidationFieldError("endDate", "endDate cannot precede startDate", internal.ErrCodeInvalidDate)
	}

	return start, end, nil
}
