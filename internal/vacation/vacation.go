package vacation

import (
	"time"

	vacationDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/vacation"
)

// MaxPeriodsPerAnalyst caps how many vacation periods one analyst can hold.
// The cap is enforced here in the service layer so it holds for every caller,
// not just the browser client.
const MaxPeriodsPerAnalyst = 4

type VacationPeriod struct {
	ID        int64     `json:"id"`
	AnalystID int64     `json:"analystId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromDataModel(p *vacationDatamodel.VacationPeriod) *VacationPeriod {
	return &VacationPeriod{
		ID:        p.ID,
		AnalystID: p.AnalystID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		CreatedAt: p.CreatedAt,
	}
}

func FromDataModelSlice(periods []*vacationDatamodel.VacationPeriod) []*VacationPeriod {
	result := make([]*VacationPeriod, len(periods))
	for i, p := range periods {
		result[i] = FromDataModel(p)
	}
	return result
}
