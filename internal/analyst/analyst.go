package analyst

import (
	"time"

	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
	"github.com/oltecnologia/analyst-management/internal/auth"
)

// Analyst is the full employee record, visible to admins and managers.
// Wire field names are camelCase to match the browser client.
type Analyst struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"name"`
	Position             string     `json:"position"`
	StartDate            time.Time  `json:"startDate"`
	IsActive             bool       `json:"isActive"`
	DayOffEnabled        bool       `json:"dayOffEnabled"`
	Observations         *string    `json:"observations,omitempty"`
	Performance          *string    `json:"performance,omitempty"`
	CurrentSalary        *string    `json:"currentSalary,omitempty"`
	LastSalaryAdjustment *time.Time `json:"lastSalaryAdjustment,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// PublicAnalyst is the redacted view served to analyst-role callers: no
// salary, no adjustment date, no performance grade.
type PublicAnalyst struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Position      string    `json:"position"`
	StartDate     time.Time `json:"startDate"`
	IsActive      bool      `json:"isActive"`
	DayOffEnabled bool      `json:"dayOffEnabled"`
	Observations  *string   `json:"observations,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Redact returns the derived view without the restricted fields. The receiver
// is never modified.
func (a *Analyst) Redact() *PublicAnalyst {
	return &PublicAnalyst{
		ID:            a.ID,
		Name:          a.Name,
		Position:      a.Position,
		StartDate:     a.StartDate,
		IsActive:      a.IsActive,
		DayOffEnabled: a.DayOffEnabled,
		Observations:  a.Observations,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ViewForRole applies the role-based field filter. Admins and managers see
// the record unchanged.
func ViewForRole(role string, a *Analyst) interface{} {
	if role == auth.RoleAnalyst {
		return a.Redact()
	}
	return a
}

// ViewListForRole applies ViewForRole across a list response.
func ViewListForRole(role string, analysts []*Analyst) []interface{} {
	views := make([]interface{}, len(analysts))
	for i, a := range analysts {
		views[i] = ViewForRole(role, a)
	}
	return views
}

func FromDataModel(a *analystDatamodel.Analyst) *Analyst {
	return &Analyst{
		ID:                   a.ID,
		Name:                 a.Name,
		Position:             a.Position,
		StartDate:            a.StartDate,
		IsActive:             a.IsActive,
		DayOffEnabled:        a.DayOffEnabled,
		Observations:         a.Observations,
		Performance:          a.Performance,
		CurrentSalary:        a.CurrentSalary,
		LastSalaryAdjustment: a.LastSalaryAdjustment,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

func FromDataModelSlice(analysts []*analystDatamodel.Analyst) []*Analyst {
	result := make([]*Analyst, len(analysts))
	for i, a := range analysts {
		result[i] = FromDataModel(a)
	}
	return result
}
