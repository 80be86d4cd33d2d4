package vacation

import "time"

type VacationPeriod struct {
	ID        int64     `gorm:"primaryKey"`
	AnalystID int64     `gorm:"column:analyst_id;not null;index"`
	StartDate time.Time `gorm:"column:start_date;not null"`
	EndDate   time.Time `gorm:"column:end_date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VacationPeriod) TableName() string {
	return "vacation_periods"
}
