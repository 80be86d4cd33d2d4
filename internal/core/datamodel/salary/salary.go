package salary

import "time"

type SalaryHistory struct {
	ID             int64     `gorm:"primaryKey"`
	AnalystID      int64     `gorm:"column:analyst_id;not null;index"`
	PreviousAmount *string   `gorm:"column:previous_amount;type:decimal(10,2)"`
	NewAmount      string    `gorm:"column:new_amount;type:decimal(10,2);not null"`
	AdjustmentDate time.Time `gorm:"column:adjustment_date;not null"`
	Notes          *string   `gorm:"column:notes"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (SalaryHistory) TableName() string {
	return "salary_history"
}
