package analyst

import "time"

type Analyst struct {
	ID                   int64      `gorm:"primaryKey"`
	Name                 string     `gorm:"column:name;not null"`
	Position             string     `gorm:"column:position;not null"`
	StartDate            time.Time  `gorm:"column:start_date;not null"`
	IsActive             bool       `gorm:"column:is_active;not null;default:true"`
	DayOffEnabled        bool       `gorm:"column:day_off_enabled;not null;default:false"`
	Observations         *string    `gorm:"column:observations"`
	Performance          *string    `gorm:"column:performance"`
	CurrentSalary        *string    `gorm:"column:current_salary;type:decimal(10,2)"`
	LastSalaryAdjustment *time.Time `gorm:"column:last_salary_adjustment"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (Analyst) TableName() string {
	return "analysts"
}
