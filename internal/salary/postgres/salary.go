package postgres

import (
	"time"

	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
	salaryDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/salary"
	"github.com/oltecnologia/analyst-management/internal/salary"
	"gorm.io/gorm"
)

type SalaryRepository struct {
	db *gorm.DB
}

func NewSalaryRepository(db *gorm.DB) salary.Repository {
	return &SalaryRepository{db: db}
}

func (r *SalaryRepository) ListByAnalyst(analystID int64) ([]*salaryDatamodel.SalaryHistory, error) {
	var entries []*salaryDatamodel.SalaryHistory
	err := r.db.Where("analyst_id = ?", analystID).Order("adjustment_date DESC").Find(&entries).Error
	return entries, err
}

// CreateAdjustment inserts the history row and synchronizes the analyst row
// inside one transaction.
func (r *SalaryRepository) CreateAdjustment(entry *salaryDatamodel.SalaryHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return tx.Model(&analystDatamodel.Analyst{}).
			Where("id = ?", entry.AnalystID).
			Updates(map[string]interface{}{
				"current_salary":         entry.NewAmount,
				"last_salary_adjustment": entry.AdjustmentDate,
				"updated_at":             time.Now(),
			}).Error
	})
}
