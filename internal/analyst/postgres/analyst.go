package postgres

import (
	"github.com/oltecnologia/analyst-management/internal/analyst"
	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
	salaryDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/salary"
	vacationDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/vacation"
	"gorm.io/gorm"
)

type AnalystRepository struct {
	db *gorm.DB
}

func NewAnalystRepository(db *gorm.DB) analyst.Repository {
	return &AnalystRepository{db: db}
}

func (r *AnalystRepository) List() ([]*analystDatamodel.Analyst, error) {
	var analysts []*analystDatamodel.Analyst
	err := r.db.Order("id ASC").Find(&analysts).Error
	return analysts, err
}

func (r *AnalystRepository) GetByID(id int64) (*analystDatamodel.Analyst, error) {
	var a analystDatamodel.Analyst
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnalystRepository) Create(a *analystDatamodel.Analyst) error {
	return r.db.Create(a).Error
}

func (r *AnalystRepository) Update(a *analystDatamodel.Analyst) error {
	return r.db.Save(a).Error
}

// Delete cascades to the analyst's vacation periods and salary history inside
// one transaction.
func (r *AnalystRepository) Delete(id int64) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("analyst_id = ?", id).Delete(&vacationDatamodel.VacationPeriod{}).Error; err != nil {
			return err
		}
		if err := tx.Where("analyst_id = ?", id).Delete(&salaryDatamodel.SalaryHistory{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&analystDatamodel.Analyst{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}
