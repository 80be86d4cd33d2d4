package postgres

import (
	vacationDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/vacation"
	"github.com/oltecnologia/analyst-management/internal/vacation"
	"gorm.io/gorm"
)

type VacationRepository struct {
	db *gorm.DB
}

func NewVacationRepository(db *gorm.DB) vacation.Repository {
	return &VacationRepository{db: db}
}

func (r *VacationRepository) ListByAnalyst(analystID int64) ([]*vacationDatamodel.VacationPeriod, error) {
	var periods []*vacationDatamodel.VacationPeriod
	err := r.db.Where("analyst_id = ?", analystID).Order("start_date ASC").Find(&periods).Error
	return periods, err
}

func (r *VacationRepository) CountByAnalyst(analystID int64) (int64, error) {
	var count int64
	err := r.db.Model(&vacationDatamodel.VacationPeriod{}).Where("analyst_id = ?", analystID).Count(&count).Error
	return count, err
}

func (r *VacationRepository) Create(p *vacationDatamodel.VacationPeriod) error {
	return r.db.Create(p).Error
}

func (r *VacationRepository) Delete(id int64) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&vacationDatamodel.VacationPeriod{})
	return result.RowsAffected > 0, result.Error
}
