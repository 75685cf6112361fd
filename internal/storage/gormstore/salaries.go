package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hrdesk/internal/domain/payroll"
)

type SalaryRepository struct {
	db *gorm.DB
}

func (row salaryRow) toDomain() payroll.SalaryRecord {
	return payroll.SalaryRecord{
		ID:          row.ID,
		EmployeeID:  row.EmployeeID,
		BasicSalary: row.BasicSalary,
		Tax:         row.Tax,
		NetPay:      row.NetPay,
		GeneratedOn: row.GeneratedOn,
	}
}

func (r *SalaryRepository) Create(ctx context.Context, rec *payroll.SalaryRecord) error {
	row := salaryRow{
		EmployeeID:  rec.EmployeeID,
		BasicSalary: rec.BasicSalary,
		Tax:         rec.Tax,
		NetPay:      rec.NetPay,
		GeneratedOn: rec.GeneratedOn,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

func (r *SalaryRepository) FindForEmployee(ctx context.Context, id, employeeID int64) (payroll.SalaryRecord, error) {
	var row salaryRow
	err := r.db.WithContext(ctx).Where("id = ? AND employee_id = ?", id, employeeID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payroll.SalaryRecord{}, payroll.ErrNotFound
	}
	if err != nil {
		return payroll.SalaryRecord{}, err
	}
	return row.toDomain(), nil
}

func (r *SalaryRepository) ListForEmployee(ctx context.Context, employeeID int64) ([]payroll.SalaryRecord, error) {
	var rows []salaryRow
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Order("generated_on DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]payroll.SalaryRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
