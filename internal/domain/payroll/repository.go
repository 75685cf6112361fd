package payroll

import "context"

type Repository interface {
	Create(ctx context.Context, rec *SalaryRecord) error
	// FindForEmployee returns ErrNotFound unless the record belongs to
	// employeeID.
	FindForEmployee(ctx context.Context, id, employeeID int64) (SalaryRecord, error)
	// ListForEmployee orders by generated_on, newest first.
	ListForEmployee(ctx context.Context, employeeID int64) ([]SalaryRecord, error)
}
