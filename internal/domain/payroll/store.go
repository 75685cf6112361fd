package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, rec *SalaryRecord) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO salary (employee_id, basic_salary, tax, net_pay, generated_on)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, rec.EmployeeID, rec.BasicSalary, rec.Tax, rec.NetPay, rec.GeneratedOn).Scan(&rec.ID)
}

func (s *Store) FindForEmployee(ctx context.Context, id, employeeID int64) (SalaryRecord, error) {
	var rec SalaryRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, basic_salary, tax, net_pay, generated_on
    FROM salary
    WHERE id = $1 AND employee_id = $2
  `, id, employeeID).Scan(&rec.ID, &rec.EmployeeID, &rec.BasicSalary, &rec.Tax, &rec.NetPay, &rec.GeneratedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return SalaryRecord{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID int64) ([]SalaryRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, basic_salary, tax, net_pay, generated_on
    FROM salary
    WHERE employee_id = $1
    ORDER BY generated_on DESC, id DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SalaryRecord
	for rows.Next() {
		var rec SalaryRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.BasicSalary, &rec.Tax, &rec.NetPay, &rec.GeneratedOn); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
