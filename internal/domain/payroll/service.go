package payroll

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	msgAllFieldsRequired = "All fields are required"
	msgInvalidNumbers    = "Invalid numeric values provided"
	dateLayout           = "2006-01-02"

	// maxAmount is the first value a NUMERIC(10,2) column cannot hold.
	maxAmount = 1e8
)

type Service struct {
	Repo       Repository
	Allowances Allowances
	Now        func() time.Time
}

func NewService(repo Repository, allowances Allowances) *Service {
	return &Service{Repo: repo, Allowances: allowances, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Submit records a salary. The tax field is a percentage of the basic
// salary and the date defaults to today.
func (s *Service) Submit(ctx context.Context, form SalaryForm) (SalaryRecord, error) {
	rawID := strings.TrimSpace(form.EmployeeID)
	rawSalary := strings.TrimSpace(form.Salary)
	rawTax := strings.TrimSpace(form.TaxPercent)
	if rawID == "" || rawSalary == "" || rawTax == "" {
		return SalaryRecord{}, invalid(msgAllFieldsRequired)
	}
	employeeID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return SalaryRecord{}, invalid(msgInvalidNumbers)
	}
	basic, err := strconv.ParseFloat(rawSalary, 64)
	if err != nil {
		return SalaryRecord{}, invalid(msgInvalidNumbers)
	}
	pct, err := strconv.ParseFloat(rawTax, 64)
	if err != nil {
		return SalaryRecord{}, invalid(msgInvalidNumbers)
	}
	if !storableAmount(basic) || !storableAmount(pct) {
		return SalaryRecord{}, invalid(msgInvalidNumbers)
	}
	generated := s.now()
	if raw := strings.TrimSpace(form.Date); raw != "" {
		generated, err = time.Parse(dateLayout, raw)
		if err != nil {
			return SalaryRecord{}, invalid(msgInvalidNumbers)
		}
	}

	tax, net := ComputeNet(basic, pct)
	rec := SalaryRecord{
		EmployeeID:  employeeID,
		BasicSalary: roundCents(basic),
		Tax:         tax,
		NetPay:      net,
		GeneratedOn: time.Date(generated.Year(), generated.Month(), generated.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := s.Repo.Create(ctx, &rec); err != nil {
		return SalaryRecord{}, fmt.Errorf("create salary record: %w", err)
	}
	return rec, nil
}

// SubmittedMessage confirms a recorded salary using the amount as typed.
func SubmittedMessage(form SalaryForm, rec SalaryRecord) string {
	return fmt.Sprintf("Salary of $%s processed successfully for employee ID %d", strings.TrimSpace(form.Salary), rec.EmployeeID)
}

func (s *Service) ListPayslips(ctx context.Context, employeeID int64) ([]Payslip, error) {
	records, err := s.Repo.ListForEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list salary records: %w", err)
	}
	out := make([]Payslip, 0, len(records))
	for _, rec := range records {
		out = append(out, NewPayslip(rec, s.Allowances))
	}
	return out, nil
}

// Payslip returns one of the employee's own records.
func (s *Service) Payslip(ctx context.Context, employeeID, id int64) (Payslip, error) {
	rec, err := s.Repo.FindForEmployee(ctx, id, employeeID)
	if err != nil {
		return Payslip{}, err
	}
	return NewPayslip(rec, s.Allowances), nil
}

func storableAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) < maxAmount
}
