package payroll

import (
	"strconv"
	"time"
)

const StatusProcessed = "Processed"

// SalaryRecord is immutable once written. EmployeeID is not enforced as a
// foreign key.
type SalaryRecord struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employee_id"`
	BasicSalary float64   `json:"basic_salary"`
	Tax         float64   `json:"tax"`
	NetPay      float64   `json:"net_pay"`
	GeneratedOn time.Time `json:"generated_on"`
}

// Allowances are added on top of the stored net pay when a payslip is
// displayed. They come from configuration.
type Allowances struct {
	Housing   float64
	Transport float64
}

func (a Allowances) Total() float64 {
	return a.Housing + a.Transport
}

// Payslip is a salary record prepared for display.
type Payslip struct {
	SalaryRecord
	Month              string  `json:"month"`
	Year               int     `json:"year"`
	Status             string  `json:"status"`
	NetSalary          float64 `json:"net_salary"`
	HousingAllowance   float64 `json:"housing_allowance"`
	TransportAllowance float64 `json:"transport_allowance"`
	Allowances         float64 `json:"allowances"`
	Deductions         float64 `json:"deductions"`
	TotalEarnings      float64 `json:"total_earnings"`
}

func NewPayslip(rec SalaryRecord, allowances Allowances) Payslip {
	total := allowances.Total()
	return Payslip{
		SalaryRecord:       rec,
		Month:              rec.GeneratedOn.Month().String(),
		Year:               rec.GeneratedOn.Year(),
		Status:             StatusProcessed,
		NetSalary:          roundCents(rec.NetPay + total),
		HousingAllowance:   allowances.Housing,
		TransportAllowance: allowances.Transport,
		Allowances:         total,
		Deductions:         rec.Tax,
		TotalEarnings:      roundCents(rec.BasicSalary + total),
	}
}

// FileName is the download name of the rendered PDF.
func (p Payslip) FileName() string {
	return "payslip_" + p.Month + "_" + strconv.Itoa(p.Year) + ".pdf"
}

// SalaryForm holds the raw values of the salary submission form.
type SalaryForm struct {
	EmployeeID string
	Salary     string
	TaxPercent string
	Date       string
}
