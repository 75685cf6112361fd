package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageHeight = 11.0
	leftMargin = 1.0
	amountX    = 6.0
	ruleEnd    = 7.0
)

// PayslipEmployee is the subset of the employee shown on a payslip.
type PayslipEmployee struct {
	ID        int64
	FirstName string
	LastName  string
}

// RenderPayslipPDF draws a single US letter page. Positions are given in
// inches from the bottom edge and converted to gofpdf's top-left origin.
func RenderPayslipPDF(w io.Writer, emp PayslipEmployee, slip Payslip) error {
	pdf := gofpdf.New("P", "in", "Letter", "")
	pdf.SetTitle(fmt.Sprintf("Salary Slip - %s %d", slip.Month, slip.Year), false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	text := func(x, fromBottom float64, s string) {
		pdf.Text(x, pageHeight-fromBottom, s)
	}
	rule := func(fromBottom float64) {
		pdf.Line(leftMargin, pageHeight-fromBottom, ruleEnd, pageHeight-fromBottom)
	}
	amount := func(v float64) string {
		return "$" + FormatAmount(v)
	}

	pdf.SetFont("Helvetica", "B", 16)
	text(leftMargin, 10, "False 9 2 5")
	pdf.SetFont("Helvetica", "", 12)
	text(leftMargin, 9.7, "Siraiki Adda")
	text(leftMargin, 9.4, "Email: hr@false925.com")

	period := fmt.Sprintf("%s %d", slip.Month, slip.Year)
	pdf.SetFont("Helvetica", "B", 14)
	text(leftMargin, 8.7, "Salary Slip - "+period)

	pdf.SetFont("Helvetica", "B", 12)
	text(leftMargin, 8.0, "Employee Information")
	pdf.SetFont("Helvetica", "", 12)
	text(leftMargin, 7.7, fmt.Sprintf("Name: %s %s", emp.FirstName, emp.LastName))
	text(leftMargin, 7.4, fmt.Sprintf("Employee ID: %d", emp.ID))
	text(leftMargin, 7.1, "Pay Period: "+period)

	pdf.SetFont("Helvetica", "B", 12)
	text(leftMargin, 6.4, "Earnings")
	rule(6.3)
	pdf.SetFont("Helvetica", "", 12)
	text(leftMargin, 6.0, "Basic Salary")
	text(amountX, 6.0, amount(slip.BasicSalary))

	y := 6.0
	if slip.HousingAllowance != 0 {
		y -= 0.2
		text(leftMargin, y, "Housing Allowance")
		text(amountX, y, amount(slip.HousingAllowance))
	}
	if slip.TransportAllowance != 0 {
		y -= 0.2
		text(leftMargin, y, "Transport Allowance")
		text(amountX, y, amount(slip.TransportAllowance))
	}

	pdf.SetFont("Helvetica", "B", 12)
	text(leftMargin, y-0.4, "Total Earnings")
	text(amountX, y-0.4, amount(slip.TotalEarnings))

	pdf.SetFont("Helvetica", "B", 12)
	text(leftMargin, 4.9, "Deductions")
	rule(4.8)
	pdf.SetFont("Helvetica", "", 12)
	text(leftMargin, 4.5, "Income Tax")
	text(amountX, 4.5, amount(slip.Tax))
	pdf.SetFont("Helvetica", "B", 12)
	text(leftMargin, 4.1, "Total Deductions")
	text(amountX, 4.1, amount(slip.Deductions))

	pdf.SetFont("Helvetica", "B", 14)
	text(leftMargin, 3.4, "Net Pay")
	text(amountX, 3.4, amount(slip.NetSalary))

	pdf.SetFont("Helvetica", "", 10)
	text(leftMargin, 2.7, fmt.Sprintf("Payslip ID: %d", slip.ID))
	text(leftMargin, 2.4, "Generated on: "+slip.GeneratedOn.Format(dateLayout))

	pdf.SetFont("Helvetica", "I", 10)
	text(leftMargin, 1.5, "This is a computer-generated document and does not require a signature.")
	text(leftMargin, 1.2, "For any queries regarding your salary, please contact the HR department.")

	return pdf.Output(w)
}
