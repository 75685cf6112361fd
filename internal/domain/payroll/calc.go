package payroll

import (
	"math"
	"strconv"
)

// ComputeNet applies a percentage tax to the basic salary. Amounts are
// rounded to cents.
func ComputeNet(basic, taxPercent float64) (tax, net float64) {
	tax = roundCents(basic * taxPercent / 100)
	net = roundCents(basic - tax)
	return tax, net
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount prints an amount with two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
