package calculator

import "github.com/shopspring/decimal"

// MinorUnitPlaces is the number of decimal places every amount is kept to.
const MinorUnitPlaces = 2

// Tolerance is the largest difference between a split sum and an expense
// total that still counts as reconciled: one minor unit.
var Tolerance = decimal.New(1, -MinorUnitPlaces)

// HasMinorUnitPrecision reports whether d has no more than two decimal places.
func HasMinorUnitPrecision(d decimal.Decimal) bool {
	return d.Round(MinorUnitPlaces).Equal(d)
}

// Reconciles reports whether sum matches total within Tolerance.
func Reconciles(sum, total decimal.Decimal) bool {
	return sum.Sub(total).Abs().LessThan(Tolerance)
}
