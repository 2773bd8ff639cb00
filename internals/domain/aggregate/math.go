// Package aggregate turns rows already read from the store into dashboard and
// report figures. Nothing here performs I/O or reads the wall clock.
package aggregate

import (
	"math"
	"strconv"
)

// Round2 rounds half away from zero to 2 decimals.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// Ratio returns num/den, or 0 when den is 0.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Percent returns num/den*100 rounded to 2 decimals, 0 when den is 0.
func Percent(num, den float64) float64 {
	return Round2(Ratio(num, den) * 100)
}

// gradeLess orders "7" < "8" < ... < "12"; non-numeric values sort after numeric ones.
func gradeLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai < bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}
