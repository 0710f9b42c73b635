package stats

import (
	"math"
	"strconv"
)

// NA is written in place of undefined or missing values.
const NA = "NA"

// Ratio is a quotient that may be undefined.
type Ratio struct {
	Value   float64
	Defined bool
}

// Undefined is the Ratio of a non-positive or non-finite denominator.
var Undefined = Ratio{}

// Div returns num/den, or Undefined unless den > 0 and both operands are
// finite.
func Div(num, den float64) Ratio {
	if !finite(num) || !finite(den) || den <= 0 {
		return Undefined
	}
	return Ratio{Value: num / den, Defined: true}
}

// String returns the value, or NA if undefined.
func (r Ratio) String() string {
	if !r.Defined {
		return NA
	}
	return FormatFloat(r.Value)
}

// FormatFloat prints v with the shortest round-tripping representation,
// and NaN or infinities as NA.
func FormatFloat(v float64) string {
	if !finite(v) {
		return NA
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
