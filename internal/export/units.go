// Package export writes evaluated members to spreadsheets and PDF reports.
package export

import (
	"fmt"

	"github.com/ctessum/unit"
)

var dollarsDim = unit.NewDimension("USD")

// Units of the reported quantities
var (
	Meter    = unit.Dimensions{unit.LengthDim: 1}
	Kilogram = unit.Kilogram
	Cubic    = unit.Dimensions{unit.LengthDim: 3}
	Square   = unit.Dimensions{unit.LengthDim: 2}
	Quartic  = unit.Dimensions{unit.LengthDim: 4}
	Inertia  = unit.Dimensions{
		unit.MassDim:   1,
		unit.LengthDim: 2}
	Newton = unit.Dimensions{
		unit.MassDim:   1,
		unit.LengthDim: 1,
		unit.TimeDim:   -2}
	KgPerMeter = unit.Dimensions{
		unit.MassDim:   1,
		unit.LengthDim: -1}
	Dollars = unit.Dimensions{dollarsDim: 1}
)

// Format prints a value with its units
func Format(v float64, d unit.Dimensions) string {
	u := unit.New(v, d)
	return fmt.Sprintf("%.5g %s", u.Value(), u.Dimensions().String())
}
