// Package currency converts amounts between currencies through a static
// linear rate table. Conversion is for display only; balance math never
// crosses currencies.
package currency

import "math"

// Table is a read-only conversion table. Rates map a currency code to units
// of the anchor currency per one unit of that currency, so the anchor itself
// always carries a rate of 1. The table is injected wherever conversion is
// needed rather than held as a mutable global, so tests can supply their own.
type Table struct {
	Anchor string
	Rates  map[string]float64
}

// rate returns the anchor rate for a code. Unknown or non-positive rates
// fall back to 1 (anchor-equivalent) instead of failing; that is a
// deliberate fallback for codes the table does not carry, not a defect.
func (t Table) rate(code string) float64 {
	if r, ok := t.Rates[code]; ok && r > 0 {
		return r
	}
	return 1
}

// Convert converts an amount from one currency to another via the anchor
// and rounds the result to 2 decimal places. The identity case returns the
// input untouched, so a value that needs no conversion is never rounded.
func (t Table) Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	inAnchor := amount * t.rate(from)
	return roundTwo(inAnchor / t.rate(to))
}

func roundTwo(value float64) float64 {
	return math.Round(value*100) / 100
}
