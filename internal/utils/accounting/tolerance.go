package accounting

import "github.com/shopspring/decimal"

// DefaultTolerance is the matching epsilon used when a conciliation does not set one.
var DefaultTolerance = decimal.New(1, -2) // 0.01

// WithinTolerance reports whether |a - b| <= tolerance.
func WithinTolerance(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// EffectiveTolerance returns tolerance, or DefaultTolerance when tolerance is zero or negative.
func EffectiveTolerance(tolerance decimal.Decimal) decimal.Decimal {
	if !tolerance.IsPositive() {
		return DefaultTolerance
	}
	return tolerance
}
