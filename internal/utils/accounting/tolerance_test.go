package accounting_test

import (
	"testing"

	"github.com/SscSPs/accounting_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b, tol string
		want      bool
	}{
		{name: "exact match", a: "500.00", b: "500.00", tol: "0.01", want: true},
		{name: "difference equal to tolerance", a: "100.00", b: "100.01", tol: "0.01", want: true},
		{name: "difference above tolerance", a: "100.00", b: "100.02", tol: "0.01", want: false},
		{name: "order does not matter", a: "100.01", b: "100.00", tol: "0.01", want: true},
		{name: "zero tolerance requires equality", a: "10.10", b: "10.1", tol: "0", want: true},
		{name: "wide tolerance", a: "480.00", b: "500.00", tol: "20", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.WithinTolerance(dec(tt.a), dec(tt.b), dec(tt.tol)))
		})
	}
}

func TestWithinTolerance_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 is not 0.3 in binary floating point.
	sum := dec("0.1").Add(dec("0.2"))
	assert.True(t, accounting.WithinTolerance(sum, dec("0.3"), decimal.Zero))
}

func TestEffectiveTolerance(t *testing.T) {
	assert.True(t, accounting.EffectiveTolerance(decimal.Zero).Equal(dec("0.01")))
	assert.True(t, accounting.EffectiveTolerance(dec("-1")).Equal(dec("0.01")))
	assert.True(t, accounting.EffectiveTolerance(dec("0.50")).Equal(dec("0.5")))
}
