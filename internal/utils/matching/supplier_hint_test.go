package matching

import (
	"testing"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var suppliers = []domain.Supplier{
	{SupplierID: "s-1", RUC: "20100047218", BusinessName: "Transportes Andinos S.A.C."},
	{SupplierID: "s-2", RUC: "20512345678", BusinessName: "Ferreteria El Martillo E.I.R.L."},
	{SupplierID: "s-3", RUC: "10456789012", BusinessName: "Maria Quispe"},
}

func TestSupplierHint_MatchesByRUC(t *testing.T) {
	got := SupplierHint("TRANSF 20512345678 PAGO FACT 123", suppliers, 0.35)

	require.NotNil(t, got)
	assert.Equal(t, "s-2", got.SupplierID)
}

func TestSupplierHint_MatchesByName(t *testing.T) {
	got := SupplierHint("PAGO PROV TRANSPORTES ANDINO 00981", suppliers, 0.35)

	require.NotNil(t, got)
	assert.Equal(t, "s-1", got.SupplierID)
}

func TestSupplierHint_ToleratesTypos(t *testing.T) {
	got := SupplierHint("ABONO MARIA QISPE HONORARIOS", suppliers, 0.35)

	require.NotNil(t, got)
	assert.Equal(t, "s-3", got.SupplierID)
}

func TestSupplierHint_NoMatch(t *testing.T) {
	assert.Nil(t, SupplierHint("COMISION MANTENIMIENTO CUENTA", suppliers, 0.35))
	assert.Nil(t, SupplierHint("", suppliers, 0.35))
	assert.Nil(t, SupplierHint("PAGO TRANSPORTES", nil, 0.35))
}

func TestDistanceRatio(t *testing.T) {
	assert.Equal(t, 0.0, DistanceRatio("", ""))
	assert.Equal(t, 0.0, DistanceRatio("acme", "acme"))
	assert.InDelta(t, 0.25, DistanceRatio("acme", "acne"), 1e-9)
}
