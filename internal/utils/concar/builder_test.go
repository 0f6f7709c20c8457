package concar

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func invoice(fullNumber, description, ruc string, issued time.Time) domain.Document {
	due := issued.AddDate(0, 0, 30)
	return domain.Document{
		DocumentID:   "doc-" + fullNumber,
		DocumentType: domain.Invoice,
		FullNumber:   fullNumber,
		Description:  description,
		IssueDate:    issued,
		DueDate:      &due,
		Supplier:     &domain.Supplier{RUC: ruc},
	}
}

func sourceLine(entryID string, created time.Time, lineNumber int, movement domain.MovementType, amount string, docs ...domain.Document) domain.ConcarSourceLine {
	return domain.ConcarSourceLine{
		Line: domain.AccountingEntryLine{
			EntryID:      entryID,
			LineNumber:   lineNumber,
			AccountCode:  "421201",
			MovementType: movement,
			Amount:       decimal.RequireFromString(amount),
			Description:  "Pago proveedor",
		},
		EntryID:        entryID,
		EntryDate:      created,
		EntryCreatedAt: created,
		CurrencyCode:   "PEN",
		Documents:      docs,
	}
}

func TestBuild_CorrelativesPerMonthInCreationOrder(t *testing.T) {
	doc := invoice("F001-1", "Servicio", "20123456789", day(2024, time.March, 1))
	lines := []domain.ConcarSourceLine{
		sourceLine("entry-a", day(2024, time.March, 4), 1, domain.MovementDebit, "1400", doc),
		sourceLine("entry-a", day(2024, time.March, 4), 2, domain.MovementHaber, "1400", doc),
		sourceLine("entry-b", day(2024, time.March, 20), 1, domain.MovementDebit, "50", doc),
	}
	filter := domain.ConcarExportFilter{Year: intPtr(2024), Month: intPtr(3), DocumentTypeCode: domain.SubDiarioInvoice}

	export := Build(lines, filter)

	require.Len(t, export.Data, 3)
	assert.Equal(t, "030001", export.Data[0].NumeroComprobante)
	assert.Equal(t, "030001", export.Data[1].NumeroComprobante)
	assert.Equal(t, "030002", export.Data[2].NumeroComprobante)
	assert.Equal(t, domain.ConcarSummary{TotalRecords: 3, TotalEntries: 2, Period: "03/2024", SubDiario: "11"}, export.Summary)

	// Regenerating from the same input reproduces the numbering.
	again := Build(lines, filter)
	assert.Equal(t, export, again)
}

func TestBuild_CorrelativesRestartEachMonthWithoutExplicitMonth(t *testing.T) {
	doc := invoice("F001-1", "Servicio", "20123456789", day(2024, time.January, 2))
	lines := []domain.ConcarSourceLine{
		sourceLine("jan-1", day(2024, time.January, 10), 1, domain.MovementDebit, "10", doc),
		sourceLine("jan-2", day(2024, time.January, 11), 1, domain.MovementDebit, "10", doc),
		sourceLine("feb-1", day(2024, time.February, 1), 1, domain.MovementDebit, "10", doc),
	}

	export := Build(lines, domain.ConcarExportFilter{DocumentTypeCode: domain.SubDiarioInvoice})

	assert.Equal(t, "010001", export.Data[0].NumeroComprobante)
	assert.Equal(t, "010002", export.Data[1].NumeroComprobante)
	assert.Equal(t, "020001", export.Data[2].NumeroComprobante)
	assert.Equal(t, "Todos", export.Summary.Period)
}

func TestBuild_ColumnDerivations(t *testing.T) {
	first := invoice("F001-10", "Mantenimiento", "20111111111", day(2024, time.March, 1))
	second := invoice("F001-11", "", "20222222222", day(2024, time.March, 2))
	second.DueDate = nil
	lines := []domain.ConcarSourceLine{
		sourceLine("entry-a", day(2024, time.March, 5), 1, domain.MovementDebit, "1400", first, second),
		sourceLine("entry-a", day(2024, time.March, 5), 2, domain.MovementHaber, "1400", first, second),
	}

	export := Build(lines, domain.ConcarExportFilter{Year: intPtr(2024), Month: intPtr(3), DocumentTypeCode: domain.SubDiarioInvoice})

	debit, haber := export.Data[0], export.Data[1]
	assert.Equal(t, "11", debit.SubDiario)
	assert.Equal(t, "05/03/2024", debit.FechaComprobante)
	assert.Equal(t, "MN", debit.CodigoMoneda)
	assert.Equal(t, "Mantenimiento", debit.GlosaPrincipal)
	assert.Equal(t, "FACTURA", debit.TipoDocumento)
	assert.Equal(t, "F001-10; F001-11", debit.NumeroDocumento)
	assert.Equal(t, "01/03/2024; 02/03/2024", debit.FechaDocumento)
	assert.Equal(t, "31/03/2024", debit.FechaVencimiento)
	assert.Equal(t, "1,400.00", debit.ImporteOriginal)
	assert.Equal(t, "D", debit.DebeHaber)
	assert.Equal(t, "0000", debit.CodigoAnexo)
	assert.Equal(t, "", debit.TipoCambio)

	assert.Equal(t, "H", haber.DebeHaber)
	assert.Equal(t, "20111111111; 20222222222", haber.CodigoAnexo)
	assert.Len(t, haber.Columns(), len(domain.ConcarColumnHeaders))
}

func TestBuild_ReceiptSubDiarioAlwaysLabelsRH(t *testing.T) {
	doc := invoice("E001-5", "Honorarios", "", day(2024, time.May, 1))
	lines := []domain.ConcarSourceLine{
		sourceLine("entry-a", day(2024, time.May, 3), 1, domain.MovementHaber, "800", doc),
	}

	export := Build(lines, domain.ConcarExportFilter{DocumentTypeCode: domain.SubDiarioReceiptForFees})

	assert.Equal(t, "RH", export.Data[0].TipoDocumento)
	assert.Equal(t, "0000", export.Data[0].CodigoAnexo, "haber line without supplier RUC falls back to the generic annex")
}

func TestBuild_EmptyResult(t *testing.T) {
	export := Build(nil, domain.ConcarExportFilter{Year: intPtr(2024), DocumentTypeCode: domain.SubDiarioReceiptForFees})

	assert.NotNil(t, export.Data)
	assert.Empty(t, export.Data)
	assert.Equal(t, domain.ConcarSummary{TotalRecords: 0, TotalEntries: 0, Period: "2024", SubDiario: "15"}, export.Summary)
}

func TestWriteCSV(t *testing.T) {
	doc := invoice("F001-1", "Servicio", "20123456789", day(2024, time.March, 1))
	export := Build([]domain.ConcarSourceLine{
		sourceLine("entry-a", day(2024, time.March, 4), 1, domain.MovementDebit, "1400", doc),
	}, domain.ConcarExportFilter{Year: intPtr(2024), Month: intPtr(3), DocumentTypeCode: domain.SubDiarioInvoice})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, export.Data))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.ConcarColumnHeaders, records[0])
	assert.Len(t, records[1], 30)
	assert.Equal(t, "1,400.00", records[1][13])
}
