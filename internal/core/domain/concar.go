package domain

import "time"

// SubDiario codes accepted by the CONCAR export; they double as document type selectors.
const (
	SubDiarioReceiptForFees = "15"
	SubDiarioInvoice        = "11"
)

// DocumentTypeForSubDiario maps the export selector to the document type it filters on.
func DocumentTypeForSubDiario(code string) (DocumentType, bool) {
	switch code {
	case SubDiarioReceiptForFees:
		return ReceiptForFees, true
	case SubDiarioInvoice:
		return Invoice, true
	default:
		return "", false
	}
}

// ConcarExportFilter selects the accounting entry lines to export.
type ConcarExportFilter struct {
	CompanyID        string
	Year             *int
	Month            *int
	StartDay         *int
	EndDay           *int
	BankAccountIDs   []string
	ConciliationType *ConciliationType
	DocumentTypeCode string // "15" or "11"
}

// Window returns the [from, to) creation-time range implied by the date fields, or ok=false
// when no bound applies. Callers validate the fields first.
func (f ConcarExportFilter) Window() (from, to time.Time, ok bool) {
	if f.Year == nil {
		return time.Time{}, time.Time{}, false
	}
	year := *f.Year
	if f.Month == nil {
		from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0), true
	}
	month := time.Month(*f.Month)
	startDay := 1
	if f.StartDay != nil {
		startDay = *f.StartDay
	}
	from = time.Date(year, month, startDay, 0, 0, 0, 0, time.UTC)
	if f.EndDay != nil {
		to = time.Date(year, month, *f.EndDay, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	} else {
		to = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	}
	return from, to, true
}

// ConcarSourceLine is an accounting entry line joined with everything the formatter needs.
type ConcarSourceLine struct {
	Line           AccountingEntryLine
	EntryID        string
	EntryDate      time.Time
	EntryCreatedAt time.Time
	CurrencyCode   string
	// Documents linked to the entry's conciliation, in item creation order, with Supplier set.
	Documents []Document
}

// ConcarRow is one exported line in CONCAR column order (A..AD).
type ConcarRow struct {
	SubDiario                 string `json:"subDiario"`
	NumeroComprobante         string `json:"numeroComprobante"`
	FechaComprobante          string `json:"fechaComprobante"`
	CodigoMoneda              string `json:"codigoMoneda"`
	GlosaPrincipal            string `json:"glosaPrincipal"`
	TipoCambio                string `json:"tipoCambio"`
	TipoConversion            string `json:"tipoConversion"`
	FlagConversionMoneda      string `json:"flagConversionMoneda"`
	FechaTipoCambio           string `json:"fechaTipoCambio"`
	CuentaContable            string `json:"cuentaContable"`
	CodigoAnexo               string `json:"codigoAnexo"`
	CentroCosto               string `json:"centroCosto"`
	DebeHaber                 string `json:"debeHaber"`
	ImporteOriginal           string `json:"importeOriginal"`
	ImporteDolares            string `json:"importeDolares"`
	ImporteSoles              string `json:"importeSoles"`
	TipoDocumento             string `json:"tipoDocumento"`
	NumeroDocumento           string `json:"numeroDocumento"`
	FechaDocumento            string `json:"fechaDocumento"`
	FechaVencimiento          string `json:"fechaVencimiento"`
	CodigoArea                string `json:"codigoArea"`
	GlosaDetalle              string `json:"glosaDetalle"`
	CodigoAnexoAuxiliar       string `json:"codigoAnexoAuxiliar"`
	MedioPago                 string `json:"medioPago"`
	TipoDocumentoReferencia   string `json:"tipoDocumentoReferencia"`
	NumeroDocumentoReferencia string `json:"numeroDocumentoReferencia"`
	FechaDocumentoReferencia  string `json:"fechaDocumentoReferencia"`
	NroMaqRegistradora        string `json:"nroMaqRegistradora"`
	BaseImponibleReferencia   string `json:"baseImponibleReferencia"`
	IGVProvision              string `json:"igvProvision"`
}

// ConcarColumnHeaders are the column titles of the CONCAR import template, in order.
var ConcarColumnHeaders = []string{
	"Sub Diario",
	"Número de Comprobante",
	"Fecha de Comprobante",
	"Código de Moneda",
	"Glosa Principal",
	"Tipo de Cambio",
	"Tipo de Conversión",
	"Flag de Conversión de Moneda",
	"Fecha Tipo de Cambio",
	"Cuenta Contable",
	"Código de Anexo",
	"Código de Centro de Costo",
	"Debe / Haber",
	"Importe Original",
	"Importe en Dólares",
	"Importe en Soles",
	"Tipo de Documento",
	"Número de Documento",
	"Fecha de Documento",
	"Fecha de Vencimiento",
	"Código de Area",
	"Glosa Detalle",
	"Código de Anexo Auxiliar",
	"Medio de Pago",
	"Tipo de Documento de Referencia",
	"Número de Documento Referencia",
	"Fecha Documento Referencia",
	"Nro Máq. Registradora Tipo Doc. Ref.",
	"Base Imponible Documento Referencia",
	"IGV Documento Provisión",
}

// Columns returns the row values in column order; the slice always has len(ConcarColumnHeaders).
func (r ConcarRow) Columns() []string {
	return []string{
		r.SubDiario,
		r.NumeroComprobante,
		r.FechaComprobante,
		r.CodigoMoneda,
		r.GlosaPrincipal,
		r.TipoCambio,
		r.TipoConversion,
		r.FlagConversionMoneda,
		r.FechaTipoCambio,
		r.CuentaContable,
		r.CodigoAnexo,
		r.CentroCosto,
		r.DebeHaber,
		r.ImporteOriginal,
		r.ImporteDolares,
		r.ImporteSoles,
		r.TipoDocumento,
		r.NumeroDocumento,
		r.FechaDocumento,
		r.FechaVencimiento,
		r.CodigoArea,
		r.GlosaDetalle,
		r.CodigoAnexoAuxiliar,
		r.MedioPago,
		r.TipoDocumentoReferencia,
		r.NumeroDocumentoReferencia,
		r.FechaDocumentoReferencia,
		r.NroMaqRegistradora,
		r.BaseImponibleReferencia,
		r.IGVProvision,
	}
}

// ConcarSummary describes an export run.
type ConcarSummary struct {
	TotalRecords int    `json:"totalRecords"`
	TotalEntries int    `json:"totalEntries"`
	Period       string `json:"period"`
	SubDiario    string `json:"subDiario"`
}

// ConcarExport is the full export payload.
type ConcarExport struct {
	Data    []ConcarRow   `json:"data"`
	Summary ConcarSummary `json:"summary"`
}
