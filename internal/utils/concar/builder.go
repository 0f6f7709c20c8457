package concar

import (
	"fmt"
	"strings"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
)

const allPeriods = "Todos"

// Build turns the ordered source lines into CONCAR rows. Lines must already be
// sorted by entry creation time and line number; correlatives are assigned in
// that order, so the same input always yields the same numbering.
func Build(lines []domain.ConcarSourceLine, filter domain.ConcarExportFilter) domain.ConcarExport {
	export := domain.ConcarExport{
		Data: make([]domain.ConcarRow, 0, len(lines)),
		Summary: domain.ConcarSummary{
			Period:    Period(filter),
			SubDiario: filter.DocumentTypeCode,
		},
	}

	numbering := newCorrelatives(filter.Month)
	for _, src := range lines {
		comprobante := numbering.assign(src)
		export.Data = append(export.Data, buildRow(src, comprobante, filter.DocumentTypeCode))
	}

	export.Summary.TotalRecords = len(export.Data)
	export.Summary.TotalEntries = numbering.entries()
	return export
}

// Period describes the export window for the summary.
func Period(filter domain.ConcarExportFilter) string {
	switch {
	case filter.Year != nil && filter.Month != nil:
		return fmt.Sprintf("%02d/%04d", *filter.Month, *filter.Year)
	case filter.Year != nil:
		return fmt.Sprintf("%04d", *filter.Year)
	default:
		return allPeriods
	}
}

// correlatives numbers entries per calendar month in first-seen order.
type correlatives struct {
	fixedMonth *int
	perMonth   map[string]int
	byEntry    map[string]string
}

func newCorrelatives(month *int) *correlatives {
	return &correlatives{
		fixedMonth: month,
		perMonth:   make(map[string]int),
		byEntry:    make(map[string]string),
	}
}

func (c *correlatives) assign(src domain.ConcarSourceLine) string {
	if number, ok := c.byEntry[src.EntryID]; ok {
		return number
	}

	var key string
	var month int
	if c.fixedMonth != nil {
		month = *c.fixedMonth
		key = fmt.Sprintf("%02d", month)
	} else {
		month = int(src.EntryCreatedAt.Month())
		key = src.EntryCreatedAt.Format("2006-01")
	}

	c.perMonth[key]++
	number := fmt.Sprintf("%02d%04d", month, c.perMonth[key])
	c.byEntry[src.EntryID] = number
	return number
}

func (c *correlatives) entries() int {
	return len(c.byEntry)
}

func buildRow(src domain.ConcarSourceLine, comprobante, subDiario string) domain.ConcarRow {
	docs := src.Documents

	descriptions := make([]string, 0, len(docs))
	numbers := make([]string, 0, len(docs))
	issued := make([]string, 0, len(docs))
	due := make([]string, 0, len(docs))
	for _, doc := range docs {
		descriptions = append(descriptions, doc.Description)
		numbers = append(numbers, doc.FullNumber)
		issued = append(issued, FormatDate(doc.IssueDate))
		if doc.DueDate != nil {
			due = append(due, FormatDate(*doc.DueDate))
		}
	}

	debeHaber := "H"
	if src.Line.MovementType == domain.MovementDebit {
		debeHaber = "D"
	}

	return domain.ConcarRow{
		SubDiario:         subDiario,
		NumeroComprobante: comprobante,
		FechaComprobante:  FormatDate(src.EntryDate),
		CodigoMoneda:      CurrencyCode(src.CurrencyCode),
		GlosaPrincipal:    joinNonEmpty(descriptions),
		CuentaContable:    src.Line.AccountCode,
		CodigoAnexo:       annexCode(debeHaber, docs),
		DebeHaber:         debeHaber,
		ImporteOriginal:   FormatAmount(src.Line.Amount),
		TipoDocumento:     documentTypeLabel(subDiario, docs),
		NumeroDocumento:   joinNonEmpty(numbers),
		FechaDocumento:    joinNonEmpty(issued),
		FechaVencimiento:  joinNonEmpty(due),
		GlosaDetalle:      src.Line.Description,
	}
}

func documentTypeLabel(subDiario string, docs []domain.Document) string {
	if subDiario == domain.SubDiarioReceiptForFees {
		return "RH"
	}
	if len(docs) > 0 && docs[0].DocumentType == domain.Invoice {
		return "FACTURA"
	}
	return "RH"
}

// annexCode is the counterpart RUC on haber lines; debit lines carry the generic annex.
func annexCode(debeHaber string, docs []domain.Document) string {
	if debeHaber == "D" {
		return emptyAnnex
	}

	rucs := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Supplier != nil && strings.TrimSpace(doc.Supplier.RUC) != "" {
			rucs = append(rucs, doc.Supplier.RUC)
		}
	}
	if len(rucs) == 0 {
		return emptyAnnex
	}
	return strings.Join(rucs, listSeparator)
}
