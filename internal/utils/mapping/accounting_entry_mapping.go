package mapping

import (
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/models"
)

// ToModelAccountingEntry converts a domain AccountingEntry to its model and line models
func ToModelAccountingEntry(d domain.AccountingEntry) (models.AccountingEntry, []models.AccountingEntryLine) {
	entry := models.AccountingEntry{
		EntryID:        d.EntryID,
		ConciliationID: d.ConciliationID,
		EntryDate:      d.EntryDate,
		Description:    nullableString(d.Description),
		CurrencyCode:   d.CurrencyCode,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	lines := make([]models.AccountingEntryLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = ToModelAccountingEntryLine(l)
	}
	return entry, lines
}

// ToModelAccountingEntryLine converts a domain line to a model line
func ToModelAccountingEntryLine(d domain.AccountingEntryLine) models.AccountingEntryLine {
	return models.AccountingEntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		LineNumber:   d.LineNumber,
		AccountCode:  d.AccountCode,
		MovementType: string(d.MovementType),
		Amount:       d.Amount,
		Description:  nullableString(d.Description),
	}
}

// ToDomainAccountingEntry converts an entry model and its line models to a domain AccountingEntry
func ToDomainAccountingEntry(m models.AccountingEntry, lines []models.AccountingEntryLine) domain.AccountingEntry {
	d := domain.AccountingEntry{
		EntryID:        m.EntryID,
		ConciliationID: m.ConciliationID,
		EntryDate:      m.EntryDate,
		Description:    stringValue(m.Description),
		CurrencyCode:   m.CurrencyCode,
		Lines:          make([]domain.AccountingEntryLine, len(lines)),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		d.Lines[i] = ToDomainAccountingEntryLine(l)
	}
	return d
}

// ToDomainAccountingEntryLine converts a model line to a domain line
func ToDomainAccountingEntryLine(m models.AccountingEntryLine) domain.AccountingEntryLine {
	return domain.AccountingEntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		LineNumber:   m.LineNumber,
		AccountCode:  m.AccountCode,
		MovementType: domain.MovementType(m.MovementType),
		Amount:       m.Amount,
		Description:  stringValue(m.Description),
	}
}
