package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the side of an accounting entry line.
type MovementType string

const (
	MovementDebit MovementType = "DEBIT"
	MovementHaber MovementType = "HABER" // Credit side, named as in the local chart of accounts
)

// AccountingEntry is a double-entry record attached to a conciliation.
type AccountingEntry struct {
	EntryID        string                `json:"entryID"`
	ConciliationID string                `json:"conciliationID"`
	EntryDate      time.Time             `json:"entryDate"`
	Description    string                `json:"description"`
	CurrencyCode   string                `json:"currencyCode"`
	Lines          []AccountingEntryLine `json:"lines"`
	AuditFields
}

// AccountingEntryLine is one debit or haber movement of an entry.
type AccountingEntryLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	LineNumber   int             `json:"lineNumber"`
	AccountCode  string          `json:"accountCode"`
	MovementType MovementType    `json:"movementType"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
}

// IsBalanced reports whether debits equal habers across lines.
func (e AccountingEntry) IsBalanced() bool {
	debits, habers := decimal.Zero, decimal.Zero
	for _, line := range e.Lines {
		if line.MovementType == MovementDebit {
			debits = debits.Add(line.Amount)
		} else {
			habers = habers.Add(line.Amount)
		}
	}
	return debits.Equal(habers)
}
