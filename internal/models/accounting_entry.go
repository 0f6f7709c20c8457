package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountingEntry is a row of the accounting_entries table.
type AccountingEntry struct {
	EntryID        string    `db:"entry_id"`
	ConciliationID string    `db:"conciliation_id"`
	EntryDate      time.Time `db:"entry_date"`
	Description    *string   `db:"description"` // Nullable
	CurrencyCode   string    `db:"currency_code"`
	AuditFields
}

// AccountingEntryLine is a row of the accounting_entry_lines table.
type AccountingEntryLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	LineNumber   int             `db:"line_number"`
	AccountCode  string          `db:"account_code"`
	MovementType string          `db:"movement_type"`
	Amount       decimal.Decimal `db:"amount"`
	Description  *string         `db:"description"` // Nullable
}
