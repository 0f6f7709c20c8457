package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conciliation is a row of the conciliations table.
type Conciliation struct {
	ConciliationID   string          `db:"conciliation_id"`
	CompanyID        string          `db:"company_id"`
	BankAccountID    string          `db:"bank_account_id"`
	TransactionID    string          `db:"transaction_id"`
	ConciliationType string          `db:"conciliation_type"`
	PeriodStart      time.Time       `db:"period_start"`
	PeriodEnd        time.Time       `db:"period_end"`
	BankBalance      decimal.Decimal `db:"bank_balance"`
	BookBalance      decimal.Decimal `db:"book_balance"`
	Difference       decimal.Decimal `db:"difference"`
	ToleranceAmount  decimal.Decimal `db:"tolerance_amount"`
	TotalDocuments   int             `db:"total_documents"`
	ConciliatedItems int             `db:"conciliated_items"`
	PendingItems     int             `db:"pending_items"`
	Status           string          `db:"status"`
	Notes            *string         `db:"notes"`        // Nullable
	CompletedAt      *time.Time      `db:"completed_at"` // Nullable
	AuditFields
}

// ConciliationItem is a row of the conciliation_items table.
type ConciliationItem struct {
	ItemID            string          `db:"item_id"`
	ConciliationID    string          `db:"conciliation_id"`
	DocumentID        string          `db:"document_id"`
	DocumentAmount    decimal.Decimal `db:"document_amount"`
	ConciliatedAmount decimal.Decimal `db:"conciliated_amount"`
	Difference        decimal.Decimal `db:"difference"`
	Status            string          `db:"status"`
	SystemNotes       *string         `db:"system_notes"` // Nullable
	Notes             *string         `db:"notes"`        // Nullable
	AuditFields
}
