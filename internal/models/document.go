package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is a row of the documents table.
type Document struct {
	DocumentID        string              `db:"document_id"`
	CompanyID         string              `db:"company_id"`
	SupplierID        *string             `db:"supplier_id"` // Nullable
	DocumentType      string              `db:"document_type"`
	Series            string              `db:"series"`
	Number            string              `db:"number"`
	FullNumber        string              `db:"full_number"`
	IssueDate         time.Time           `db:"issue_date"`
	DueDate           *time.Time          `db:"due_date"` // Nullable
	CurrencyCode      string              `db:"currency_code"`
	Description       *string             `db:"description"` // Nullable
	Total             decimal.Decimal     `db:"total"`
	RetentionAmount   decimal.Decimal     `db:"retention_amount"`
	NetPayableAmount  decimal.Decimal     `db:"net_payable_amount"`
	ConciliatedAmount decimal.Decimal     `db:"conciliated_amount"`
	PendingAmount     decimal.NullDecimal `db:"pending_amount"` // Null on rows imported before balances were tracked
	Status            string              `db:"status"`
	AuditFields

	// Supplier columns from the LEFT JOIN; all nil when the document has no supplier.
	SupplierRUC  *string `db:"ruc"`
	SupplierName *string `db:"business_name"`
}

// Supplier is a row of the suppliers table.
type Supplier struct {
	SupplierID   string `db:"supplier_id"`
	CompanyID    string `db:"company_id"`
	RUC          string `db:"ruc"`
	BusinessName string `db:"business_name"`
}
