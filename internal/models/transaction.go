package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the bank_transactions table.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	CompanyID         string          `db:"company_id"`
	BankAccountID     string          `db:"bank_account_id"`
	Date              time.Time       `db:"transaction_date"`
	Description       string          `db:"description"`
	OperationNumber   *string         `db:"operation_number"` // Nullable
	Amount            decimal.Decimal `db:"amount"`
	TransactionType   string          `db:"transaction_type"`
	CurrencyCode      string          `db:"currency_code"`
	Hash              string          `db:"hash"`
	ConciliatedAmount decimal.Decimal `db:"conciliated_amount"`
	PendingAmount     decimal.Decimal `db:"pending_amount"`
	Status            string          `db:"status"`
	SupplierID        *string         `db:"supplier_id"` // Nullable
	AuditFields
}
