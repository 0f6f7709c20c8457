package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a bank movement is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// TransactionStatus tracks how much of a bank movement has been settled against documents.
type TransactionStatus string

const (
	TransactionPending              TransactionStatus = "PENDING"
	TransactionPartiallyConciliated TransactionStatus = "PARTIALLY_CONCILIATED"
	TransactionConciliated          TransactionStatus = "CONCILIATED"
)

// Transaction represents a single bank-statement movement.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	CompanyID         string            `json:"companyID"`
	BankAccountID     string            `json:"bankAccountID"`
	Date              time.Time         `json:"date"`
	Description       string            `json:"description"`
	OperationNumber   string            `json:"operationNumber"`
	Amount            decimal.Decimal   `json:"amount"` // Signed as it appears on the statement
	TransactionType   TransactionType   `json:"transactionType"`
	CurrencyCode      string            `json:"currencyCode"`
	Hash              string            `json:"hash"` // Uniqueness key for imports
	ConciliatedAmount decimal.Decimal   `json:"conciliatedAmount"`
	PendingAmount     decimal.Decimal   `json:"pendingAmount"`
	Status            TransactionStatus `json:"status"`
	SupplierID        *string           `json:"supplierID,omitempty"` // Hint used by the matching engine
	AuditFields
}

// AbsAmount returns the unsigned statement amount.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// IsConciliated reports whether the movement has been fully settled.
func (t Transaction) IsConciliated() bool {
	return t.Status == TransactionConciliated
}
