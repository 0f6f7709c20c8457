package dto

import (
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest registers a single bank movement.
type CreateTransactionRequest struct {
	CompanyID       string                 `json:"companyID" binding:"required"`
	BankAccountID   string                 `json:"bankAccountID" binding:"required"`
	Date            time.Time              `json:"date" binding:"required"`
	Description     string                 `json:"description" binding:"required"`
	OperationNumber string                 `json:"operationNumber"`
	Amount          decimal.Decimal        `json:"amount"` // Signed as on the statement
	TransactionType domain.TransactionType `json:"transactionType" binding:"omitempty,oneof=DEBIT CREDIT"`
	CurrencyCode    string                 `json:"currencyCode" binding:"required,len=3,uppercase"`
	SupplierID      *string                `json:"supplierID"` // Optional; guessed from the description when absent
}

// ImportTransactionsRequest carries the form fields sent next to the CSV file.
type ImportTransactionsRequest struct {
	CompanyID     string `form:"companyId" binding:"required"`
	BankAccountID string `form:"bankAccountId" binding:"required"`
}

// ImportRowError reports a CSV row that could not be imported.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportTransactionsResponse summarises a statement import.
type ImportTransactionsResponse struct {
	Imported   int              `json:"imported"`
	Duplicates int              `json:"duplicates"`
	Errors     []ImportRowError `json:"errors"`
}

// TransactionResponse defines the data returned for a bank transaction.
type TransactionResponse struct {
	TransactionID     string                   `json:"transactionID"`
	CompanyID         string                   `json:"companyID"`
	BankAccountID     string                   `json:"bankAccountID"`
	Date              time.Time                `json:"date"`
	Description       string                   `json:"description"`
	OperationNumber   string                   `json:"operationNumber"`
	Amount            decimal.Decimal          `json:"amount"`
	TransactionType   domain.TransactionType   `json:"transactionType"`
	CurrencyCode      string                   `json:"currencyCode"`
	ConciliatedAmount decimal.Decimal          `json:"conciliatedAmount"`
	PendingAmount     decimal.Decimal          `json:"pendingAmount"`
	Status            domain.TransactionStatus `json:"status"`
	SupplierID        *string                  `json:"supplierID,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	CompanyID string                    `form:"companyId" binding:"required"`
	Status    *domain.TransactionStatus `form:"status" binding:"omitempty,oneof=PENDING PARTIALLY_CONCILIATED CONCILIATED"`
	PageParams
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		CompanyID:         txn.CompanyID,
		BankAccountID:     txn.BankAccountID,
		Date:              txn.Date,
		Description:       txn.Description,
		OperationNumber:   txn.OperationNumber,
		Amount:            txn.Amount,
		TransactionType:   txn.TransactionType,
		CurrencyCode:      txn.CurrencyCode,
		ConciliatedAmount: txn.ConciliatedAmount,
		PendingAmount:     txn.PendingAmount,
		Status:            txn.Status,
		SupplierID:        txn.SupplierID,
		CreatedAt:         txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
