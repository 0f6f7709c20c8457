package repositories

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
)

// TransactionReader defines read operations for bank transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its ID. Returns apperrors.ErrNotFound when absent.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of a company's transactions, newest first, using token-based pagination.
	ListTransactions(ctx context.Context, companyID string, status *domain.TransactionStatus, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for bank transactions
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction. Returns apperrors.ErrDuplicate when the hash already exists.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// ApplyTransactionSettlement writes the balances computed when a conciliation completes.
	ApplyTransactionSettlement(ctx context.Context, settlement domain.TransactionSettlement, audit domain.AuditFields) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
