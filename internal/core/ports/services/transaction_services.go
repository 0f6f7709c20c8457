package services

import (
	"context"
	"io"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
)

// TransactionReaderSvc defines read operations for bank transactions
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for bank transactions
type TransactionWriterSvc interface {
	// CreateTransaction stores one movement. Returns apperrors.ErrDuplicate when the same movement was already imported.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// ImportTransactions reads a bank statement CSV and stores every new movement.
	// Rows that fail to parse or already exist are reported, not fatal.
	ImportTransactions(ctx context.Context, req dto.ImportTransactionsRequest, statement io.Reader, userID string) (*dto.ImportTransactionsResponse, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
