package services

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/utils/matching"
)

// statementDateLayouts are the date formats accepted in imported bank statements.
var statementDateLayouts = []string{"2006-01-02", "02/01/2006"}

type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	supplierRepo    portsrepo.SupplierRepositoryFacade
	opts            serviceOptions
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade, options ...ServiceOption) portssvc.TransactionSvcFacade {
	opts := applyOptions(options)
	return &transactionService{
		BaseService:     BaseService{now: opts.now},
		transactionRepo: transactionRepo,
		supplierRepo:    supplierRepo,
		opts:            opts,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// TransactionHash derives the import uniqueness key of a bank movement.
func TransactionHash(bankAccountID string, date time.Time, amount decimal.Decimal, description, operationNumber string) string {
	key := strings.Join([]string{
		bankAccountID,
		date.Format("2006-01-02"),
		amount.StringFixed(2),
		strings.TrimSpace(description),
		strings.TrimSpace(operationNumber),
	}, "|")
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// CreateTransaction stores one bank movement.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount cannot be zero", apperrors.ErrValidation)
	}

	supplierID := req.SupplierID
	if supplierID == nil {
		suppliers, err := s.supplierRepo.ListSuppliersByCompany(ctx, req.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list suppliers: %w", err)
		}
		supplierID = s.hintSupplier(req.Description, suppliers)
	}

	txn := s.newTransaction(req, supplierID, userID)
	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: transaction already registered", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save transaction", slog.String("company_id", req.CompanyID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction by its ID.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions returns a page of transactions for a company.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, params.CompanyID, params.Status, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// ImportTransactions reads a statement with a header row naming the columns
// date, description, operation_number, amount, currency and optionally supplier_ruc.
func (s *transactionService) ImportTransactions(ctx context.Context, req dto.ImportTransactionsRequest, statement io.Reader, userID string) (*dto.ImportTransactionsResponse, error) {
	reader := csv.NewReader(statement)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: statement has no header row", apperrors.ErrValidation)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "description", "amount", "currency"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: statement is missing the %q column", apperrors.ErrValidation, required)
		}
	}

	suppliers, err := s.supplierRepo.ListSuppliersByCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	byRUC := make(map[string]string, len(suppliers))
	for _, supplier := range suppliers {
		byRUC[supplier.RUC] = supplier.SupplierID
	}

	res := &dto.ImportTransactionsResponse{Errors: []dto.ImportRowError{}}
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			res.Errors = append(res.Errors, dto.ImportRowError{Row: row, Message: err.Error()})
			continue
		}

		create, ruc, err := parseStatementRow(record, columns, req)
		if err != nil {
			res.Errors = append(res.Errors, dto.ImportRowError{Row: row, Message: err.Error()})
			continue
		}

		var supplierID *string
		if ruc != "" {
			if id, ok := byRUC[ruc]; ok {
				supplierID = &id
			}
		}
		if supplierID == nil {
			supplierID = s.hintSupplier(create.Description, suppliers)
		}

		txn := s.newTransaction(create, supplierID, userID)
		if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				res.Duplicates++
				continue
			}
			s.LogError(ctx, err, "Failed to import statement row", slog.Int("row", row))
			return nil, fmt.Errorf("failed to import row %d: %w", row, err)
		}
		res.Imported++
	}

	s.LogInfo(ctx, "Bank statement imported",
		slog.String("bank_account_id", req.BankAccountID),
		slog.Int("imported", res.Imported),
		slog.Int("duplicates", res.Duplicates),
		slog.Int("errors", len(res.Errors)))
	return res, nil
}

func (s *transactionService) newTransaction(req dto.CreateTransactionRequest, supplierID *string, userID string) domain.Transaction {
	txnType := req.TransactionType
	if txnType == "" {
		txnType = domain.Credit
		if req.Amount.IsNegative() {
			txnType = domain.Debit
		}
	}

	return domain.Transaction{
		TransactionID:     uuid.NewString(),
		CompanyID:         req.CompanyID,
		BankAccountID:     req.BankAccountID,
		Date:              req.Date,
		Description:       strings.TrimSpace(req.Description),
		OperationNumber:   strings.TrimSpace(req.OperationNumber),
		Amount:            req.Amount,
		TransactionType:   txnType,
		CurrencyCode:      strings.ToUpper(req.CurrencyCode),
		Hash:              TransactionHash(req.BankAccountID, req.Date, req.Amount, req.Description, req.OperationNumber),
		ConciliatedAmount: decimal.Zero,
		PendingAmount:     req.Amount.Abs(),
		Status:            domain.TransactionPending,
		SupplierID:        supplierID,
		AuditFields:       s.audit(userID),
	}
}

func (s *transactionService) hintSupplier(description string, suppliers []domain.Supplier) *string {
	supplier := matching.SupplierHint(description, suppliers, s.opts.supplierHintMaxRatio)
	if supplier == nil {
		return nil
	}
	id := supplier.SupplierID
	return &id
}

// parseStatementRow turns one CSV record into a create request and the optional supplier RUC.
func parseStatementRow(record []string, columns map[string]int, req dto.ImportTransactionsRequest) (dto.CreateTransactionRequest, string, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := parseStatementDate(field("date"))
	if err != nil {
		return dto.CreateTransactionRequest{}, "", err
	}
	description := field("description")
	if description == "" {
		return dto.CreateTransactionRequest{}, "", fmt.Errorf("description is required")
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(field("amount"), ",", ""))
	if err != nil {
		return dto.CreateTransactionRequest{}, "", fmt.Errorf("invalid amount %q", field("amount"))
	}
	if amount.IsZero() {
		return dto.CreateTransactionRequest{}, "", fmt.Errorf("amount cannot be zero")
	}
	currency := strings.ToUpper(field("currency"))
	if len(currency) != 3 {
		return dto.CreateTransactionRequest{}, "", fmt.Errorf("invalid currency %q", field("currency"))
	}

	return dto.CreateTransactionRequest{
		CompanyID:       req.CompanyID,
		BankAccountID:   req.BankAccountID,
		Date:            date,
		Description:     description,
		OperationNumber: field("operation_number"),
		Amount:          amount,
		CurrencyCode:    currency,
	}, field("supplier_ruc"), nil
}

func parseStatementDate(value string) (time.Time, error) {
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
