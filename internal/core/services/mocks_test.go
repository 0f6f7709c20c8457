package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, companyID string, status *domain.TransactionStatus, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, companyID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) ApplyTransactionSettlement(ctx context.Context, settlement domain.TransactionSettlement, audit domain.AuditFields) error {
	args := m.Called(ctx, settlement, audit)
	return args.Error(0)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindDocumentsByIDs(ctx context.Context, documentIDs []string) (map[string]domain.Document, error) {
	args := m.Called(ctx, documentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListCandidateDocuments(ctx context.Context, query portsrepo.CandidateDocumentQuery) ([]domain.Document, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, companyID string, status *domain.DocumentStatus, limit int, nextToken *string) ([]domain.Document, *string, error) {
	args := m.Called(ctx, companyID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Document), returnedNextToken, args.Error(2)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) ApplyDocumentSettlement(ctx context.Context, settlement domain.DocumentSettlement, audit domain.AuditFields) error {
	args := m.Called(ctx, settlement, audit)
	return args.Error(0)
}

// --- Mock SupplierRepository ---
type MockSupplierRepository struct {
	mock.Mock
}

var _ portsrepo.SupplierRepositoryFacade = (*MockSupplierRepository)(nil)

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindSupplierByRUC(ctx context.Context, companyID, ruc string) (*domain.Supplier, error) {
	args := m.Called(ctx, companyID, ruc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliersByCompany(ctx context.Context, companyID string) ([]domain.Supplier, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

// --- Mock ConciliationRepository ---
type MockConciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ConciliationRepositoryFacade = (*MockConciliationRepository)(nil)

func (m *MockConciliationRepository) FindConciliationByID(ctx context.Context, conciliationID string) (*domain.Conciliation, error) {
	args := m.Called(ctx, conciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conciliation), args.Error(1)
}

func (m *MockConciliationRepository) ListConciliations(ctx context.Context, companyID string, status *domain.ConciliationStatus, limit int, nextToken *string) ([]domain.Conciliation, *string, error) {
	args := m.Called(ctx, companyID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Conciliation), returnedNextToken, args.Error(2)
}

func (m *MockConciliationRepository) SaveConciliation(ctx context.Context, conciliation domain.Conciliation) error {
	args := m.Called(ctx, conciliation)
	return args.Error(0)
}

func (m *MockConciliationRepository) UpdateConciliationStatus(ctx context.Context, conciliationID string, status domain.ConciliationStatus, completedAt *time.Time, audit domain.AuditFields) error {
	args := m.Called(ctx, conciliationID, status, completedAt, audit)
	return args.Error(0)
}

func (m *MockConciliationRepository) UpdateConciliationCounters(ctx context.Context, conciliationID string, counters domain.ItemCounters, audit domain.AuditFields) error {
	args := m.Called(ctx, conciliationID, counters, audit)
	return args.Error(0)
}

func (m *MockConciliationRepository) DeleteConciliation(ctx context.Context, conciliationID string) error {
	args := m.Called(ctx, conciliationID)
	return args.Error(0)
}

func (m *MockConciliationRepository) FindItemByID(ctx context.Context, itemID string) (*domain.ConciliationItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConciliationItem), args.Error(1)
}

func (m *MockConciliationRepository) ListItemsByConciliation(ctx context.Context, conciliationID string) ([]domain.ConciliationItem, error) {
	args := m.Called(ctx, conciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConciliationItem), args.Error(1)
}

func (m *MockConciliationRepository) SaveItem(ctx context.Context, item domain.ConciliationItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockConciliationRepository) UpdateItem(ctx context.Context, item domain.ConciliationItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockConciliationRepository) DeleteItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// --- Mock AccountingEntryRepository ---
type MockAccountingEntryRepository struct {
	mock.Mock
}

var _ portsrepo.AccountingEntryRepositoryFacade = (*MockAccountingEntryRepository)(nil)

func (m *MockAccountingEntryRepository) FindAccountingEntryByID(ctx context.Context, entryID string) (*domain.AccountingEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingEntry), args.Error(1)
}

func (m *MockAccountingEntryRepository) ListConcarSourceLines(ctx context.Context, filter domain.ConcarExportFilter, documentType domain.DocumentType) ([]domain.ConcarSourceLine, error) {
	args := m.Called(ctx, filter, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConcarSourceLine), args.Error(1)
}

func (m *MockAccountingEntryRepository) SaveAccountingEntry(ctx context.Context, entry domain.AccountingEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// stubUnitOfWork runs the callback directly against the mocks. A callback error is
// returned as-is, which is what a rolled back database transaction looks like to callers.
type stubUnitOfWork struct {
	repos portsrepo.AtomicRepositories
	runs  int
}

func (u *stubUnitOfWork) RunAtomic(ctx context.Context, fn func(ctx context.Context, repos portsrepo.AtomicRepositories) error) error {
	u.runs++
	return fn(ctx, u.repos)
}
