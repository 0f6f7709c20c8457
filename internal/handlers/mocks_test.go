package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// generateTestToken creates a signed JWT the AuthMiddleware accepts.
func generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "backoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// newTestRouter returns a router with auth applied and the custom binding tags registered.
func newTestRouter() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			panic(err)
		}
	}
	router := gin.New()
	v1 := router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	return router, v1
}

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ImportTransactions(ctx context.Context, req dto.ImportTransactionsRequest, statement io.Reader, userID string) (*dto.ImportTransactionsResponse, error) {
	args := m.Called(ctx, req, statement, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportTransactionsResponse), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock ConciliationService ---
type MockConciliationService struct {
	mock.Mock
}

func (m *MockConciliationService) GetConciliationByID(ctx context.Context, conciliationID string) (*domain.Conciliation, error) {
	args := m.Called(ctx, conciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conciliation), args.Error(1)
}

func (m *MockConciliationService) ListConciliations(ctx context.Context, params dto.ListConciliationsParams) (*dto.ListConciliationsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListConciliationsResponse), args.Error(1)
}

func (m *MockConciliationService) CreateConciliation(ctx context.Context, req dto.CreateConciliationRequest, userID string) (*domain.Conciliation, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conciliation), args.Error(1)
}

func (m *MockConciliationService) CancelConciliation(ctx context.Context, conciliationID string, userID string) (*domain.Conciliation, error) {
	args := m.Called(ctx, conciliationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conciliation), args.Error(1)
}

func (m *MockConciliationService) DeleteConciliation(ctx context.Context, conciliationID string) error {
	args := m.Called(ctx, conciliationID)
	return args.Error(0)
}

func (m *MockConciliationService) CompleteConciliation(ctx context.Context, conciliationID string, userID string) (*domain.Conciliation, error) {
	args := m.Called(ctx, conciliationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conciliation), args.Error(1)
}

func (m *MockConciliationService) AddItem(ctx context.Context, conciliationID string, req dto.AddConciliationItemRequest, userID string) (*domain.ConciliationItem, error) {
	args := m.Called(ctx, conciliationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConciliationItem), args.Error(1)
}

func (m *MockConciliationService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateConciliationItemRequest, userID string) (*domain.ConciliationItem, error) {
	args := m.Called(ctx, itemID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConciliationItem), args.Error(1)
}

func (m *MockConciliationService) RemoveItem(ctx context.Context, itemID string, userID string) error {
	args := m.Called(ctx, itemID, userID)
	return args.Error(0)
}

func (m *MockConciliationService) RecomputeCounters(ctx context.Context, conciliationID string, userID string) (domain.ItemCounters, error) {
	args := m.Called(ctx, conciliationID, userID)
	return args.Get(0).(domain.ItemCounters), args.Error(1)
}

func (m *MockConciliationService) AutoConciliate(ctx context.Context, conciliationID string, userID string) (*domain.AutoConciliationResult, error) {
	args := m.Called(ctx, conciliationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoConciliationResult), args.Error(1)
}

var _ portssvc.ConciliationSvcFacade = (*MockConciliationService)(nil)

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) WriteConciliationReport(ctx context.Context, conciliationID string, w io.Writer) error {
	args := m.Called(ctx, conciliationID, w)
	if args.Error(0) == nil {
		_, _ = w.Write([]byte("%PDF-1.3 test"))
	}
	return args.Error(0)
}

var _ portssvc.ConciliationReportSvc = (*MockReportService)(nil)

// --- Mock AccountingEntryService ---
type MockAccountingEntryService struct {
	mock.Mock
}

func (m *MockAccountingEntryService) CreateAccountingEntry(ctx context.Context, req dto.CreateAccountingEntryRequest, userID string) (*domain.AccountingEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingEntry), args.Error(1)
}

func (m *MockAccountingEntryService) GetAccountingEntryByID(ctx context.Context, entryID string) (*domain.AccountingEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingEntry), args.Error(1)
}

func (m *MockAccountingEntryService) ExportConcar(ctx context.Context, filter domain.ConcarExportFilter) (*domain.ConcarExport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConcarExport), args.Error(1)
}

var _ portssvc.AccountingEntrySvcFacade = (*MockAccountingEntryService)(nil)
