package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/handlers"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
	token                  string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	router, v1 := newTestRouter()
	suite.router = router
	suite.mockTransactionService = new(MockTransactionService)
	handlers.RegisterTransactionRoutes(v1, suite.mockTransactionService)
	suite.token = generateTestToken("user-1")
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (suite *TransactionHandlerTestSuite) importRequest(withFile bool) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	suite.Require().NoError(writer.WriteField("companyId", "company-1"))
	suite.Require().NoError(writer.WriteField("bankAccountId", "bank-1"))
	if withFile {
		part, err := writer.CreateFormFile("file", "statement.csv")
		suite.Require().NoError(err)
		_, err = part.Write([]byte("date,description,amount,currency\n2024-03-10,PAGO PROVEEDOR,-1180.00,PEN\n"))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.token)
	return req
}

func (suite *TransactionHandlerTestSuite) TestImportTransactions_Success() {
	suite.mockTransactionService.On("ImportTransactions", mock.Anything,
		dto.ImportTransactionsRequest{CompanyID: "company-1", BankAccountID: "bank-1"}, mock.Anything, "user-1").
		Return(&dto.ImportTransactionsResponse{Imported: 1, Errors: []dto.ImportRowError{}}, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.importRequest(true))

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"imported":1,"duplicates":0,"errors":[]}`, w.Body.String())
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestImportTransactions_MissingFile() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.importRequest(false))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "ImportTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Duplicate() {
	body := []byte(`{"companyID":"company-1","bankAccountID":"bank-1","date":"2024-03-10T00:00:00Z",
		"description":"PAGO PROVEEDOR","amount":"-1180.00","currencyCode":"PEN"}`)
	suite.mockTransactionService.On("CreateTransaction", mock.Anything, mock.Anything, "user-1").
		Return(nil, fmt.Errorf("%w: transaction hash", apperrors.ErrDuplicate)).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_RequiresCompany() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}
