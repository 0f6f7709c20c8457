package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/core/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/utils/accounting"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

type ConciliationServiceTestSuite struct {
	suite.Suite
	conciliationRepo *MockConciliationRepository
	transactionRepo  *MockTransactionRepository
	documentRepo     *MockDocumentRepository
	uow              *stubUnitOfWork
	service          portssvc.ConciliationSvcFacade
	ctx              context.Context
	userID           string
}

func (s *ConciliationServiceTestSuite) SetupTest() {
	s.conciliationRepo = new(MockConciliationRepository)
	s.transactionRepo = new(MockTransactionRepository)
	s.documentRepo = new(MockDocumentRepository)
	s.uow = &stubUnitOfWork{repos: portsrepo.AtomicRepositories{
		Transactions:  s.transactionRepo,
		Documents:     s.documentRepo,
		Conciliations: s.conciliationRepo,
	}}
	s.service = services.NewConciliationService(
		s.conciliationRepo,
		s.transactionRepo,
		s.documentRepo,
		s.uow,
		services.WithClock(func() time.Time { return fixedNow }),
	)
	s.ctx = context.Background()
	s.userID = "user-1"
}

func TestConciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConciliationServiceTestSuite))
}

func (s *ConciliationServiceTestSuite) transaction(amount string, supplierID *string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   "txn-1",
		CompanyID:       "company-1",
		BankAccountID:   "bank-1",
		Date:            time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		Amount:          dec(amount),
		TransactionType: domain.Credit,
		CurrencyCode:    "PEN",
		PendingAmount:   dec(amount).Abs(),
		Status:          domain.TransactionPending,
		SupplierID:      supplierID,
	}
}

func (s *ConciliationServiceTestSuite) conciliation(status domain.ConciliationStatus) *domain.Conciliation {
	return &domain.Conciliation{
		ConciliationID:  "conc-1",
		CompanyID:       "company-1",
		BankAccountID:   "bank-1",
		TransactionID:   "txn-1",
		Type:            domain.ConciliationDocuments,
		PeriodStart:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:       time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		ToleranceAmount: dec("0.01"),
		Status:          status,
	}
}

func (s *ConciliationServiceTestSuite) document(id, total string, supplierID *string) *domain.Document {
	return &domain.Document{
		DocumentID:       id,
		CompanyID:        "company-1",
		SupplierID:       supplierID,
		DocumentType:     domain.Invoice,
		FullNumber:       "F001-" + id,
		IssueDate:        time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Total:            dec(total),
		NetPayableAmount: dec(total),
		Status:           domain.DocumentValidated,
	}
}

func (s *ConciliationServiceTestSuite) candidateQuery() portsrepo.CandidateDocumentQuery {
	c := s.conciliation(domain.ConciliationPending)
	return portsrepo.CandidateDocumentQuery{CompanyID: c.CompanyID, IssuedFrom: c.PeriodStart, IssuedUntil: c.PeriodEnd}
}

// --- Lifecycle ---

func (s *ConciliationServiceTestSuite) TestCreateConciliation_DefaultsToleranceAndType() {
	s.transactionRepo.On("FindTransactionByID", mock.Anything, "txn-1").Return(s.transaction("1500", nil), nil).Once()
	s.conciliationRepo.On("SaveConciliation", mock.Anything, mock.AnythingOfType("domain.Conciliation")).Return(nil).Once()

	req := dto.CreateConciliationRequest{
		CompanyID:     "company-1",
		BankAccountID: "bank-1",
		TransactionID: "txn-1",
		PeriodStart:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		BankBalance:   dec("5000"),
		BookBalance:   dec("4800"),
	}
	created, err := s.service.CreateConciliation(s.ctx, req, s.userID)

	s.Require().NoError(err)
	s.True(created.ToleranceAmount.Equal(dec("0.01")))
	s.Equal(domain.ConciliationDocuments, created.Type)
	s.Equal(domain.ConciliationPending, created.Status)
	s.True(created.Difference.Equal(dec("200")))
	s.Equal(fixedNow, created.CreatedAt)
	s.conciliationRepo.AssertExpectations(s.T())
}

func (s *ConciliationServiceTestSuite) TestCreateConciliation_NegativeToleranceRejected() {
	req := dto.CreateConciliationRequest{
		CompanyID:       "company-1",
		BankAccountID:   "bank-1",
		TransactionID:   "txn-1",
		ToleranceAmount: decPtr("-0.01"),
	}
	_, err := s.service.CreateConciliation(s.ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.transactionRepo.AssertNotCalled(s.T(), "FindTransactionByID", mock.Anything, mock.Anything)
}

func (s *ConciliationServiceTestSuite) TestCreateConciliation_SecondConciliationForTransaction() {
	s.transactionRepo.On("FindTransactionByID", mock.Anything, "txn-1").Return(s.transaction("1500", nil), nil).Once()
	s.conciliationRepo.On("SaveConciliation", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	req := dto.CreateConciliationRequest{CompanyID: "company-1", BankAccountID: "bank-1", TransactionID: "txn-1"}
	_, err := s.service.CreateConciliation(s.ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *ConciliationServiceTestSuite) TestCreateConciliation_ForeignTransaction() {
	s.transactionRepo.On("FindTransactionByID", mock.Anything, "txn-1").Return(s.transaction("1500", nil), nil).Once()

	req := dto.CreateConciliationRequest{CompanyID: "company-2", BankAccountID: "bank-1", TransactionID: "txn-1"}
	_, err := s.service.CreateConciliation(s.ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.conciliationRepo.AssertNotCalled(s.T(), "SaveConciliation", mock.Anything, mock.Anything)
}

func (s *ConciliationServiceTestSuite) TestCancelConciliation() {
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationInProgress), nil).Once()
	s.conciliationRepo.On("UpdateConciliationStatus", mock.Anything, "conc-1", domain.ConciliationCancelled, mock.Anything, mock.Anything).Return(nil).Once()

	cancelled, err := s.service.CancelConciliation(s.ctx, "conc-1", s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ConciliationCancelled, cancelled.Status)
	s.Equal(s.userID, cancelled.LastUpdatedBy)
}

func (s *ConciliationServiceTestSuite) TestCancelConciliation_TerminalStatus() {
	for _, status := range []domain.ConciliationStatus{domain.ConciliationCompleted, domain.ConciliationCancelled} {
		s.SetupTest()
		s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(status), nil).Once()

		_, err := s.service.CancelConciliation(s.ctx, "conc-1", s.userID)

		s.ErrorIs(err, apperrors.ErrConflict, "status %s", status)
	}
}

func (s *ConciliationServiceTestSuite) TestDeleteConciliation_ReferencesPaidDocument() {
	paid := s.document("doc-1", "100", nil)
	paid.Status = domain.DocumentPaid
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationInProgress), nil).Once()
	s.conciliationRepo.On("ListItemsByConciliation", mock.Anything, "conc-1").Return([]domain.ConciliationItem{{DocumentID: "doc-1"}}, nil).Once()
	s.documentRepo.On("FindDocumentsByIDs", mock.Anything, []string{"doc-1"}).Return(map[string]domain.Document{"doc-1": *paid}, nil).Once()

	err := s.service.DeleteConciliation(s.ctx, "conc-1")

	s.ErrorIs(err, apperrors.ErrConflict)
	s.conciliationRepo.AssertNotCalled(s.T(), "DeleteConciliation", mock.Anything, mock.Anything)
}

func (s *ConciliationServiceTestSuite) TestDeleteConciliation_Completed() {
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationCompleted), nil).Once()

	err := s.service.DeleteConciliation(s.ctx, "conc-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ConciliationServiceTestSuite) TestGetConciliationByID_NotFound() {
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetConciliationByID(s.ctx, "missing")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Automatic matching ---

func (s *ConciliationServiceTestSuite) expectMatchingRun(txn *domain.Transaction, candidates []domain.Document, existing, afterRun []domain.ConciliationItem) {
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationPending), nil).Once()
	s.transactionRepo.On("FindTransactionByID", mock.Anything, "txn-1").Return(txn, nil).Once()
	s.documentRepo.On("ListCandidateDocuments", mock.Anything, s.candidateQuery()).Return(candidates, nil).Once()
	s.conciliationRepo.On("ListItemsByConciliation", mock.Anything, "conc-1").Return(existing, nil).Once()
	s.conciliationRepo.On("ListItemsByConciliation", mock.Anything, "conc-1").Return(afterRun, nil).Once()
	s.conciliationRepo.On("UpdateConciliationCounters", mock.Anything, "conc-1", domain.RecomputeCounters(afterRun), mock.Anything).Return(nil).Once()
}

func (s *ConciliationServiceTestSuite) TestAutoConciliate_ExactAmountMatches() {
	doc := s.document("doc-1", "1500", nil)
	s.expectMatchingRun(s.transaction("1500", nil), []domain.Document{*doc},
		[]domain.ConciliationItem{},
		[]domain.ConciliationItem{{DocumentID: "doc-1", Status: domain.ItemMatched}})
	s.conciliationRepo.On("SaveItem", mock.Anything, mock.MatchedBy(func(item domain.ConciliationItem) bool {
		return item.DocumentID == "doc-1" &&
			item.Status == domain.ItemMatched &&
			item.ConciliatedAmount.Equal(dec("1500")) &&
			item.Difference.IsZero() &&
			item.SystemNotes == accounting.NoteMatchedByAmount
	})).Return(nil).Once()
	s.conciliationRepo.On("UpdateConciliationStatus", mock.Anything, "conc-1", domain.ConciliationInProgress, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := s.service.AutoConciliate(s.ctx, "conc-1", s.userID)

	s.Require().NoError(err)
	s.Equal(domain.AutoConciliationResult{Matched: 1}, *result)
	s.conciliationRepo.AssertExpectations(s.T())
}

func (s *ConciliationServiceTestSuite) TestAutoConciliate_SameSupplierDifferentAmount() {
	doc := s.document("doc-1", "1480", strPtr("supplier-1"))
	s.expectMatchingRun(s.transaction("1500", strPtr("supplier-1")), []domain.Document{*doc},
		[]domain.ConciliationItem{},
		[]domain.ConciliationItem{{DocumentID: "doc-1", Status: domain.ItemPartialMatch}})
	s.conciliationRepo.On("SaveItem", mock.Anything, mock.MatchedBy(func(item domain.ConciliationItem) bool {
		return item.Status == domain.ItemPartialMatch &&
			item.Difference.Equal(dec("20")) &&
			item.SystemNotes == accounting.NoteMatchedBySupplier
	})).Return(nil).Once()
	s.conciliationRepo.On("UpdateConciliationStatus", mock.Anything, "conc-1", domain.ConciliationInProgress, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := s.service.AutoConciliate(s.ctx, "conc-1", s.userID)

	s.Require().NoError(err)
	s.Equal(1, result.PartialMatches)
	s.Equal(0, result.Matched)
	s.conciliationRepo.AssertExpectations(s.T())
}

func (s *ConciliationServiceTestSuite) TestAutoConciliate_NoMatchLeavesConciliationPending() {
	doc := s.document("doc-1", "900", strPtr("supplier-2"))
	s.expectMatchingRun(s.transaction("1500", strPtr("supplier-1")), []domain.Document{*doc},
		[]domain.ConciliationItem{}, []domain.ConciliationItem{})

	result, err := s.service.AutoConciliate(s.ctx, "conc-1", s.userID)

	s.Require().NoError(err)
	s.Equal(domain.AutoConciliationResult{Unmatched: 1}, *result)
	s.conciliationRepo.AssertNotCalled(s.T(), "SaveItem", mock.Anything, mock.Anything)
	s.conciliationRepo.AssertNotCalled(s.T(), "UpdateConciliationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ConciliationServiceTestSuite) TestAutoConciliate_RerunDoesNotDuplicateItems() {
	doc := s.document("doc-1", "1500", nil)
	linked := []domain.ConciliationItem{{DocumentID: "doc-1", Status: domain.ItemMatched}}
	s.expectMatchingRun(s.transaction("1500", nil), []domain.Document{*doc}, linked, linked)

	result, err := s.service.AutoConciliate(s.ctx, "conc-1", s.userID)

	s.Require().NoError(err)
	s.Equal(domain.AutoConciliationResult{AlreadyLinked: 1}, *result)
	s.conciliationRepo.AssertNotCalled(s.T(), "SaveItem", mock.Anything, mock.Anything)
}

func (s *ConciliationServiceTestSuite) TestAutoConciliate_CompletedConciliation() {
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationCompleted), nil).Once()

	_, err := s.service.AutoConciliate(s.ctx, "conc-1", s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
}

// --- Item ledger ---

func (s *ConciliationServiceTestSuite) TestAddItem_DefaultsFromDocumentAndStartsConciliation() {
	doc := s.document("doc-1", "800", nil)
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationPending), nil).Once()
	s.documentRepo.On("FindDocumentByID", mock.Anything, "doc-1").Return(doc, nil).Once()
	s.conciliationRepo.On("SaveItem", mock.Anything, mock.AnythingOfType("domain.ConciliationItem")).Return(nil).Once()
	s.conciliationRepo.On("UpdateConciliationStatus", mock.Anything, "conc-1", domain.ConciliationInProgress, mock.Anything, mock.Anything).Return(nil).Once()
	s.conciliationRepo.On("ListItemsByConciliation", mock.Anything, "conc-1").Return([]domain.ConciliationItem{{DocumentID: "doc-1", Status: domain.ItemPending}}, nil).Once()
	s.conciliationRepo.On("UpdateConciliationCounters", mock.Anything, "conc-1", domain.ItemCounters{TotalDocuments: 1, PendingItems: 1}, mock.Anything).Return(nil).Once()

	item, err := s.service.AddItem(s.ctx, "conc-1", dto.AddConciliationItemRequest{DocumentID: "doc-1"}, s.userID)

	s.Require().NoError(err)
	s.True(item.DocumentAmount.Equal(dec("800")))
	s.True(item.ConciliatedAmount.Equal(dec("800")))
	s.True(item.Difference.IsZero())
	s.Equal(domain.ItemPending, item.Status)
	s.Equal(1, s.uow.runs)
	s.conciliationRepo.AssertExpectations(s.T())
}

func (s *ConciliationServiceTestSuite) TestAddItem_LockedDocument() {
	doc := s.document("doc-1", "800", nil)
	doc.Status = domain.DocumentCancelled
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationInProgress), nil).Once()
	s.documentRepo.On("FindDocumentByID", mock.Anything, "doc-1").Return(doc, nil).Once()

	_, err := s.service.AddItem(s.ctx, "conc-1", dto.AddConciliationItemRequest{DocumentID: "doc-1"}, s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.conciliationRepo.AssertNotCalled(s.T(), "SaveItem", mock.Anything, mock.Anything)
}

func (s *ConciliationServiceTestSuite) TestAddItem_DocumentOfAnotherCompany() {
	doc := s.document("doc-1", "800", nil)
	doc.CompanyID = "company-2"
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationInProgress), nil).Once()
	s.documentRepo.On("FindDocumentByID", mock.Anything, "doc-1").Return(doc, nil).Once()

	_, err := s.service.AddItem(s.ctx, "conc-1", dto.AddConciliationItemRequest{DocumentID: "doc-1"}, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ConciliationServiceTestSuite) TestUpdateItem_RecomputesDifferenceAndCounters() {
	item := &domain.ConciliationItem{
		ItemID:            "item-1",
		ConciliationID:    "conc-1",
		DocumentID:        "doc-1",
		DocumentAmount:    dec("800"),
		ConciliatedAmount: dec("800"),
		Status:            domain.ItemPending,
	}
	status := domain.ItemMatched
	s.conciliationRepo.On("FindItemByID", mock.Anything, "item-1").Return(item, nil).Once()
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationInProgress), nil).Once()
	s.conciliationRepo.On("UpdateItem", mock.Anything, mock.MatchedBy(func(updated domain.ConciliationItem) bool {
		return updated.Difference.Equal(dec("500")) && updated.Status == domain.ItemMatched && updated.LastUpdatedAt.Equal(fixedNow)
	})).Return(nil).Once()
	s.conciliationRepo.On("ListItemsByConciliation", mock.Anything, "conc-1").Return([]domain.ConciliationItem{{ItemID: "item-1", Status: domain.ItemMatched}}, nil).Once()
	s.conciliationRepo.On("UpdateConciliationCounters", mock.Anything, "conc-1", domain.ItemCounters{TotalDocuments: 1, ConciliatedItems: 1}, mock.Anything).Return(nil).Once()

	updated, err := s.service.UpdateItem(s.ctx, "item-1", dto.UpdateConciliationItemRequest{
		ConciliatedAmount: decPtr("300"),
		Status:            &status,
	}, s.userID)

	s.Require().NoError(err)
	s.True(updated.ConciliatedAmount.Equal(dec("300")))
	s.conciliationRepo.AssertExpectations(s.T())
}

func (s *ConciliationServiceTestSuite) TestRemoveItem_RecomputesCounters() {
	s.conciliationRepo.On("FindItemByID", mock.Anything, "item-1").Return(&domain.ConciliationItem{ItemID: "item-1", ConciliationID: "conc-1"}, nil).Once()
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationInProgress), nil).Once()
	s.conciliationRepo.On("DeleteItem", mock.Anything, "item-1").Return(nil).Once()
	s.conciliationRepo.On("ListItemsByConciliation", mock.Anything, "conc-1").Return([]domain.ConciliationItem{}, nil).Once()
	s.conciliationRepo.On("UpdateConciliationCounters", mock.Anything, "conc-1", domain.ItemCounters{}, mock.Anything).Return(nil).Once()

	err := s.service.RemoveItem(s.ctx, "item-1", s.userID)

	s.Require().NoError(err)
	s.conciliationRepo.AssertExpectations(s.T())
}

// --- Completion ---

func (s *ConciliationServiceTestSuite) TestCompleteConciliation_SettlesTransactionAndDocuments() {
	items := []domain.ConciliationItem{
		{ItemID: "item-1", ConciliationID: "conc-1", DocumentID: "doc-1", DocumentAmount: dec("1000"), ConciliatedAmount: dec("1000"), Status: domain.ItemMatched},
		{ItemID: "item-2", ConciliationID: "conc-1", DocumentID: "doc-2", DocumentAmount: dec("800"), ConciliatedAmount: dec("500"), Status: domain.ItemPartialMatch},
	}
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationInProgress), nil).Once()
	s.conciliationRepo.On("ListItemsByConciliation", mock.Anything, "conc-1").Return(items, nil).Once()
	s.transactionRepo.On("FindTransactionByID", mock.Anything, "txn-1").Return(s.transaction("1500", nil), nil).Once()
	s.transactionRepo.On("ApplyTransactionSettlement", mock.Anything, mock.MatchedBy(func(st domain.TransactionSettlement) bool {
		return st.TransactionID == "txn-1" &&
			st.ConciliatedAmount.Equal(dec("1500")) &&
			st.PendingAmount.IsZero() &&
			st.Status == domain.TransactionConciliated
	}), mock.Anything).Return(nil).Once()
	s.documentRepo.On("FindDocumentByID", mock.Anything, "doc-1").Return(s.document("doc-1", "1000", nil), nil).Once()
	s.documentRepo.On("FindDocumentByID", mock.Anything, "doc-2").Return(s.document("doc-2", "800", nil), nil).Once()

	var settlements []domain.DocumentSettlement
	s.documentRepo.On("ApplyDocumentSettlement", mock.Anything, mock.AnythingOfType("domain.DocumentSettlement"), mock.Anything).
		Run(func(args mock.Arguments) {
			settlements = append(settlements, args.Get(1).(domain.DocumentSettlement))
		}).Return(nil).Twice()
	s.conciliationRepo.On("UpdateConciliationStatus", mock.Anything, "conc-1", domain.ConciliationCompleted, mock.MatchedBy(func(at *time.Time) bool {
		return at != nil && at.Equal(fixedNow)
	}), mock.Anything).Return(nil).Once()

	completed, err := s.service.CompleteConciliation(s.ctx, "conc-1", s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ConciliationCompleted, completed.Status)
	s.Require().NotNil(completed.CompletedAt)
	s.Equal(2, completed.ConciliatedItems)
	s.Equal(0, completed.PendingItems)

	s.Require().Len(settlements, 2)
	s.Equal(domain.DocumentConciliated, settlements[0].Status)
	s.True(settlements[0].PendingAmount.IsZero())
	s.Equal(domain.DocumentPartiallyConciliated, settlements[1].Status)
	s.True(settlements[1].PendingAmount.Equal(dec("300")))
	for i, total := range []string{"1000", "800"} {
		s.True(settlements[i].PendingAmount.Equal(dec(total).Sub(settlements[i].ConciliatedAmount)))
	}
	s.transactionRepo.AssertExpectations(s.T())
	s.documentRepo.AssertExpectations(s.T())
}

func (s *ConciliationServiceTestSuite) TestCompleteConciliation_PendingItemsBlockSettlement() {
	items := []domain.ConciliationItem{
		{ItemID: "item-1", DocumentID: "doc-1", ConciliatedAmount: dec("1000"), Status: domain.ItemMatched},
		{ItemID: "item-2", DocumentID: "doc-2", ConciliatedAmount: dec("500"), Status: domain.ItemPending},
	}
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationInProgress), nil).Once()
	s.conciliationRepo.On("ListItemsByConciliation", mock.Anything, "conc-1").Return(items, nil).Once()

	_, err := s.service.CompleteConciliation(s.ctx, "conc-1", s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "pending items exist")
	s.transactionRepo.AssertNotCalled(s.T(), "ApplyTransactionSettlement", mock.Anything, mock.Anything, mock.Anything)
	s.documentRepo.AssertNotCalled(s.T(), "ApplyDocumentSettlement", mock.Anything, mock.Anything, mock.Anything)
	s.conciliationRepo.AssertNotCalled(s.T(), "UpdateConciliationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ConciliationServiceTestSuite) TestCompleteConciliation_WithoutItems() {
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationInProgress), nil).Once()
	s.conciliationRepo.On("ListItemsByConciliation", mock.Anything, "conc-1").Return([]domain.ConciliationItem{}, nil).Once()

	_, err := s.service.CompleteConciliation(s.ctx, "conc-1", s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ConciliationServiceTestSuite) TestCompleteConciliation_AlreadyCompleted() {
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationCompleted), nil).Once()

	_, err := s.service.CompleteConciliation(s.ctx, "conc-1", s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ConciliationServiceTestSuite) TestCompleteConciliation_PaidDocumentAborts() {
	items := []domain.ConciliationItem{{ItemID: "item-1", DocumentID: "doc-1", ConciliatedAmount: dec("1500"), Status: domain.ItemMatched}}
	paid := s.document("doc-1", "1500", nil)
	paid.Status = domain.DocumentPaid
	s.conciliationRepo.On("FindConciliationByID", mock.Anything, "conc-1").Return(s.conciliation(domain.ConciliationInProgress), nil).Once()
	s.conciliationRepo.On("ListItemsByConciliation", mock.Anything, "conc-1").Return(items, nil).Once()
	s.transactionRepo.On("FindTransactionByID", mock.Anything, "txn-1").Return(s.transaction("1500", nil), nil).Once()
	s.transactionRepo.On("ApplyTransactionSettlement", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	s.documentRepo.On("FindDocumentByID", mock.Anything, "doc-1").Return(paid, nil).Once()

	_, err := s.service.CompleteConciliation(s.ctx, "conc-1", s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.conciliationRepo.AssertNotCalled(s.T(), "UpdateConciliationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecomputeCounters_InvariantHolds(t *testing.T) {
	items := []domain.ConciliationItem{
		{Status: domain.ItemMatched},
		{Status: domain.ItemPartialMatch},
		{Status: domain.ItemPending},
	}
	counters := domain.RecomputeCounters(items)

	require.Equal(t, 3, counters.TotalDocuments)
	assert.Equal(t, 2, counters.ConciliatedItems)
	assert.Equal(t, counters.TotalDocuments, counters.ConciliatedItems+counters.PendingItems)
}
