package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
)

// conciliationService implements the conciliation lifecycle, its item ledger,
// the automatic matching engine and the completion workflow.
type conciliationService struct {
	BaseService
	conciliationRepo portsrepo.ConciliationRepositoryFacade
	transactionRepo  portsrepo.TransactionReader
	documentRepo     portsrepo.DocumentReader
	uow              portsrepo.UnitOfWork
	opts             serviceOptions
}

// NewConciliationService creates a new conciliation service.
func NewConciliationService(
	conciliationRepo portsrepo.ConciliationRepositoryFacade,
	transactionRepo portsrepo.TransactionReader,
	documentRepo portsrepo.DocumentReader,
	uow portsrepo.UnitOfWork,
	options ...ServiceOption,
) portssvc.ConciliationSvcFacade {
	opts := applyOptions(options)
	return &conciliationService{
		BaseService:      BaseService{now: opts.now},
		conciliationRepo: conciliationRepo,
		transactionRepo:  transactionRepo,
		documentRepo:     documentRepo,
		uow:              uow,
		opts:             opts,
	}
}

var _ portssvc.ConciliationSvcFacade = (*conciliationService)(nil)

// CreateConciliation opens a conciliation bound to exactly one transaction.
func (s *conciliationService) CreateConciliation(ctx context.Context, req dto.CreateConciliationRequest, userID string) (*domain.Conciliation, error) {
	tolerance := s.opts.defaultTolerance
	if req.ToleranceAmount != nil {
		tolerance = *req.ToleranceAmount
	}
	if tolerance.IsNegative() {
		return nil, fmt.Errorf("%w: tolerance amount cannot be negative", apperrors.ErrValidation)
	}
	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end is before period start", apperrors.ErrValidation)
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, req.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s: %w", req.TransactionID, err)
	}
	if txn.CompanyID != req.CompanyID || txn.BankAccountID != req.BankAccountID {
		return nil, fmt.Errorf("%w: transaction %s does not belong to the given company and bank account", apperrors.ErrValidation, txn.TransactionID)
	}
	if txn.IsConciliated() {
		return nil, fmt.Errorf("%w: transaction %s is already conciliated", apperrors.ErrConflict, txn.TransactionID)
	}

	conciliationType := req.Type
	if conciliationType == "" {
		conciliationType = domain.ConciliationDocuments
	}

	conciliation := domain.Conciliation{
		ConciliationID:  uuid.NewString(),
		CompanyID:       req.CompanyID,
		BankAccountID:   req.BankAccountID,
		TransactionID:   req.TransactionID,
		Type:            conciliationType,
		PeriodStart:     req.PeriodStart,
		PeriodEnd:       req.PeriodEnd,
		BankBalance:     req.BankBalance,
		BookBalance:     req.BookBalance,
		Difference:      req.BankBalance.Sub(req.BookBalance),
		ToleranceAmount: tolerance,
		Status:          domain.ConciliationPending,
		Notes:           req.Notes,
		AuditFields:     s.audit(userID),
	}

	if err := s.conciliationRepo.SaveConciliation(ctx, conciliation); err != nil {
		s.LogError(ctx, err, "Failed to save conciliation", slog.String("transaction_id", req.TransactionID))
		return nil, fmt.Errorf("failed to create conciliation: %w", err)
	}

	s.LogInfo(ctx, "Conciliation created",
		slog.String("conciliation_id", conciliation.ConciliationID),
		slog.String("transaction_id", conciliation.TransactionID))
	return &conciliation, nil
}

// GetConciliationByID returns the conciliation with its items.
func (s *conciliationService) GetConciliationByID(ctx context.Context, conciliationID string) (*domain.Conciliation, error) {
	conciliation, err := s.conciliationRepo.FindConciliationByID(ctx, conciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conciliation %s: %w", conciliationID, err)
	}

	items, err := s.conciliationRepo.ListItemsByConciliation(ctx, conciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for conciliation %s: %w", conciliationID, err)
	}
	conciliation.Items = items
	return conciliation, nil
}

// ListConciliations returns a page of conciliations for a company.
func (s *conciliationService) ListConciliations(ctx context.Context, params dto.ListConciliationsParams) (*dto.ListConciliationsResponse, error) {
	conciliations, nextToken, err := s.conciliationRepo.ListConciliations(ctx, params.CompanyID, params.Status, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list conciliations: %w", err)
	}
	return &dto.ListConciliationsResponse{
		Conciliations: dto.ToConciliationResponses(conciliations),
		NextToken:     nextToken,
	}, nil
}

// CancelConciliation moves an open conciliation to CANCELLED. Completed and
// cancelled conciliations are terminal.
func (s *conciliationService) CancelConciliation(ctx context.Context, conciliationID string, userID string) (*domain.Conciliation, error) {
	conciliation, err := s.conciliationRepo.FindConciliationByID(ctx, conciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conciliation %s: %w", conciliationID, err)
	}
	if conciliation.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: conciliation %s is already %s", apperrors.ErrConflict, conciliationID, conciliation.Status)
	}

	audit := s.audit(userID)
	if err := s.conciliationRepo.UpdateConciliationStatus(ctx, conciliationID, domain.ConciliationCancelled, nil, audit); err != nil {
		return nil, fmt.Errorf("failed to cancel conciliation %s: %w", conciliationID, err)
	}

	conciliation.Status = domain.ConciliationCancelled
	conciliation.Touch(audit.LastUpdatedAt, userID)
	s.LogInfo(ctx, "Conciliation cancelled", slog.String("conciliation_id", conciliationID))
	return conciliation, nil
}

// DeleteConciliation removes a conciliation and its items. Completed conciliations
// and conciliations touching paid or cancelled documents are kept.
func (s *conciliationService) DeleteConciliation(ctx context.Context, conciliationID string) error {
	conciliation, err := s.conciliationRepo.FindConciliationByID(ctx, conciliationID)
	if err != nil {
		return fmt.Errorf("failed to get conciliation %s: %w", conciliationID, err)
	}
	if conciliation.Status == domain.ConciliationCompleted {
		return fmt.Errorf("%w: completed conciliations cannot be deleted", apperrors.ErrConflict)
	}

	items, err := s.conciliationRepo.ListItemsByConciliation(ctx, conciliationID)
	if err != nil {
		return fmt.Errorf("failed to list items for conciliation %s: %w", conciliationID, err)
	}
	if len(items) > 0 {
		documentIDs := make([]string, len(items))
		for i, item := range items {
			documentIDs[i] = item.DocumentID
		}
		documents, err := s.documentRepo.FindDocumentsByIDs(ctx, documentIDs)
		if err != nil {
			return fmt.Errorf("failed to load documents of conciliation %s: %w", conciliationID, err)
		}
		for _, doc := range documents {
			if doc.IsLocked() {
				return fmt.Errorf("%w: document %s is %s", apperrors.ErrConflict, doc.FullNumber, doc.Status)
			}
		}
	}

	if err := s.conciliationRepo.DeleteConciliation(ctx, conciliationID); err != nil {
		return fmt.Errorf("failed to delete conciliation %s: %w", conciliationID, err)
	}
	s.LogInfo(ctx, "Conciliation deleted", slog.String("conciliation_id", conciliationID), slog.Int("items", len(items)))
	return nil
}
