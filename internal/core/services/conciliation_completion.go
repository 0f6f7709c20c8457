package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/accounting_backoffice/internal/utils/accounting"
)

// CompleteConciliation settles the transaction and every linked document, then marks the
// conciliation COMPLETED. Either everything is written or nothing is.
func (s *conciliationService) CompleteConciliation(ctx context.Context, conciliationID string, userID string) (*domain.Conciliation, error) {
	var completed *domain.Conciliation

	err := s.uow.RunAtomic(ctx, func(ctx context.Context, repos portsrepo.AtomicRepositories) error {
		conciliation, err := s.openConciliation(ctx, repos.Conciliations, conciliationID)
		if err != nil {
			return err
		}

		items, err := repos.Conciliations.ListItemsByConciliation(ctx, conciliationID)
		if err != nil {
			return fmt.Errorf("failed to list items for conciliation %s: %w", conciliationID, err)
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: conciliation has no items", apperrors.ErrValidation)
		}
		counters := domain.RecomputeCounters(items)
		if counters.PendingItems > 0 {
			return fmt.Errorf("%w: pending items exist (%d of %d)", apperrors.ErrValidation, counters.PendingItems, counters.TotalDocuments)
		}

		txn, err := repos.Transactions.FindTransactionByID(ctx, conciliation.TransactionID)
		if err != nil {
			return fmt.Errorf("failed to load transaction %s: %w", conciliation.TransactionID, err)
		}

		audit := s.audit(userID)
		txnSettlement := accounting.SettleTransaction(*txn, items)
		if err := repos.Transactions.ApplyTransactionSettlement(ctx, txnSettlement, audit); err != nil {
			return fmt.Errorf("failed to settle transaction %s: %w", txn.TransactionID, err)
		}

		for _, item := range items {
			doc, err := repos.Documents.FindDocumentByID(ctx, item.DocumentID)
			if err != nil {
				return fmt.Errorf("failed to load document %s: %w", item.DocumentID, err)
			}
			if doc.IsLocked() {
				return fmt.Errorf("%w: document %s is %s", apperrors.ErrConflict, doc.FullNumber, doc.Status)
			}
			if err := repos.Documents.ApplyDocumentSettlement(ctx, accounting.SettleDocument(*doc, item.ConciliatedAmount), audit); err != nil {
				return fmt.Errorf("failed to settle document %s: %w", doc.DocumentID, err)
			}
		}

		completedAt := audit.LastUpdatedAt
		if err := repos.Conciliations.UpdateConciliationStatus(ctx, conciliationID, domain.ConciliationCompleted, &completedAt, audit); err != nil {
			return fmt.Errorf("failed to complete conciliation %s: %w", conciliationID, err)
		}

		conciliation.Status = domain.ConciliationCompleted
		conciliation.CompletedAt = &completedAt
		conciliation.ApplyCounters(counters)
		conciliation.Touch(completedAt, userID)
		conciliation.Items = items
		completed = conciliation
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Conciliation completion failed", slog.String("conciliation_id", conciliationID))
		return nil, err
	}

	s.LogInfo(ctx, "Conciliation completed",
		slog.String("conciliation_id", conciliationID),
		slog.Int("items", len(completed.Items)))
	return completed, nil
}
