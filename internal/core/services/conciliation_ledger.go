package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/utils/accounting"
)

// AddItem links a document to a conciliation and re-derives the counters.
func (s *conciliationService) AddItem(ctx context.Context, conciliationID string, req dto.AddConciliationItemRequest, userID string) (*domain.ConciliationItem, error) {
	var created domain.ConciliationItem

	err := s.uow.RunAtomic(ctx, func(ctx context.Context, repos portsrepo.AtomicRepositories) error {
		conciliation, err := s.openConciliation(ctx, repos.Conciliations, conciliationID)
		if err != nil {
			return err
		}

		doc, err := repos.Documents.FindDocumentByID(ctx, req.DocumentID)
		if err != nil {
			return fmt.Errorf("failed to load document %s: %w", req.DocumentID, err)
		}
		if doc.CompanyID != conciliation.CompanyID {
			return fmt.Errorf("%w: document %s belongs to another company", apperrors.ErrValidation, doc.DocumentID)
		}
		if doc.IsLocked() {
			return fmt.Errorf("%w: document %s is %s", apperrors.ErrConflict, doc.FullNumber, doc.Status)
		}

		documentAmount := doc.OutstandingAmount()
		if req.DocumentAmount != nil {
			documentAmount = *req.DocumentAmount
		}
		conciliatedAmount := documentAmount
		if req.ConciliatedAmount != nil {
			conciliatedAmount = *req.ConciliatedAmount
		}
		if documentAmount.IsNegative() || conciliatedAmount.IsNegative() {
			return fmt.Errorf("%w: item amounts cannot be negative", apperrors.ErrValidation)
		}

		status := req.Status
		if status == "" {
			status = domain.ItemPending
		}

		audit := s.audit(userID)
		created = domain.ConciliationItem{
			ItemID:            uuid.NewString(),
			ConciliationID:    conciliationID,
			DocumentID:        doc.DocumentID,
			DocumentAmount:    documentAmount,
			ConciliatedAmount: conciliatedAmount,
			Difference:        accounting.ItemDifference(documentAmount, conciliatedAmount),
			Status:            status,
			Notes:             req.Notes,
			AuditFields:       audit,
		}
		if err := repos.Conciliations.SaveItem(ctx, created); err != nil {
			return fmt.Errorf("failed to save conciliation item: %w", err)
		}

		if conciliation.Status == domain.ConciliationPending {
			if err := repos.Conciliations.UpdateConciliationStatus(ctx, conciliationID, domain.ConciliationInProgress, nil, audit); err != nil {
				return fmt.Errorf("failed to start conciliation %s: %w", conciliationID, err)
			}
		}

		_, err = s.recompute(ctx, repos.Conciliations, conciliationID, audit)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Conciliation item added",
		slog.String("conciliation_id", conciliationID),
		slog.String("item_id", created.ItemID),
		slog.String("document_id", created.DocumentID))
	return &created, nil
}

// UpdateItem patches an item and re-derives the counters of its conciliation.
func (s *conciliationService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateConciliationItemRequest, userID string) (*domain.ConciliationItem, error) {
	var updated domain.ConciliationItem

	err := s.uow.RunAtomic(ctx, func(ctx context.Context, repos portsrepo.AtomicRepositories) error {
		item, err := repos.Conciliations.FindItemByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to load conciliation item %s: %w", itemID, err)
		}
		if _, err := s.openConciliation(ctx, repos.Conciliations, item.ConciliationID); err != nil {
			return err
		}

		if req.ConciliatedAmount != nil {
			if req.ConciliatedAmount.IsNegative() {
				return fmt.Errorf("%w: conciliated amount cannot be negative", apperrors.ErrValidation)
			}
			item.ConciliatedAmount = *req.ConciliatedAmount
			item.Difference = accounting.ItemDifference(item.DocumentAmount, item.ConciliatedAmount)
		}
		if req.Status != nil {
			item.Status = *req.Status
		}
		if req.Notes != nil {
			item.Notes = *req.Notes
		}

		audit := s.audit(userID)
		item.Touch(audit.LastUpdatedAt, userID)
		if err := repos.Conciliations.UpdateItem(ctx, *item); err != nil {
			return fmt.Errorf("failed to update conciliation item %s: %w", itemID, err)
		}
		updated = *item

		_, err = s.recompute(ctx, repos.Conciliations, item.ConciliationID, audit)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Conciliation item updated", slog.String("item_id", itemID), slog.String("status", string(updated.Status)))
	return &updated, nil
}

// RemoveItem deletes an item and re-derives the counters of its conciliation.
func (s *conciliationService) RemoveItem(ctx context.Context, itemID string, userID string) error {
	err := s.uow.RunAtomic(ctx, func(ctx context.Context, repos portsrepo.AtomicRepositories) error {
		item, err := repos.Conciliations.FindItemByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to load conciliation item %s: %w", itemID, err)
		}
		if _, err := s.openConciliation(ctx, repos.Conciliations, item.ConciliationID); err != nil {
			return err
		}

		if err := repos.Conciliations.DeleteItem(ctx, itemID); err != nil {
			return fmt.Errorf("failed to delete conciliation item %s: %w", itemID, err)
		}

		_, err = s.recompute(ctx, repos.Conciliations, item.ConciliationID, s.audit(userID))
		return err
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Conciliation item removed", slog.String("item_id", itemID))
	return nil
}

// RecomputeCounters re-derives and stores the counters of a conciliation.
func (s *conciliationService) RecomputeCounters(ctx context.Context, conciliationID string, userID string) (domain.ItemCounters, error) {
	if _, err := s.conciliationRepo.FindConciliationByID(ctx, conciliationID); err != nil {
		return domain.ItemCounters{}, fmt.Errorf("failed to get conciliation %s: %w", conciliationID, err)
	}
	return s.recompute(ctx, s.conciliationRepo, conciliationID, s.audit(userID))
}

// recompute reads the complete item set and stores the counters derived from it.
func (s *conciliationService) recompute(ctx context.Context, repo portsrepo.ConciliationRepositoryFacade, conciliationID string, audit domain.AuditFields) (domain.ItemCounters, error) {
	items, err := repo.ListItemsByConciliation(ctx, conciliationID)
	if err != nil {
		return domain.ItemCounters{}, fmt.Errorf("failed to list items for conciliation %s: %w", conciliationID, err)
	}

	counters := domain.RecomputeCounters(items)
	if err := repo.UpdateConciliationCounters(ctx, conciliationID, counters, audit); err != nil {
		return domain.ItemCounters{}, fmt.Errorf("failed to update counters for conciliation %s: %w", conciliationID, err)
	}

	s.LogDebug(ctx, "Conciliation counters recomputed",
		slog.String("conciliation_id", conciliationID),
		slog.Int("total", counters.TotalDocuments),
		slog.Int("conciliated", counters.ConciliatedItems),
		slog.Int("pending", counters.PendingItems))
	return counters, nil
}

// openConciliation loads a conciliation that still accepts item changes.
func (s *conciliationService) openConciliation(ctx context.Context, repo portsrepo.ConciliationReader, conciliationID string) (*domain.Conciliation, error) {
	conciliation, err := repo.FindConciliationByID(ctx, conciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conciliation %s: %w", conciliationID, err)
	}
	if conciliation.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: conciliation %s is %s", apperrors.ErrConflict, conciliationID, conciliation.Status)
	}
	return conciliation, nil
}
