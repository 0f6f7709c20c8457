package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/accounting_backoffice/internal/utils/accounting"
)

// AutoConciliate pairs the conciliation's transaction with candidate documents.
// Documents that already have an item in this conciliation are skipped, so running
// it again never duplicates items.
func (s *conciliationService) AutoConciliate(ctx context.Context, conciliationID string, userID string) (*domain.AutoConciliationResult, error) {
	var result domain.AutoConciliationResult

	err := s.uow.RunAtomic(ctx, func(ctx context.Context, repos portsrepo.AtomicRepositories) error {
		conciliation, err := s.openConciliation(ctx, repos.Conciliations, conciliationID)
		if err != nil {
			return err
		}

		txn, err := repos.Transactions.FindTransactionByID(ctx, conciliation.TransactionID)
		if err != nil {
			return fmt.Errorf("failed to load transaction %s: %w", conciliation.TransactionID, err)
		}

		candidates, err := repos.Documents.ListCandidateDocuments(ctx, portsrepo.CandidateDocumentQuery{
			CompanyID:   conciliation.CompanyID,
			IssuedFrom:  conciliation.PeriodStart,
			IssuedUntil: conciliation.PeriodEnd,
		})
		if err != nil {
			return fmt.Errorf("failed to list candidate documents: %w", err)
		}

		existing, err := repos.Conciliations.ListItemsByConciliation(ctx, conciliationID)
		if err != nil {
			return fmt.Errorf("failed to list items for conciliation %s: %w", conciliationID, err)
		}
		linked := make(map[string]bool, len(existing))
		for _, item := range existing {
			linked[item.DocumentID] = true
		}

		proposals, outcome := accounting.MatchDocuments(*txn, candidates, linked, conciliation.ToleranceAmount)
		result = outcome

		audit := s.audit(userID)
		for _, proposal := range proposals {
			item := domain.ConciliationItem{
				ItemID:            uuid.NewString(),
				ConciliationID:    conciliationID,
				DocumentID:        proposal.DocumentID,
				DocumentAmount:    proposal.DocumentAmount,
				ConciliatedAmount: proposal.ConciliatedAmount,
				Difference:        proposal.Difference,
				Status:            proposal.Status,
				SystemNotes:       proposal.SystemNotes,
				AuditFields:       audit,
			}
			if err := repos.Conciliations.SaveItem(ctx, item); err != nil {
				return fmt.Errorf("failed to save item for document %s: %w", proposal.DocumentID, err)
			}
		}

		if _, err := s.recompute(ctx, repos.Conciliations, conciliationID, audit); err != nil {
			return err
		}

		if outcome.AnyMatch() && conciliation.Status == domain.ConciliationPending {
			if err := repos.Conciliations.UpdateConciliationStatus(ctx, conciliationID, domain.ConciliationInProgress, nil, audit); err != nil {
				return fmt.Errorf("failed to start conciliation %s: %w", conciliationID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Automatic conciliation finished",
		slog.String("conciliation_id", conciliationID),
		slog.Int("matched", result.Matched),
		slog.Int("partial_matches", result.PartialMatches),
		slog.Int("unmatched", result.Unmatched),
		slog.Int("already_linked", result.AlreadyLinked))
	return &result, nil
}
