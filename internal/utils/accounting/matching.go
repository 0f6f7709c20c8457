package accounting

import (
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	NoteMatchedByAmount   = "Automatically matched by amount"
	NoteMatchedBySupplier = "Matched by supplier but different amount"
)

// MatchProposal is an item the matching engine wants to create for one document.
type MatchProposal struct {
	DocumentID        string
	DocumentAmount    decimal.Decimal
	ConciliatedAmount decimal.Decimal
	Difference        decimal.Decimal
	Status            domain.ItemStatus
	SystemNotes       string
}

// MatchDocuments classifies every candidate against the transaction, first-fit per document:
// an amount within tolerance is MATCHED, otherwise a shared supplier is PARTIAL_MATCH,
// otherwise the document stays unmatched. Documents listed in linked already have an item
// and are only counted. Candidates that are not open for matching are ignored.
func MatchDocuments(txn domain.Transaction, candidates []domain.Document, linked map[string]bool, tolerance decimal.Decimal) ([]MatchProposal, domain.AutoConciliationResult) {
	tolerance = EffectiveTolerance(tolerance)
	txnAmount := txn.AbsAmount()

	var result domain.AutoConciliationResult
	proposals := make([]MatchProposal, 0, len(candidates))

	for _, doc := range candidates {
		if !doc.IsMatchCandidate() {
			continue
		}
		if linked[doc.DocumentID] {
			result.AlreadyLinked++
			continue
		}

		docAmount := doc.OutstandingAmount()
		proposal := MatchProposal{
			DocumentID:        doc.DocumentID,
			DocumentAmount:    docAmount,
			ConciliatedAmount: decimal.Min(txnAmount, docAmount),
			Difference:        docAmount.Sub(txnAmount).Abs(),
		}

		switch {
		case WithinTolerance(docAmount, txnAmount, tolerance):
			proposal.Status = domain.ItemMatched
			proposal.SystemNotes = NoteMatchedByAmount
			result.Matched++
		case sameSupplier(doc.SupplierID, txn.SupplierID):
			proposal.Status = domain.ItemPartialMatch
			proposal.SystemNotes = NoteMatchedBySupplier
			result.PartialMatches++
		default:
			result.Unmatched++
			continue
		}

		linked[doc.DocumentID] = true
		proposals = append(proposals, proposal)
	}

	return proposals, result
}

func sameSupplier(a, b *string) bool {
	return a != nil && b != nil && *a != "" && *a == *b
}
