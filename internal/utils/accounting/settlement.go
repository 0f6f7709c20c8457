package accounting

import (
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementThreshold is the pending amount at or below which a document counts as fully conciliated.
var SettlementThreshold = decimal.New(1, -2) // 0.01

// SettleDocument applies a conciliated amount to a document's running balances.
// The new pending amount is max(0, total - conciliated).
func SettleDocument(doc domain.Document, amount decimal.Decimal) domain.DocumentSettlement {
	conciliated := doc.ConciliatedAmount.Add(amount)
	pending := decimal.Max(decimal.Zero, doc.Total.Sub(conciliated))

	status := domain.DocumentPartiallyConciliated
	if pending.LessThanOrEqual(SettlementThreshold) {
		status = domain.DocumentConciliated
	}

	return domain.DocumentSettlement{
		DocumentID:        doc.DocumentID,
		ConciliatedAmount: conciliated,
		PendingAmount:     pending,
		Status:            status,
	}
}

// SettleTransaction marks a transaction as fully conciliated by the sum of its item amounts.
func SettleTransaction(txn domain.Transaction, items []domain.ConciliationItem) domain.TransactionSettlement {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.ConciliatedAmount)
	}
	return domain.TransactionSettlement{
		TransactionID:     txn.TransactionID,
		ConciliatedAmount: total,
		PendingAmount:     decimal.Zero,
		Status:            domain.TransactionConciliated,
	}
}

// NetPayable computes total - retention.
func NetPayable(total, retention decimal.Decimal) decimal.Decimal {
	return total.Sub(retention)
}

// ItemDifference is the unsigned gap between the document amount and what was conciliated.
func ItemDifference(documentAmount, conciliatedAmount decimal.Decimal) decimal.Decimal {
	return documentAmount.Sub(conciliatedAmount).Abs()
}
