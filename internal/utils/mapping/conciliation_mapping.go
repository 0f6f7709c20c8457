package mapping

import (
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/models"
)

// ToModelConciliation converts a domain Conciliation to a model Conciliation
func ToModelConciliation(d domain.Conciliation) models.Conciliation {
	return models.Conciliation{
		ConciliationID:   d.ConciliationID,
		CompanyID:        d.CompanyID,
		BankAccountID:    d.BankAccountID,
		TransactionID:    d.TransactionID,
		ConciliationType: string(d.Type),
		PeriodStart:      d.PeriodStart,
		PeriodEnd:        d.PeriodEnd,
		BankBalance:      d.BankBalance,
		BookBalance:      d.BookBalance,
		Difference:       d.Difference,
		ToleranceAmount:  d.ToleranceAmount,
		TotalDocuments:   d.TotalDocuments,
		ConciliatedItems: d.ConciliatedItems,
		PendingItems:     d.PendingItems,
		Status:           string(d.Status),
		Notes:            nullableString(d.Notes),
		CompletedAt:      d.CompletedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainConciliation converts a model Conciliation to a domain Conciliation
func ToDomainConciliation(m models.Conciliation) domain.Conciliation {
	return domain.Conciliation{
		ConciliationID:   m.ConciliationID,
		CompanyID:        m.CompanyID,
		BankAccountID:    m.BankAccountID,
		TransactionID:    m.TransactionID,
		Type:             domain.ConciliationType(m.ConciliationType),
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		BankBalance:      m.BankBalance,
		BookBalance:      m.BookBalance,
		Difference:       m.Difference,
		ToleranceAmount:  m.ToleranceAmount,
		TotalDocuments:   m.TotalDocuments,
		ConciliatedItems: m.ConciliatedItems,
		PendingItems:     m.PendingItems,
		Status:           domain.ConciliationStatus(m.Status),
		Notes:            stringValue(m.Notes),
		CompletedAt:      m.CompletedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainConciliationSlice converts a slice of model Conciliations to a slice of domain Conciliations
func ToDomainConciliationSlice(ms []models.Conciliation) []domain.Conciliation {
	ds := make([]domain.Conciliation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainConciliation(m)
	}
	return ds
}

// ToModelConciliationItem converts a domain ConciliationItem to a model ConciliationItem
func ToModelConciliationItem(d domain.ConciliationItem) models.ConciliationItem {
	return models.ConciliationItem{
		ItemID:            d.ItemID,
		ConciliationID:    d.ConciliationID,
		DocumentID:        d.DocumentID,
		DocumentAmount:    d.DocumentAmount,
		ConciliatedAmount: d.ConciliatedAmount,
		Difference:        d.Difference,
		Status:            string(d.Status),
		SystemNotes:       nullableString(d.SystemNotes),
		Notes:             nullableString(d.Notes),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainConciliationItem converts a model ConciliationItem to a domain ConciliationItem
func ToDomainConciliationItem(m models.ConciliationItem) domain.ConciliationItem {
	return domain.ConciliationItem{
		ItemID:            m.ItemID,
		ConciliationID:    m.ConciliationID,
		DocumentID:        m.DocumentID,
		DocumentAmount:    m.DocumentAmount,
		ConciliatedAmount: m.ConciliatedAmount,
		Difference:        m.Difference,
		Status:            domain.ItemStatus(m.Status),
		SystemNotes:       stringValue(m.SystemNotes),
		Notes:             stringValue(m.Notes),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainConciliationItemSlice converts a slice of model items to a slice of domain items
func ToDomainConciliationItemSlice(ms []models.ConciliationItem) []domain.ConciliationItem {
	ds := make([]domain.ConciliationItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainConciliationItem(m)
	}
	return ds
}
