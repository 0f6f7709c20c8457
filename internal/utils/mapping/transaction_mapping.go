package mapping

import (
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		CompanyID:         d.CompanyID,
		BankAccountID:     d.BankAccountID,
		Date:              d.Date,
		Description:       d.Description,
		OperationNumber:   nullableString(d.OperationNumber),
		Amount:            d.Amount,
		TransactionType:   string(d.TransactionType),
		CurrencyCode:      d.CurrencyCode,
		Hash:              d.Hash,
		ConciliatedAmount: d.ConciliatedAmount,
		PendingAmount:     d.PendingAmount,
		Status:            string(d.Status),
		SupplierID:        d.SupplierID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		CompanyID:         m.CompanyID,
		BankAccountID:     m.BankAccountID,
		Date:              m.Date,
		Description:       m.Description,
		OperationNumber:   stringValue(m.OperationNumber),
		Amount:            m.Amount,
		TransactionType:   domain.TransactionType(m.TransactionType),
		CurrencyCode:      m.CurrencyCode,
		Hash:              m.Hash,
		ConciliatedAmount: m.ConciliatedAmount,
		PendingAmount:     m.PendingAmount,
		Status:            domain.TransactionStatus(m.Status),
		SupplierID:        m.SupplierID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
