package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	m := models.Document{
		DocumentID:        d.DocumentID,
		CompanyID:         d.CompanyID,
		SupplierID:        d.SupplierID,
		DocumentType:      string(d.DocumentType),
		Series:            d.Series,
		Number:            d.Number,
		FullNumber:        d.FullNumber,
		IssueDate:         d.IssueDate,
		DueDate:           d.DueDate,
		CurrencyCode:      d.CurrencyCode,
		Description:       nullableString(d.Description),
		Total:             d.Total,
		RetentionAmount:   d.RetentionAmount,
		NetPayableAmount:  d.NetPayableAmount,
		ConciliatedAmount: d.ConciliatedAmount,
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.PendingAmount != nil {
		m.PendingAmount = decimal.NewNullDecimal(*d.PendingAmount)
	}
	return m
}

// ToDomainDocument converts a model Document to a domain Document, attaching the joined supplier when present.
func ToDomainDocument(m models.Document) domain.Document {
	d := domain.Document{
		DocumentID:        m.DocumentID,
		CompanyID:         m.CompanyID,
		SupplierID:        m.SupplierID,
		DocumentType:      domain.DocumentType(m.DocumentType),
		Series:            m.Series,
		Number:            m.Number,
		FullNumber:        m.FullNumber,
		IssueDate:         m.IssueDate,
		DueDate:           m.DueDate,
		CurrencyCode:      m.CurrencyCode,
		Description:       stringValue(m.Description),
		Total:             m.Total,
		RetentionAmount:   m.RetentionAmount,
		NetPayableAmount:  m.NetPayableAmount,
		ConciliatedAmount: m.ConciliatedAmount,
		Status:            domain.DocumentStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.PendingAmount.Valid {
		pending := m.PendingAmount.Decimal
		d.PendingAmount = &pending
	}
	if m.SupplierID != nil && m.SupplierRUC != nil {
		d.Supplier = &domain.Supplier{
			SupplierID:   *m.SupplierID,
			CompanyID:    m.CompanyID,
			RUC:          *m.SupplierRUC,
			BusinessName: stringValue(m.SupplierName),
		}
	}
	return d
}

// ToDomainDocumentSlice converts a slice of model Documents to a slice of domain Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}

// ToDomainSupplier converts a model Supplier to a domain Supplier
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:   m.SupplierID,
		CompanyID:    m.CompanyID,
		RUC:          m.RUC,
		BusinessName: m.BusinessName,
	}
}
