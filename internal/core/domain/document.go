package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies the kind of fiscal document.
type DocumentType string

const (
	Invoice        DocumentType = "INVOICE"
	ReceiptForFees DocumentType = "RECEIPT_FOR_FEES" // Recibo por honorarios (RH)
	CreditNote     DocumentType = "CREDIT_NOTE"
	DebitNote      DocumentType = "DEBIT_NOTE"
)

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus string

const (
	DocumentPending              DocumentStatus = "PENDING"
	DocumentValidated            DocumentStatus = "VALIDATED"
	DocumentPartiallyConciliated DocumentStatus = "PARTIALLY_CONCILIATED"
	DocumentConciliated          DocumentStatus = "CONCILIATED"
	DocumentPaid                 DocumentStatus = "PAID"
	DocumentCancelled            DocumentStatus = "CANCELLED"
)

// Document represents an invoice or receipt owed to or from a supplier.
type Document struct {
	DocumentID        string           `json:"documentID"`
	CompanyID         string           `json:"companyID"`
	SupplierID        *string          `json:"supplierID,omitempty"`
	DocumentType      DocumentType     `json:"documentType"`
	Series            string           `json:"series"`
	Number            string           `json:"number"`
	FullNumber        string           `json:"fullNumber"` // Unique per company
	IssueDate         time.Time        `json:"issueDate"`
	DueDate           *time.Time       `json:"dueDate,omitempty"`
	CurrencyCode      string           `json:"currencyCode"`
	Description       string           `json:"description"`
	Total             decimal.Decimal  `json:"total"`
	RetentionAmount   decimal.Decimal  `json:"retentionAmount"`
	NetPayableAmount  decimal.Decimal  `json:"netPayableAmount"`
	ConciliatedAmount decimal.Decimal  `json:"conciliatedAmount"`
	PendingAmount     *decimal.Decimal `json:"pendingAmount,omitempty"` // Nil for legacy rows that were never initialised
	Status            DocumentStatus   `json:"status"`
	AuditFields

	// Supplier is populated by read paths that join the supplier table.
	Supplier *Supplier `json:"supplier,omitempty"`
}

// IsLocked reports whether the document can no longer take part in conciliation changes.
func (d Document) IsLocked() bool {
	return d.Status == DocumentPaid || d.Status == DocumentCancelled
}

// OutstandingAmount is the amount still open for matching: the pending amount when known,
// otherwise the document total.
func (d Document) OutstandingAmount() decimal.Decimal {
	if d.PendingAmount != nil {
		return *d.PendingAmount
	}
	return d.Total
}

// ComposeFullNumber joins series and number the way documents are keyed (F001-123).
func ComposeFullNumber(series, number string) string {
	if series == "" {
		return number
	}
	return series + "-" + number
}

// IsMatchCandidate reports whether the automatic matching engine may consider the document:
// it must be PENDING or VALIDATED and still have an open amount.
func (d Document) IsMatchCandidate() bool {
	if d.Status != DocumentPending && d.Status != DocumentValidated {
		return false
	}
	return d.OutstandingAmount().IsPositive()
}
