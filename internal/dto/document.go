package dto

import (
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest registers an invoice or receipt.
type CreateDocumentRequest struct {
	CompanyID       string              `json:"companyID" binding:"required"`
	SupplierID      *string             `json:"supplierID"`
	DocumentType    domain.DocumentType `json:"documentType" binding:"required,doctype"`
	Series          string              `json:"series" binding:"max=8"`
	Number          string              `json:"number" binding:"required,max=20"`
	IssueDate       time.Time           `json:"issueDate" binding:"required"`
	DueDate         *time.Time          `json:"dueDate"`
	CurrencyCode    string              `json:"currencyCode" binding:"required,len=3,uppercase"`
	Description     string              `json:"description"`
	Total           decimal.Decimal     `json:"total"`
	RetentionAmount decimal.Decimal     `json:"retentionAmount"`
	Validated       bool                `json:"validated"` // Registers the document as VALIDATED instead of PENDING
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID        string                `json:"documentID"`
	CompanyID         string                `json:"companyID"`
	SupplierID        *string               `json:"supplierID,omitempty"`
	DocumentType      domain.DocumentType   `json:"documentType"`
	FullNumber        string                `json:"fullNumber"`
	IssueDate         time.Time             `json:"issueDate"`
	DueDate           *time.Time            `json:"dueDate,omitempty"`
	CurrencyCode      string                `json:"currencyCode"`
	Description       string                `json:"description"`
	Total             decimal.Decimal       `json:"total"`
	RetentionAmount   decimal.Decimal       `json:"retentionAmount"`
	NetPayableAmount  decimal.Decimal       `json:"netPayableAmount"`
	ConciliatedAmount decimal.Decimal       `json:"conciliatedAmount"`
	PendingAmount     decimal.Decimal       `json:"pendingAmount"`
	Status            domain.DocumentStatus `json:"status"`
	SupplierRUC       string                `json:"supplierRUC,omitempty"`
	SupplierName      string                `json:"supplierName,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
}

// ListDocumentsParams defines query parameters for listing documents.
type ListDocumentsParams struct {
	CompanyID string                 `form:"companyId" binding:"required"`
	Status    *domain.DocumentStatus `form:"status" binding:"omitempty,oneof=PENDING VALIDATED PARTIALLY_CONCILIATED CONCILIATED PAID CANCELLED"`
	PageParams
}

// ListDocumentsResponse wraps a page of documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO.
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	res := DocumentResponse{
		DocumentID:        doc.DocumentID,
		CompanyID:         doc.CompanyID,
		SupplierID:        doc.SupplierID,
		DocumentType:      doc.DocumentType,
		FullNumber:        doc.FullNumber,
		IssueDate:         doc.IssueDate,
		DueDate:           doc.DueDate,
		CurrencyCode:      doc.CurrencyCode,
		Description:       doc.Description,
		Total:             doc.Total,
		RetentionAmount:   doc.RetentionAmount,
		NetPayableAmount:  doc.NetPayableAmount,
		ConciliatedAmount: doc.ConciliatedAmount,
		PendingAmount:     doc.OutstandingAmount(),
		Status:            doc.Status,
		CreatedAt:         doc.CreatedAt,
	}
	if doc.Supplier != nil {
		res.SupplierRUC = doc.Supplier.RUC
		res.SupplierName = doc.Supplier.BusinessName
	}
	return res
}

// ToDocumentResponses converts a slice of domain.Document to []DocumentResponse.
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}
