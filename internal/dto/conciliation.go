package dto

import (
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateConciliationRequest opens a conciliation for one bank transaction.
type CreateConciliationRequest struct {
	CompanyID       string                  `json:"companyID" binding:"required"`
	BankAccountID   string                  `json:"bankAccountID" binding:"required"`
	TransactionID   string                  `json:"transactionID" binding:"required"`
	Type            domain.ConciliationType `json:"type" binding:"omitempty,oneof=DOCUMENTS DETRACTIONS"`
	PeriodStart     time.Time               `json:"periodStart" binding:"required"`
	PeriodEnd       time.Time               `json:"periodEnd" binding:"required"`
	BankBalance     decimal.Decimal         `json:"bankBalance"`
	BookBalance     decimal.Decimal         `json:"bookBalance"`
	ToleranceAmount *decimal.Decimal        `json:"toleranceAmount"` // Defaults to the configured tolerance
	Notes           string                  `json:"notes"`
}

// ListConciliationsParams defines query parameters for listing conciliations.
type ListConciliationsParams struct {
	CompanyID string                     `form:"companyId" binding:"required"`
	Status    *domain.ConciliationStatus `form:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	PageParams
}

// AddConciliationItemRequest links a document to a conciliation by hand.
type AddConciliationItemRequest struct {
	DocumentID        string            `json:"documentID" binding:"required"`
	DocumentAmount    *decimal.Decimal  `json:"documentAmount"`    // Defaults to the document's open amount
	ConciliatedAmount *decimal.Decimal  `json:"conciliatedAmount"` // Defaults to the document amount
	Status            domain.ItemStatus `json:"status" binding:"omitempty,oneof=PENDING MATCHED PARTIAL_MATCH"`
	Notes             string            `json:"notes"`
}

// UpdateConciliationItemRequest patches an item; nil fields are left untouched.
type UpdateConciliationItemRequest struct {
	ConciliatedAmount *decimal.Decimal   `json:"conciliatedAmount"`
	Status            *domain.ItemStatus `json:"status" binding:"omitempty,oneof=PENDING MATCHED PARTIAL_MATCH"`
	Notes             *string            `json:"notes"`
}

// ConciliationItemResponse defines the data returned for a conciliation item.
type ConciliationItemResponse struct {
	ItemID            string            `json:"itemID"`
	DocumentID        string            `json:"documentID"`
	DocumentAmount    decimal.Decimal   `json:"documentAmount"`
	ConciliatedAmount decimal.Decimal   `json:"conciliatedAmount"`
	Difference        decimal.Decimal   `json:"difference"`
	Status            domain.ItemStatus `json:"status"`
	SystemNotes       string            `json:"systemNotes,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// ConciliationResponse defines the data returned for a conciliation.
type ConciliationResponse struct {
	ConciliationID   string                     `json:"conciliationID"`
	CompanyID        string                     `json:"companyID"`
	BankAccountID    string                     `json:"bankAccountID"`
	TransactionID    string                     `json:"transactionID"`
	Type             domain.ConciliationType    `json:"type"`
	PeriodStart      time.Time                  `json:"periodStart"`
	PeriodEnd        time.Time                  `json:"periodEnd"`
	BankBalance      decimal.Decimal            `json:"bankBalance"`
	BookBalance      decimal.Decimal            `json:"bookBalance"`
	Difference       decimal.Decimal            `json:"difference"`
	ToleranceAmount  decimal.Decimal            `json:"toleranceAmount"`
	TotalDocuments   int                        `json:"totalDocuments"`
	ConciliatedItems int                        `json:"conciliatedItems"`
	PendingItems     int                        `json:"pendingItems"`
	Status           domain.ConciliationStatus  `json:"status"`
	Notes            string                     `json:"notes,omitempty"`
	CompletedAt      *time.Time                 `json:"completedAt,omitempty"`
	CreatedAt        time.Time                  `json:"createdAt"`
	Items            []ConciliationItemResponse `json:"items,omitempty"`
}

// ListConciliationsResponse wraps a page of conciliations.
type ListConciliationsResponse struct {
	Conciliations []ConciliationResponse `json:"conciliations"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// AutoConciliationResponse reports the outcome of an automatic matching run.
type AutoConciliationResponse struct {
	ConciliationID string                    `json:"conciliationID"`
	Status         domain.ConciliationStatus `json:"status"`
	domain.AutoConciliationResult
}

// ToConciliationItemResponse converts a domain.ConciliationItem to its DTO.
func ToConciliationItemResponse(item *domain.ConciliationItem) ConciliationItemResponse {
	return ConciliationItemResponse{
		ItemID:            item.ItemID,
		DocumentID:        item.DocumentID,
		DocumentAmount:    item.DocumentAmount,
		ConciliatedAmount: item.ConciliatedAmount,
		Difference:        item.Difference,
		Status:            item.Status,
		SystemNotes:       item.SystemNotes,
		Notes:             item.Notes,
		CreatedAt:         item.CreatedAt,
	}
}

// ToConciliationResponse converts a domain.Conciliation (and any loaded items) to its DTO.
func ToConciliationResponse(c *domain.Conciliation) ConciliationResponse {
	res := ConciliationResponse{
		ConciliationID:   c.ConciliationID,
		CompanyID:        c.CompanyID,
		BankAccountID:    c.BankAccountID,
		TransactionID:    c.TransactionID,
		Type:             c.Type,
		PeriodStart:      c.PeriodStart,
		PeriodEnd:        c.PeriodEnd,
		BankBalance:      c.BankBalance,
		BookBalance:      c.BookBalance,
		Difference:       c.Difference,
		ToleranceAmount:  c.ToleranceAmount,
		TotalDocuments:   c.TotalDocuments,
		ConciliatedItems: c.ConciliatedItems,
		PendingItems:     c.PendingItems,
		Status:           c.Status,
		Notes:            c.Notes,
		CompletedAt:      c.CompletedAt,
		CreatedAt:        c.CreatedAt,
	}
	if len(c.Items) > 0 {
		res.Items = make([]ConciliationItemResponse, len(c.Items))
		for i := range c.Items {
			res.Items[i] = ToConciliationItemResponse(&c.Items[i])
		}
	}
	return res
}

// ToConciliationResponses converts a slice of conciliations to DTOs.
func ToConciliationResponses(cs []domain.Conciliation) []ConciliationResponse {
	responses := make([]ConciliationResponse, len(cs))
	for i := range cs {
		responses[i] = ToConciliationResponse(&cs[i])
	}
	return responses
}
