package dto

import (
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountingEntryLineRequest is one movement of a new entry.
type CreateAccountingEntryLineRequest struct {
	AccountCode  string              `json:"accountCode" binding:"required,max=20"`
	MovementType domain.MovementType `json:"movementType" binding:"required,oneof=DEBIT HABER"`
	Amount       decimal.Decimal     `json:"amount"`
	Description  string              `json:"description"`
}

// CreateAccountingEntryRequest records a double-entry posting for a conciliation.
type CreateAccountingEntryRequest struct {
	ConciliationID string                             `json:"conciliationID" binding:"required"`
	EntryDate      time.Time                          `json:"entryDate" binding:"required"`
	Description    string                             `json:"description"`
	CurrencyCode   string                             `json:"currencyCode" binding:"required,len=3,uppercase"`
	Lines          []CreateAccountingEntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ConcarExportParams are the query parameters of the CONCAR export.
type ConcarExportParams struct {
	CompanyID        string   `form:"companyId" binding:"required"`
	Year             *int     `form:"year"`
	Month            *int     `form:"month"`
	StartDay         *int     `form:"startDay"`
	EndDay           *int     `form:"endDay"`
	BankAccountIDs   []string `form:"bankAccountIds"`
	ConciliationType *string  `form:"conciliationType" binding:"omitempty,oneof=DOCUMENTS DETRACTIONS"`
	DocumentType     string   `form:"documentType" binding:"required,subdiario"`
	Format           string   `form:"format" binding:"omitempty,oneof=json csv"`
}

// ToFilter converts the query parameters to the domain export filter.
func (p ConcarExportParams) ToFilter() domain.ConcarExportFilter {
	filter := domain.ConcarExportFilter{
		CompanyID:        p.CompanyID,
		Year:             p.Year,
		Month:            p.Month,
		StartDay:         p.StartDay,
		EndDay:           p.EndDay,
		BankAccountIDs:   p.BankAccountIDs,
		DocumentTypeCode: p.DocumentType,
	}
	if p.ConciliationType != nil {
		t := domain.ConciliationType(*p.ConciliationType)
		filter.ConciliationType = &t
	}
	return filter
}

// AccountingEntryLineResponse defines the data returned for one entry line.
type AccountingEntryLineResponse struct {
	LineNumber   int                 `json:"lineNumber"`
	AccountCode  string              `json:"accountCode"`
	MovementType domain.MovementType `json:"movementType"`
	Amount       decimal.Decimal     `json:"amount"`
	Description  string              `json:"description,omitempty"`
}

// AccountingEntryResponse defines the data returned for an accounting entry.
type AccountingEntryResponse struct {
	EntryID        string                        `json:"entryID"`
	ConciliationID string                        `json:"conciliationID"`
	EntryDate      time.Time                     `json:"entryDate"`
	Description    string                        `json:"description,omitempty"`
	CurrencyCode   string                        `json:"currencyCode"`
	Lines          []AccountingEntryLineResponse `json:"lines"`
	CreatedAt      time.Time                     `json:"createdAt"`
}

// ToAccountingEntryResponse converts a domain.AccountingEntry to its DTO.
func ToAccountingEntryResponse(e *domain.AccountingEntry) AccountingEntryResponse {
	res := AccountingEntryResponse{
		EntryID:        e.EntryID,
		ConciliationID: e.ConciliationID,
		EntryDate:      e.EntryDate,
		Description:    e.Description,
		CurrencyCode:   e.CurrencyCode,
		Lines:          make([]AccountingEntryLineResponse, len(e.Lines)),
		CreatedAt:      e.CreatedAt,
	}
	for i, l := range e.Lines {
		res.Lines[i] = AccountingEntryLineResponse{
			LineNumber:   l.LineNumber,
			AccountCode:  l.AccountCode,
			MovementType: l.MovementType,
			Amount:       l.Amount,
			Description:  l.Description,
		}
	}
	return res
}
