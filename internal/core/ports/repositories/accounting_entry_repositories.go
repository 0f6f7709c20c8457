package repositories

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
)

// AccountingEntryReader defines read operations for accounting entries
type AccountingEntryReader interface {
	// FindAccountingEntryByID retrieves an entry with its lines. Returns apperrors.ErrNotFound when absent.
	FindAccountingEntryByID(ctx context.Context, entryID string) (*domain.AccountingEntry, error)

	// ListConcarSourceLines returns the entry lines selected by filter, ordered by entry creation
	// time then line number, each carrying the documents linked to its conciliation.
	ListConcarSourceLines(ctx context.Context, filter domain.ConcarExportFilter, documentType domain.DocumentType) ([]domain.ConcarSourceLine, error)
}

// AccountingEntryWriter defines write operations for accounting entries
type AccountingEntryWriter interface {
	// SaveAccountingEntry persists an entry together with its lines.
	SaveAccountingEntry(ctx context.Context, entry domain.AccountingEntry) error
}

// AccountingEntryRepositoryFacade combines all accounting entry repository interfaces
type AccountingEntryRepositoryFacade interface {
	AccountingEntryReader
	AccountingEntryWriter
}
