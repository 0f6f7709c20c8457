package services

import (
	"context"
	"io"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
)

// AccountingEntrySvcFacade defines accounting entry operations and the CONCAR export.
type AccountingEntrySvcFacade interface {
	CreateAccountingEntry(ctx context.Context, req dto.CreateAccountingEntryRequest, userID string) (*domain.AccountingEntry, error)
	GetAccountingEntryByID(ctx context.Context, entryID string) (*domain.AccountingEntry, error)

	// ExportConcar builds the CONCAR rows for the filter. An empty selection is not an error.
	ExportConcar(ctx context.Context, filter domain.ConcarExportFilter) (*domain.ConcarExport, error)
}

// ConciliationReportSvc renders printable conciliation reports.
type ConciliationReportSvc interface {
	// WriteConciliationReport writes a PDF summary of the conciliation and its items to w.
	WriteConciliationReport(ctx context.Context, conciliationID string, w io.Writer) error
}
