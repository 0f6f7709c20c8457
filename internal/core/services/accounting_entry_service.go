package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/utils/concar"
)

type accountingEntryService struct {
	BaseService
	entryRepo        portsrepo.AccountingEntryRepositoryFacade
	conciliationRepo portsrepo.ConciliationReader
}

// NewAccountingEntryService creates a new accounting entry service.
func NewAccountingEntryService(entryRepo portsrepo.AccountingEntryRepositoryFacade, conciliationRepo portsrepo.ConciliationReader, options ...ServiceOption) portssvc.AccountingEntrySvcFacade {
	opts := applyOptions(options)
	return &accountingEntryService{
		BaseService:      BaseService{now: opts.now},
		entryRepo:        entryRepo,
		conciliationRepo: conciliationRepo,
	}
}

var _ portssvc.AccountingEntrySvcFacade = (*accountingEntryService)(nil)

// CreateAccountingEntry records a balanced entry for an existing conciliation.
func (s *accountingEntryService) CreateAccountingEntry(ctx context.Context, req dto.CreateAccountingEntryRequest, userID string) (*domain.AccountingEntry, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: an entry needs at least one line", apperrors.ErrValidation)
	}
	if _, err := s.conciliationRepo.FindConciliationByID(ctx, req.ConciliationID); err != nil {
		return nil, fmt.Errorf("failed to get conciliation %s: %w", req.ConciliationID, err)
	}

	entry := domain.AccountingEntry{
		EntryID:        uuid.NewString(),
		ConciliationID: req.ConciliationID,
		EntryDate:      req.EntryDate,
		Description:    req.Description,
		CurrencyCode:   req.CurrencyCode,
		Lines:          make([]domain.AccountingEntryLine, len(req.Lines)),
		AuditFields:    s.audit(userID),
	}
	for i, line := range req.Lines {
		if !line.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: line %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		entry.Lines[i] = domain.AccountingEntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entry.EntryID,
			LineNumber:   i + 1,
			AccountCode:  line.AccountCode,
			MovementType: line.MovementType,
			Amount:       line.Amount,
			Description:  line.Description,
		}
	}
	if !entry.IsBalanced() {
		return nil, fmt.Errorf("%w: debit and haber totals differ", apperrors.ErrValidation)
	}

	if err := s.entryRepo.SaveAccountingEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save accounting entry", slog.String("conciliation_id", req.ConciliationID))
		return nil, fmt.Errorf("failed to create accounting entry: %w", err)
	}

	s.LogInfo(ctx, "Accounting entry created",
		slog.String("entry_id", entry.EntryID),
		slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

// GetAccountingEntryByID retrieves an entry with its lines.
func (s *accountingEntryService) GetAccountingEntryByID(ctx context.Context, entryID string) (*domain.AccountingEntry, error) {
	entry, err := s.entryRepo.FindAccountingEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounting entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ExportConcar builds the CONCAR import rows for the selected entry lines.
func (s *accountingEntryService) ExportConcar(ctx context.Context, filter domain.ConcarExportFilter) (*domain.ConcarExport, error) {
	if err := ValidateExportFilter(filter); err != nil {
		return nil, err
	}
	documentType, _ := domain.DocumentTypeForSubDiario(filter.DocumentTypeCode)

	lines, err := s.entryRepo.ListConcarSourceLines(ctx, filter, documentType)
	if err != nil {
		s.LogError(ctx, err, "Failed to load CONCAR source lines", slog.String("company_id", filter.CompanyID))
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}

	export := concar.Build(lines, filter)
	s.LogInfo(ctx, "CONCAR export built",
		slog.String("period", export.Summary.Period),
		slog.String("sub_diario", export.Summary.SubDiario),
		slog.Int("records", export.Summary.TotalRecords),
		slog.Int("entries", export.Summary.TotalEntries))
	return &export, nil
}

// ValidateExportFilter checks that the date fields of an export filter describe a real window.
func ValidateExportFilter(filter domain.ConcarExportFilter) error {
	if filter.CompanyID == "" {
		return fmt.Errorf("%w: company is required", apperrors.ErrValidation)
	}
	if _, ok := domain.DocumentTypeForSubDiario(filter.DocumentTypeCode); !ok {
		return fmt.Errorf("%w: document type must be %q or %q", apperrors.ErrValidation, domain.SubDiarioReceiptForFees, domain.SubDiarioInvoice)
	}
	if filter.Month != nil {
		if filter.Year == nil {
			return fmt.Errorf("%w: month requires year", apperrors.ErrValidation)
		}
		if *filter.Month < 1 || *filter.Month > 12 {
			return fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
		}
	}
	if (filter.StartDay != nil || filter.EndDay != nil) && filter.Month == nil {
		return fmt.Errorf("%w: days require month and year", apperrors.ErrValidation)
	}
	if filter.Month != nil {
		lastDay := time.Date(*filter.Year, time.Month(*filter.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
		for _, d := range []*int{filter.StartDay, filter.EndDay} {
			if d != nil && (*d < 1 || *d > lastDay) {
				return fmt.Errorf("%w: days must be between 1 and %d", apperrors.ErrValidation, lastDay)
			}
		}
	}
	if filter.StartDay != nil && filter.EndDay != nil && *filter.StartDay > *filter.EndDay {
		return fmt.Errorf("%w: start day is after end day", apperrors.ErrValidation)
	}
	return nil
}
