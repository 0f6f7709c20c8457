package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jung-kurt/gofpdf"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/utils/concar"
)

type reportService struct {
	BaseService
	conciliationRepo portsrepo.ConciliationRepositoryFacade
	transactionRepo  portsrepo.TransactionReader
	documentRepo     portsrepo.DocumentReader
}

// NewReportService creates the service rendering conciliation PDFs.
func NewReportService(conciliationRepo portsrepo.ConciliationRepositoryFacade, transactionRepo portsrepo.TransactionReader, documentRepo portsrepo.DocumentReader, options ...ServiceOption) portssvc.ConciliationReportSvc {
	opts := applyOptions(options)
	return &reportService{
		BaseService:      BaseService{now: opts.now},
		conciliationRepo: conciliationRepo,
		transactionRepo:  transactionRepo,
		documentRepo:     documentRepo,
	}
}

var _ portssvc.ConciliationReportSvc = (*reportService)(nil)

// WriteConciliationReport renders a landscape A4 summary of a conciliation and its items.
func (s *reportService) WriteConciliationReport(ctx context.Context, conciliationID string, w io.Writer) error {
	conciliation, err := s.conciliationRepo.FindConciliationByID(ctx, conciliationID)
	if err != nil {
		return fmt.Errorf("failed to get conciliation %s: %w", conciliationID, err)
	}
	items, err := s.conciliationRepo.ListItemsByConciliation(ctx, conciliationID)
	if err != nil {
		return fmt.Errorf("failed to list items for conciliation %s: %w", conciliationID, err)
	}
	txn, err := s.transactionRepo.FindTransactionByID(ctx, conciliation.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to load transaction %s: %w", conciliation.TransactionID, err)
	}

	documents := map[string]domain.Document{}
	if len(items) > 0 {
		ids := make([]string, len(items))
		for i, item := range items {
			ids[i] = item.DocumentID
		}
		if documents, err = s.documentRepo.FindDocumentsByIDs(ctx, ids); err != nil {
			return fmt.Errorf("failed to load documents of conciliation %s: %w", conciliationID, err)
		}
	}

	pdf := s.render(conciliation, txn, items, documents)
	if err := pdf.Output(w); err != nil {
		s.LogError(ctx, err, "Failed to write conciliation report", slog.String("conciliation_id", conciliationID))
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (s *reportService) render(conciliation *domain.Conciliation, txn *domain.Transaction, items []domain.ConciliationItem, documents map[string]domain.Document) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)

	generated := s.Now().Format("02/01/2006 15:04")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, "Generated "+generated+" UTC", "", 0, "R", false, 0, "")
	})
	pdf.AddPage()
	pdf.SetDrawColor(200, 200, 200)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Bank Conciliation", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s  |  %s  |  %s", conciliation.ConciliationID, conciliation.Type, conciliation.Status)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Period %s - %s", concar.FormatDate(conciliation.PeriodStart), concar.FormatDate(conciliation.PeriodEnd)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	summary := [][2]string{
		{"Transaction", tr(fmt.Sprintf("%s  %s", concar.FormatDate(txn.Date), txn.Description))},
		{"Operation number", txn.OperationNumber},
		{"Amount", fmt.Sprintf("%s %s", txn.CurrencyCode, concar.FormatAmount(txn.Amount))},
		{"Bank balance", concar.FormatAmount(conciliation.BankBalance)},
		{"Book balance", concar.FormatAmount(conciliation.BookBalance)},
		{"Difference", concar.FormatAmount(conciliation.Difference)},
		{"Tolerance", concar.FormatAmount(conciliation.ToleranceAmount)},
		{"Items", fmt.Sprintf("%d total, %d conciliated, %d pending", conciliation.TotalDocuments, conciliation.ConciliatedItems, conciliation.PendingItems)},
	}
	for _, row := range summary {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	colWidths := []float64{35, 30, 80, 32, 32, 28, 40}
	headers := []string{"Document", "Issue date", "Supplier", "Doc. amount", "Conciliated", "Difference", "Status"}
	aligns := []string{"L", "C", "L", "R", "R", "R", "C"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(0, 0, 0)
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for n, item := range items {
		doc := documents[item.DocumentID]
		supplier := ""
		if doc.Supplier != nil {
			supplier = doc.Supplier.BusinessName
		}
		values := []string{
			doc.FullNumber,
			concar.FormatDate(doc.IssueDate),
			tr(supplier),
			concar.FormatAmount(item.DocumentAmount),
			concar.FormatAmount(item.ConciliatedAmount),
			concar.FormatAmount(item.Difference),
			string(item.Status),
		}

		fill := n%2 == 1
		if fill {
			pdf.SetFillColor(250, 250, 250)
		}
		for i, value := range values {
			pdf.CellFormat(colWidths[i], 7, value, "1", 0, aligns[i], fill, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(items) == 0 {
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 7, "No documents linked", "1", 1, "C", false, 0, "")
	}

	return pdf
}
