package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/utils/accounting"
)

type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade, options ...ServiceOption) portssvc.DocumentSvcFacade {
	opts := applyOptions(options)
	return &documentService{
		BaseService:  BaseService{now: opts.now},
		documentRepo: documentRepo,
		supplierRepo: supplierRepo,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument registers a fiscal document with its derived balances.
func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, userID string) (*domain.Document, error) {
	if !req.Total.IsPositive() {
		return nil, fmt.Errorf("%w: total must be positive", apperrors.ErrValidation)
	}
	if req.RetentionAmount.IsNegative() || req.RetentionAmount.GreaterThan(req.Total) {
		return nil, fmt.Errorf("%w: retention must be between zero and the total", apperrors.ErrValidation)
	}
	if req.DueDate != nil && req.DueDate.Before(req.IssueDate) {
		return nil, fmt.Errorf("%w: due date is before issue date", apperrors.ErrValidation)
	}

	var supplier *domain.Supplier
	if req.SupplierID != nil {
		found, err := s.supplierRepo.FindSupplierByID(ctx, *req.SupplierID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: supplier %s not found", apperrors.ErrValidation, *req.SupplierID)
			}
			return nil, fmt.Errorf("failed to load supplier: %w", err)
		}
		if found.CompanyID != req.CompanyID {
			return nil, fmt.Errorf("%w: supplier %s belongs to another company", apperrors.ErrValidation, found.SupplierID)
		}
		supplier = found
	}

	status := domain.DocumentPending
	if req.Validated {
		status = domain.DocumentValidated
	}

	series := strings.ToUpper(strings.TrimSpace(req.Series))
	number := strings.TrimSpace(req.Number)
	netPayable := accounting.NetPayable(req.Total, req.RetentionAmount)
	pending := netPayable

	doc := domain.Document{
		DocumentID:        uuid.NewString(),
		CompanyID:         req.CompanyID,
		SupplierID:        req.SupplierID,
		DocumentType:      req.DocumentType,
		Series:            series,
		Number:            number,
		FullNumber:        domain.ComposeFullNumber(series, number),
		IssueDate:         req.IssueDate,
		DueDate:           req.DueDate,
		CurrencyCode:      strings.ToUpper(req.CurrencyCode),
		Description:       req.Description,
		Total:             req.Total,
		RetentionAmount:   req.RetentionAmount,
		NetPayableAmount:  netPayable,
		ConciliatedAmount: decimal.Zero,
		PendingAmount:     &pending,
		Status:            status,
		AuditFields:       s.audit(userID),
		Supplier:          supplier,
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: document %s already exists", apperrors.ErrDuplicate, doc.FullNumber)
		}
		s.LogError(ctx, err, "Failed to save document", slog.String("full_number", doc.FullNumber))
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.LogInfo(ctx, "Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("full_number", doc.FullNumber))
	return &doc, nil
}

// GetDocumentByID retrieves a document by its ID.
func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return doc, nil
}

// ListDocuments returns a page of documents for a company.
func (s *documentService) ListDocuments(ctx context.Context, params dto.ListDocumentsParams) (*dto.ListDocumentsResponse, error) {
	docs, nextToken, err := s.documentRepo.ListDocuments(ctx, params.CompanyID, params.Status, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return &dto.ListDocumentsResponse{
		Documents: dto.ToDocumentResponses(docs),
		NextToken: nextToken,
	}, nil
}
