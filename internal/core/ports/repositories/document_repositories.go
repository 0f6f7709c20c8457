package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
)

// CandidateDocumentQuery scopes the documents the matching engine may pair with a transaction.
type CandidateDocumentQuery struct {
	CompanyID   string
	IssuedFrom  time.Time // inclusive
	IssuedUntil time.Time // inclusive
}

// DocumentReader defines read operations for fiscal documents
type DocumentReader interface {
	// FindDocumentByID retrieves a document with its supplier. Returns apperrors.ErrNotFound when absent.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindDocumentsByIDs retrieves several documents keyed by ID. Missing IDs are simply absent from the map.
	FindDocumentsByIDs(ctx context.Context, documentIDs []string) (map[string]domain.Document, error)

	// ListCandidateDocuments returns documents issued inside the window whose status is VALIDATED
	// or PENDING and that still have an open amount, ordered by issue date.
	ListCandidateDocuments(ctx context.Context, query CandidateDocumentQuery) ([]domain.Document, error)

	// ListDocuments retrieves a page of a company's documents using token-based pagination.
	ListDocuments(ctx context.Context, companyID string, status *domain.DocumentStatus, limit int, nextToken *string) ([]domain.Document, *string, error)
}

// DocumentWriter defines write operations for fiscal documents
type DocumentWriter interface {
	// SaveDocument inserts a new document. Returns apperrors.ErrDuplicate when the full number is taken.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// ApplyDocumentSettlement writes the balances computed when a conciliation completes.
	ApplyDocumentSettlement(ctx context.Context, settlement domain.DocumentSettlement, audit domain.AuditFields) error
}

// DocumentRepositoryFacade combines all document repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
