package services

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
)

// ConciliationReaderSvc defines read operations for conciliations
type ConciliationReaderSvc interface {
	// GetConciliationByID returns the conciliation with its items loaded.
	GetConciliationByID(ctx context.Context, conciliationID string) (*domain.Conciliation, error)
	ListConciliations(ctx context.Context, params dto.ListConciliationsParams) (*dto.ListConciliationsResponse, error)
}

// ConciliationWriterSvc defines lifecycle operations for conciliations
type ConciliationWriterSvc interface {
	CreateConciliation(ctx context.Context, req dto.CreateConciliationRequest, userID string) (*domain.Conciliation, error)

	// CancelConciliation moves a PENDING or IN_PROGRESS conciliation to CANCELLED.
	CancelConciliation(ctx context.Context, conciliationID string, userID string) (*domain.Conciliation, error)

	// DeleteConciliation removes a conciliation that is not completed and does not
	// reference any paid or cancelled document.
	DeleteConciliation(ctx context.Context, conciliationID string) error

	// CompleteConciliation settles the bound transaction and every linked document atomically.
	CompleteConciliation(ctx context.Context, conciliationID string, userID string) (*domain.Conciliation, error)
}

// ConciliationLedgerSvc manages the items of a conciliation. Every mutation
// re-derives the conciliation's counters from the full item set.
type ConciliationLedgerSvc interface {
	AddItem(ctx context.Context, conciliationID string, req dto.AddConciliationItemRequest, userID string) (*domain.ConciliationItem, error)
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateConciliationItemRequest, userID string) (*domain.ConciliationItem, error)
	RemoveItem(ctx context.Context, itemID string, userID string) error
	RecomputeCounters(ctx context.Context, conciliationID string, userID string) (domain.ItemCounters, error)
}

// ConciliationMatcherSvc runs the automatic matching engine.
type ConciliationMatcherSvc interface {
	AutoConciliate(ctx context.Context, conciliationID string, userID string) (*domain.AutoConciliationResult, error)
}

// ConciliationSvcFacade combines all conciliation-related service interfaces
type ConciliationSvcFacade interface {
	ConciliationReaderSvc
	ConciliationWriterSvc
	ConciliationLedgerSvc
	ConciliationMatcherSvc
}
