package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
)

// ConciliationReader defines read operations for conciliations
type ConciliationReader interface {
	// FindConciliationByID retrieves a conciliation without its items. Returns apperrors.ErrNotFound when absent.
	FindConciliationByID(ctx context.Context, conciliationID string) (*domain.Conciliation, error)

	// ListConciliations retrieves a page of a company's conciliations using token-based pagination.
	ListConciliations(ctx context.Context, companyID string, status *domain.ConciliationStatus, limit int, nextToken *string) ([]domain.Conciliation, *string, error)
}

// ConciliationWriter defines write operations for conciliations
type ConciliationWriter interface {
	// SaveConciliation inserts a new conciliation. Returns apperrors.ErrDuplicate when the transaction
	// is already bound to another conciliation.
	SaveConciliation(ctx context.Context, conciliation domain.Conciliation) error

	// UpdateConciliationStatus moves the conciliation to status and records completedAt when given.
	UpdateConciliationStatus(ctx context.Context, conciliationID string, status domain.ConciliationStatus, completedAt *time.Time, audit domain.AuditFields) error

	// UpdateConciliationCounters stores freshly derived item counters.
	UpdateConciliationCounters(ctx context.Context, conciliationID string, counters domain.ItemCounters, audit domain.AuditFields) error

	// DeleteConciliation removes the conciliation; its items go with it.
	DeleteConciliation(ctx context.Context, conciliationID string) error
}

// ConciliationItemReader defines read operations for conciliation items
type ConciliationItemReader interface {
	// FindItemByID retrieves one item. Returns apperrors.ErrNotFound when absent.
	FindItemByID(ctx context.Context, itemID string) (*domain.ConciliationItem, error)

	// ListItemsByConciliation returns every item of a conciliation in creation order.
	ListItemsByConciliation(ctx context.Context, conciliationID string) ([]domain.ConciliationItem, error)
}

// ConciliationItemWriter defines write operations for conciliation items
type ConciliationItemWriter interface {
	SaveItem(ctx context.Context, item domain.ConciliationItem) error
	UpdateItem(ctx context.Context, item domain.ConciliationItem) error
	DeleteItem(ctx context.Context, itemID string) error
}

// ConciliationRepositoryFacade combines conciliation and item repository interfaces
type ConciliationRepositoryFacade interface {
	ConciliationReader
	ConciliationWriter
	ConciliationItemReader
	ConciliationItemWriter
}
