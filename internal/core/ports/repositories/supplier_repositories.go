package repositories

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
)

// SupplierRepositoryFacade defines the read-only supplier lookups used by this service.
type SupplierRepositoryFacade interface {
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	FindSupplierByRUC(ctx context.Context, companyID, ruc string) (*domain.Supplier, error)
	ListSuppliersByCompany(ctx context.Context, companyID string) ([]domain.Supplier, error)
}
