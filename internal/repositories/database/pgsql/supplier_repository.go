package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/accounting_backoffice/internal/models"
	"github.com/SscSPs/accounting_backoffice/internal/utils/mapping"
)

type PgxSupplierRepository struct {
	BaseRepository
}

func newPgxSupplierRepository(db DBTX) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

func scanSupplier(row pgx.Row) (models.Supplier, error) {
	var s models.Supplier
	err := row.Scan(&s.SupplierID, &s.CompanyID, &s.RUC, &s.BusinessName)
	return s, err
}

// FindSupplierByID retrieves a supplier by its ID.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `SELECT supplier_id, company_id, ruc, business_name FROM suppliers WHERE supplier_id = $1`

	m, err := scanSupplier(r.DB.QueryRow(ctx, query, supplierID))
	if err != nil {
		return nil, readError(err, "supplier "+supplierID)
	}
	supplier := mapping.ToDomainSupplier(m)
	return &supplier, nil
}

// FindSupplierByRUC retrieves a company's supplier by taxpayer number.
func (r *PgxSupplierRepository) FindSupplierByRUC(ctx context.Context, companyID, ruc string) (*domain.Supplier, error) {
	query := `SELECT supplier_id, company_id, ruc, business_name FROM suppliers WHERE company_id = $1 AND ruc = $2`

	m, err := scanSupplier(r.DB.QueryRow(ctx, query, companyID, ruc))
	if err != nil {
		return nil, readError(err, "supplier with RUC "+ruc)
	}
	supplier := mapping.ToDomainSupplier(m)
	return &supplier, nil
}

// ListSuppliersByCompany returns every supplier of a company ordered by name.
func (r *PgxSupplierRepository) ListSuppliersByCompany(ctx context.Context, companyID string) ([]domain.Supplier, error) {
	query := `SELECT supplier_id, company_id, ruc, business_name FROM suppliers WHERE company_id = $1 ORDER BY business_name`

	rows, err := r.DB.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query suppliers for company "+companyID, err)
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		m, err := scanSupplier(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan supplier row", err)
		}
		suppliers = append(suppliers, mapping.ToDomainSupplier(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating supplier rows", err)
	}
	return suppliers, nil
}
