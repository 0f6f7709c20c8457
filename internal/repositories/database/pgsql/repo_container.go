package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:     newPgxTransactionRepository(dbPool),
		DocumentRepo:        newPgxDocumentRepository(dbPool),
		SupplierRepo:        newPgxSupplierRepository(dbPool),
		ConciliationRepo:    newPgxConciliationRepository(dbPool),
		AccountingEntryRepo: newPgxAccountingEntryRepository(dbPool),
		UnitOfWork:          newPgxUnitOfWork(dbPool),
	}
}
