package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
)

type pgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(db DBTX) portsrepo.UnitOfWork {
	return &pgxUnitOfWork{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.UnitOfWork = (*pgxUnitOfWork)(nil)

// RunAtomic hands fn repositories bound to one database transaction. Single-row reads
// made through them lock the row until the transaction ends.
func (u *pgxUnitOfWork) RunAtomic(ctx context.Context, fn func(ctx context.Context, repos portsrepo.AtomicRepositories) error) error {
	return u.withTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, atomicRepositories(tx))
	})
}

func atomicRepositories(tx pgx.Tx) portsrepo.AtomicRepositories {
	base := BaseRepository{DB: tx, forUpdate: true}
	return portsrepo.AtomicRepositories{
		Transactions:      &PgxTransactionRepository{BaseRepository: base},
		Documents:         &PgxDocumentRepository{BaseRepository: base},
		Conciliations:     &PgxConciliationRepository{BaseRepository: base},
		AccountingEntries: &PgxAccountingEntryRepository{BaseRepository: base},
	}
}
