package repositories

import (
	"context"
)

// AtomicRepositories exposes the repositories bound to a single database transaction.
// Everything done through them inside RunAtomic commits or rolls back together.
type AtomicRepositories struct {
	Transactions      TransactionRepositoryFacade
	Documents         DocumentRepositoryFacade
	Conciliations     ConciliationRepositoryFacade
	AccountingEntries AccountingEntryRepositoryFacade
}

// UnitOfWork groups repository calls into one database transaction.
type UnitOfWork interface {
	// RunAtomic runs fn inside a transaction. The transaction is committed when fn
	// returns nil and rolled back otherwise; fn's error is returned unchanged.
	RunAtomic(ctx context.Context, fn func(ctx context.Context, repos AtomicRepositories) error) error
}
