package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/utils/pagination"
)

// uniqueViolation is the SQLSTATE Postgres reports for a broken unique constraint.
const uniqueViolation = "23505"

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so a repository
// can run against the pool or inside a unit of work without knowing which.
type DBTX interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB DBTX
	// forUpdate is set on repositories bound to a unit of work; single-row reads then lock the row.
	forUpdate bool
}

// Begin starts a new database transaction, or a savepoint when DB is already a transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// withTx runs fn in a transaction and commits when it returns nil. fn's error is returned unchanged.
func (r *BaseRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// lockClause returns the row lock suffix for single-row reads inside a unit of work.
func (r *BaseRepository) lockClause(tables ...string) string {
	if !r.forUpdate {
		return ""
	}
	if len(tables) == 0 {
		return " FOR UPDATE"
	}
	return " FOR UPDATE OF " + tables[0]
}

// writeError maps a failed write to ErrDuplicate on unique violations and an AppError otherwise.
func writeError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, what, pgErr.ConstraintName)
	}
	return apperrors.NewAppError(500, "failed to write "+what, err)
}

// readError maps pgx.ErrNoRows to ErrNotFound and wraps anything else.
func readError(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return apperrors.NewAppError(500, "failed to read "+what, err)
}

// expectOneRow turns an UPDATE or DELETE that touched nothing into ErrNotFound.
func expectOneRow(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return nil
}

// keysetClause appends the "(col, id) < (...)" condition for nextToken to query and args.
// A nil or empty token leaves both untouched.
func keysetClause(query string, args []any, sortCol, idCol string, nextToken *string) (string, []any, error) {
	if nextToken == nil || *nextToken == "" {
		return query, args, nil
	}
	lastSort, lastID, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	args = append(args, lastSort, lastID)
	query += fmt.Sprintf(" AND (%s, %s) < ($%d, $%d)", sortCol, idCol, len(args)-1, len(args))
	return query, args, nil
}
