package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/accounting_backoffice/internal/models"
	"github.com/SscSPs/accounting_backoffice/internal/utils/mapping"
	"github.com/SscSPs/accounting_backoffice/internal/utils/pagination"
)

const transactionColumns = `
	transaction_id, company_id, bank_account_id, transaction_date, description, operation_number,
	amount, transaction_type, currency_code, hash, conciliated_amount, pending_amount, status, supplier_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db DBTX) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.CompanyID,
		&t.BankAccountID,
		&t.Date,
		&t.Description,
		&t.OperationNumber,
		&t.Amount,
		&t.TransactionType,
		&t.CurrencyCode,
		&t.Hash,
		&t.ConciliatedAmount,
		&t.PendingAmount,
		&t.Status,
		&t.SupplierID,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM bank_transactions WHERE transaction_id = $1` + r.lockClause()

	m, err := scanTransaction(r.DB.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, readError(err, "transaction "+transactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions retrieves a page of a company's transactions ordered by date, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, companyID string, status *domain.TransactionStatus, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + transactionColumns + ` FROM bank_transactions WHERE company_id = $1`
	args := []any{companyID}
	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query, args, err := keysetClause(query, args, "transaction_date", "transaction_id", nextToken)
	if err != nil {
		return nil, nil, err
	}
	args = append(args, limit+1)
	query += ` ORDER BY transaction_date DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for company "+companyID, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, limit+1)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	page, next := pagination.Page(results, limit, func(m models.Transaction) (time.Time, string) {
		return m.Date, m.TransactionID
	})
	return mapping.ToDomainTransactionSlice(page), next, nil
}

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `INSERT INTO bank_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.DB.Exec(ctx, query,
		m.TransactionID,
		m.CompanyID,
		m.BankAccountID,
		m.Date,
		m.Description,
		m.OperationNumber,
		m.Amount,
		m.TransactionType,
		m.CurrencyCode,
		m.Hash,
		m.ConciliatedAmount,
		m.PendingAmount,
		m.Status,
		m.SupplierID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "transaction "+m.TransactionID)
	}
	return nil
}

// ApplyTransactionSettlement writes the balances computed when a conciliation completes.
func (r *PgxTransactionRepository) ApplyTransactionSettlement(ctx context.Context, settlement domain.TransactionSettlement, audit domain.AuditFields) error {
	query := `
		UPDATE bank_transactions
		SET conciliated_amount = $2, pending_amount = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $1`

	tag, err := r.DB.Exec(ctx, query,
		settlement.TransactionID,
		settlement.ConciliatedAmount,
		settlement.PendingAmount,
		string(settlement.Status),
		audit.LastUpdatedAt,
		audit.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "transaction "+settlement.TransactionID)
	}
	return expectOneRow(tag, "transaction "+settlement.TransactionID)
}
