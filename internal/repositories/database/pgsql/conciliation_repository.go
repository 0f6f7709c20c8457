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

const conciliationColumns = `
	conciliation_id, company_id, bank_account_id, transaction_id, conciliation_type, period_start, period_end,
	bank_balance, book_balance, difference, tolerance_amount, total_documents, conciliated_items, pending_items,
	status, notes, completed_at, created_at, created_by, last_updated_at, last_updated_by`

const itemColumns = `
	item_id, conciliation_id, document_id, document_amount, conciliated_amount, difference, status,
	system_notes, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxConciliationRepository struct {
	BaseRepository
}

func newPgxConciliationRepository(db DBTX) portsrepo.ConciliationRepositoryFacade {
	return &PgxConciliationRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ConciliationRepositoryFacade = (*PgxConciliationRepository)(nil)

func scanConciliation(row pgx.Row) (models.Conciliation, error) {
	var c models.Conciliation
	err := row.Scan(
		&c.ConciliationID,
		&c.CompanyID,
		&c.BankAccountID,
		&c.TransactionID,
		&c.ConciliationType,
		&c.PeriodStart,
		&c.PeriodEnd,
		&c.BankBalance,
		&c.BookBalance,
		&c.Difference,
		&c.ToleranceAmount,
		&c.TotalDocuments,
		&c.ConciliatedItems,
		&c.PendingItems,
		&c.Status,
		&c.Notes,
		&c.CompletedAt,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

func scanItem(row pgx.Row) (models.ConciliationItem, error) {
	var i models.ConciliationItem
	err := row.Scan(
		&i.ItemID,
		&i.ConciliationID,
		&i.DocumentID,
		&i.DocumentAmount,
		&i.ConciliatedAmount,
		&i.Difference,
		&i.Status,
		&i.SystemNotes,
		&i.Notes,
		&i.CreatedAt,
		&i.CreatedBy,
		&i.LastUpdatedAt,
		&i.LastUpdatedBy,
	)
	return i, err
}

// FindConciliationByID retrieves a conciliation without its items.
func (r *PgxConciliationRepository) FindConciliationByID(ctx context.Context, conciliationID string) (*domain.Conciliation, error) {
	query := `SELECT ` + conciliationColumns + ` FROM conciliations WHERE conciliation_id = $1` + r.lockClause()

	m, err := scanConciliation(r.DB.QueryRow(ctx, query, conciliationID))
	if err != nil {
		return nil, readError(err, "conciliation "+conciliationID)
	}
	c := mapping.ToDomainConciliation(m)
	return &c, nil
}

// ListConciliations retrieves a page of a company's conciliations, newest first.
func (r *PgxConciliationRepository) ListConciliations(ctx context.Context, companyID string, status *domain.ConciliationStatus, limit int, nextToken *string) ([]domain.Conciliation, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + conciliationColumns + ` FROM conciliations WHERE company_id = $1`
	args := []any{companyID}
	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query, args, err := keysetClause(query, args, "created_at", "conciliation_id", nextToken)
	if err != nil {
		return nil, nil, err
	}
	args = append(args, limit+1)
	query += ` ORDER BY created_at DESC, conciliation_id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query conciliations for company "+companyID, err)
	}
	defer rows.Close()

	results := make([]models.Conciliation, 0, limit+1)
	for rows.Next() {
		m, err := scanConciliation(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan conciliation row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating conciliation rows", err)
	}

	page, next := pagination.Page(results, limit, func(m models.Conciliation) (time.Time, string) {
		return m.CreatedAt, m.ConciliationID
	})
	return mapping.ToDomainConciliationSlice(page), next, nil
}

// SaveConciliation inserts a new conciliation.
func (r *PgxConciliationRepository) SaveConciliation(ctx context.Context, conciliation domain.Conciliation) error {
	m := mapping.ToModelConciliation(conciliation)
	query := `INSERT INTO conciliations (` + conciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.DB.Exec(ctx, query,
		m.ConciliationID,
		m.CompanyID,
		m.BankAccountID,
		m.TransactionID,
		m.ConciliationType,
		m.PeriodStart,
		m.PeriodEnd,
		m.BankBalance,
		m.BookBalance,
		m.Difference,
		m.ToleranceAmount,
		m.TotalDocuments,
		m.ConciliatedItems,
		m.PendingItems,
		m.Status,
		m.Notes,
		m.CompletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "conciliation for transaction "+m.TransactionID)
	}
	return nil
}

// UpdateConciliationStatus moves the conciliation to status; completed_at keeps its value when completedAt is nil.
func (r *PgxConciliationRepository) UpdateConciliationStatus(ctx context.Context, conciliationID string, status domain.ConciliationStatus, completedAt *time.Time, audit domain.AuditFields) error {
	query := `
		UPDATE conciliations
		SET status = $2, completed_at = COALESCE($3, completed_at), last_updated_at = $4, last_updated_by = $5
		WHERE conciliation_id = $1`

	tag, err := r.DB.Exec(ctx, query, conciliationID, string(status), completedAt, audit.LastUpdatedAt, audit.LastUpdatedBy)
	if err != nil {
		return writeError(err, "conciliation "+conciliationID)
	}
	return expectOneRow(tag, "conciliation "+conciliationID)
}

// UpdateConciliationCounters stores freshly derived item counters.
func (r *PgxConciliationRepository) UpdateConciliationCounters(ctx context.Context, conciliationID string, counters domain.ItemCounters, audit domain.AuditFields) error {
	query := `
		UPDATE conciliations
		SET total_documents = $2, conciliated_items = $3, pending_items = $4, last_updated_at = $5, last_updated_by = $6
		WHERE conciliation_id = $1`

	tag, err := r.DB.Exec(ctx, query,
		conciliationID,
		counters.TotalDocuments,
		counters.ConciliatedItems,
		counters.PendingItems,
		audit.LastUpdatedAt,
		audit.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "conciliation counters "+conciliationID)
	}
	return expectOneRow(tag, "conciliation "+conciliationID)
}

// DeleteConciliation removes the conciliation; items and entries cascade.
func (r *PgxConciliationRepository) DeleteConciliation(ctx context.Context, conciliationID string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM conciliations WHERE conciliation_id = $1`, conciliationID)
	if err != nil {
		return writeError(err, "conciliation "+conciliationID)
	}
	return expectOneRow(tag, "conciliation "+conciliationID)
}

// FindItemByID retrieves one conciliation item.
func (r *PgxConciliationRepository) FindItemByID(ctx context.Context, itemID string) (*domain.ConciliationItem, error) {
	query := `SELECT ` + itemColumns + ` FROM conciliation_items WHERE item_id = $1` + r.lockClause()

	m, err := scanItem(r.DB.QueryRow(ctx, query, itemID))
	if err != nil {
		return nil, readError(err, "conciliation item "+itemID)
	}
	item := mapping.ToDomainConciliationItem(m)
	return &item, nil
}

// ListItemsByConciliation returns every item of a conciliation in creation order.
func (r *PgxConciliationRepository) ListItemsByConciliation(ctx context.Context, conciliationID string) ([]domain.ConciliationItem, error) {
	query := `SELECT ` + itemColumns + ` FROM conciliation_items WHERE conciliation_id = $1 ORDER BY created_at, item_id`

	rows, err := r.DB.Query(ctx, query, conciliationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for conciliation "+conciliationID, err)
	}
	defer rows.Close()

	var items []models.ConciliationItem
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan conciliation item row", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating conciliation item rows", err)
	}
	return mapping.ToDomainConciliationItemSlice(items), nil
}

// SaveItem inserts a new conciliation item.
func (r *PgxConciliationRepository) SaveItem(ctx context.Context, item domain.ConciliationItem) error {
	m := mapping.ToModelConciliationItem(item)
	query := `INSERT INTO conciliation_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.DB.Exec(ctx, query,
		m.ItemID,
		m.ConciliationID,
		m.DocumentID,
		m.DocumentAmount,
		m.ConciliatedAmount,
		m.Difference,
		m.Status,
		m.SystemNotes,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "item for document "+m.DocumentID)
	}
	return nil
}

// UpdateItem overwrites the mutable fields of an item.
func (r *PgxConciliationRepository) UpdateItem(ctx context.Context, item domain.ConciliationItem) error {
	m := mapping.ToModelConciliationItem(item)
	query := `
		UPDATE conciliation_items
		SET conciliated_amount = $2, difference = $3, status = $4, system_notes = $5, notes = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE item_id = $1`

	tag, err := r.DB.Exec(ctx, query,
		m.ItemID,
		m.ConciliatedAmount,
		m.Difference,
		m.Status,
		m.SystemNotes,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "conciliation item "+m.ItemID)
	}
	return expectOneRow(tag, "conciliation item "+m.ItemID)
}

// DeleteItem removes one conciliation item.
func (r *PgxConciliationRepository) DeleteItem(ctx context.Context, itemID string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM conciliation_items WHERE item_id = $1`, itemID)
	if err != nil {
		return writeError(err, "conciliation item "+itemID)
	}
	return expectOneRow(tag, "conciliation item "+itemID)
}
