package pgsql

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/accounting_backoffice/internal/models"
	"github.com/SscSPs/accounting_backoffice/internal/utils/mapping"
)

type PgxAccountingEntryRepository struct {
	BaseRepository
}

func newPgxAccountingEntryRepository(db DBTX) portsrepo.AccountingEntryRepositoryFacade {
	return &PgxAccountingEntryRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AccountingEntryRepositoryFacade = (*PgxAccountingEntryRepository)(nil)

// SaveAccountingEntry inserts the entry header and all of its lines in one transaction.
func (r *PgxAccountingEntryRepository) SaveAccountingEntry(ctx context.Context, entry domain.AccountingEntry) error {
	m, lines := mapping.ToModelAccountingEntry(entry)

	return r.withTx(ctx, func(tx pgx.Tx) error {
		entryQuery := `
			INSERT INTO accounting_entries (
				entry_id, conciliation_id, entry_date, description, currency_code,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		_, err := tx.Exec(ctx, entryQuery,
			m.EntryID,
			m.ConciliationID,
			m.EntryDate,
			m.Description,
			m.CurrencyCode,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return writeError(err, "accounting entry "+m.EntryID)
		}

		lineQuery := `
			INSERT INTO accounting_entry_lines (line_id, entry_id, line_number, account_code, movement_type, amount, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		batch := &pgx.Batch{}
		for _, l := range lines {
			batch.Queue(lineQuery, l.LineID, l.EntryID, l.LineNumber, l.AccountCode, l.MovementType, l.Amount, l.Description)
		}

		br := tx.SendBatch(ctx, batch)
		for _, l := range lines {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return writeError(err, "accounting entry line "+strconv.Itoa(l.LineNumber))
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to close accounting entry line batch", err)
		}
		return nil
	})
}

// FindAccountingEntryByID retrieves an entry with its lines.
func (r *PgxAccountingEntryRepository) FindAccountingEntryByID(ctx context.Context, entryID string) (*domain.AccountingEntry, error) {
	query := `
		SELECT entry_id, conciliation_id, entry_date, description, currency_code,
			created_at, created_by, last_updated_at, last_updated_by
		FROM accounting_entries
		WHERE entry_id = $1`

	var m models.AccountingEntry
	err := r.DB.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.ConciliationID,
		&m.EntryDate,
		&m.Description,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, readError(err, "accounting entry "+entryID)
	}

	lineQuery := `
		SELECT line_id, entry_id, line_number, account_code, movement_type, amount, description
		FROM accounting_entry_lines
		WHERE entry_id = $1
		ORDER BY line_number`
	rows, err := r.DB.Query(ctx, lineQuery, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for accounting entry "+entryID, err)
	}
	defer rows.Close()

	var lines []models.AccountingEntryLine
	for rows.Next() {
		var l models.AccountingEntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.LineNumber, &l.AccountCode, &l.MovementType, &l.Amount, &l.Description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accounting entry line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accounting entry lines", err)
	}

	entry := mapping.ToDomainAccountingEntry(m, lines)
	return &entry, nil
}

// ListConcarSourceLines returns the entry lines selected by filter together with the documents
// linked to each entry's conciliation.
func (r *PgxAccountingEntryRepository) ListConcarSourceLines(ctx context.Context, filter domain.ConcarExportFilter, documentType domain.DocumentType) ([]domain.ConcarSourceLine, error) {
	args := []any{filter.CompanyID, string(documentType)}
	query := `
		SELECT l.line_id, l.entry_id, l.line_number, l.account_code, l.movement_type, l.amount, l.description,
			e.entry_date, e.created_at, e.currency_code, e.conciliation_id
		FROM accounting_entry_lines l
		JOIN accounting_entries e ON e.entry_id = l.entry_id
		JOIN conciliations c ON c.conciliation_id = e.conciliation_id
		WHERE c.company_id = $1
			AND EXISTS (
				SELECT 1
				FROM conciliation_items ci
				JOIN documents d ON d.document_id = ci.document_id
				WHERE ci.conciliation_id = c.conciliation_id AND d.document_type = $2
			)`

	if from, to, ok := filter.Window(); ok {
		args = append(args, from, to)
		query += ` AND e.created_at >= $` + strconv.Itoa(len(args)-1) + ` AND e.created_at < $` + strconv.Itoa(len(args))
	}
	if len(filter.BankAccountIDs) > 0 {
		args = append(args, filter.BankAccountIDs)
		query += ` AND c.bank_account_id = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	if filter.ConciliationType != nil {
		args = append(args, string(*filter.ConciliationType))
		query += ` AND c.conciliation_type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY e.created_at, e.entry_id, l.line_number`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounting entry lines for export", err)
	}
	defer rows.Close()

	var (
		result          []domain.ConcarSourceLine
		conciliationIDs []string
		lineOwner       []string
		seen            = make(map[string]bool)
	)
	for rows.Next() {
		var (
			l              models.AccountingEntryLine
			src            domain.ConcarSourceLine
			conciliationID string
		)
		if err := rows.Scan(
			&l.LineID, &l.EntryID, &l.LineNumber, &l.AccountCode, &l.MovementType, &l.Amount, &l.Description,
			&src.EntryDate, &src.EntryCreatedAt, &src.CurrencyCode, &conciliationID,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan export line", err)
		}
		src.Line = mapping.ToDomainAccountingEntryLine(l)
		src.EntryID = l.EntryID
		result = append(result, src)
		lineOwner = append(lineOwner, conciliationID)
		if !seen[conciliationID] {
			seen[conciliationID] = true
			conciliationIDs = append(conciliationIDs, conciliationID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating export lines", err)
	}
	rows.Close()

	if len(result) == 0 {
		return []domain.ConcarSourceLine{}, nil
	}

	docs, err := r.linkedDocuments(ctx, conciliationIDs)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Documents = docs[lineOwner[i]]
	}
	return result, nil
}

// linkedDocuments loads the documents of each conciliation in item creation order.
func (r *PgxAccountingEntryRepository) linkedDocuments(ctx context.Context, conciliationIDs []string) (map[string][]domain.Document, error) {
	query := `
		SELECT ci.conciliation_id, d.document_id, d.company_id, d.supplier_id, d.document_type, d.series, d.number,
			d.full_number, d.issue_date, d.due_date, d.currency_code, d.description, d.total, d.retention_amount,
			d.net_payable_amount, d.conciliated_amount, d.pending_amount, d.status,
			d.created_at, d.created_by, d.last_updated_at, d.last_updated_by,
			s.ruc, s.business_name
		FROM conciliation_items ci
		JOIN documents d ON d.document_id = ci.document_id
		LEFT JOIN suppliers s ON s.supplier_id = d.supplier_id
		WHERE ci.conciliation_id = ANY($1)
		ORDER BY ci.conciliation_id, ci.created_at, ci.item_id`

	rows, err := r.DB.Query(ctx, query, conciliationIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query linked documents for export", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.Document, len(conciliationIDs))
	for rows.Next() {
		var (
			conciliationID string
			d              models.Document
		)
		if err := rows.Scan(
			&conciliationID,
			&d.DocumentID, &d.CompanyID, &d.SupplierID, &d.DocumentType, &d.Series, &d.Number,
			&d.FullNumber, &d.IssueDate, &d.DueDate, &d.CurrencyCode, &d.Description, &d.Total, &d.RetentionAmount,
			&d.NetPayableAmount, &d.ConciliatedAmount, &d.PendingAmount, &d.Status,
			&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
			&d.SupplierRUC, &d.SupplierName,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan linked document", err)
		}
		result[conciliationID] = append(result[conciliationID], mapping.ToDomainDocument(d))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating linked documents", err)
	}
	return result, nil
}
