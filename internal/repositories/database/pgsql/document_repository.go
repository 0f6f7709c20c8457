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

// documentSelect reads documents with their supplier joined in.
const documentSelect = `
	SELECT d.document_id, d.company_id, d.supplier_id, d.document_type, d.series, d.number, d.full_number,
		d.issue_date, d.due_date, d.currency_code, d.description, d.total, d.retention_amount,
		d.net_payable_amount, d.conciliated_amount, d.pending_amount, d.status,
		d.created_at, d.created_by, d.last_updated_at, d.last_updated_by,
		s.ruc, s.business_name
	FROM documents d
	LEFT JOIN suppliers s ON s.supplier_id = d.supplier_id`

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(db DBTX) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (models.Document, error) {
	var d models.Document
	err := row.Scan(
		&d.DocumentID,
		&d.CompanyID,
		&d.SupplierID,
		&d.DocumentType,
		&d.Series,
		&d.Number,
		&d.FullNumber,
		&d.IssueDate,
		&d.DueDate,
		&d.CurrencyCode,
		&d.Description,
		&d.Total,
		&d.RetentionAmount,
		&d.NetPayableAmount,
		&d.ConciliatedAmount,
		&d.PendingAmount,
		&d.Status,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
		&d.SupplierRUC,
		&d.SupplierName,
	)
	return d, err
}

func collectDocuments(rows pgx.Rows) ([]models.Document, error) {
	defer rows.Close()
	var docs []models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}
	return docs, nil
}

// FindDocumentByID retrieves a document with its supplier.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := documentSelect + ` WHERE d.document_id = $1` + r.lockClause("d")

	m, err := scanDocument(r.DB.QueryRow(ctx, query, documentID))
	if err != nil {
		return nil, readError(err, "document "+documentID)
	}
	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

// FindDocumentsByIDs retrieves several documents keyed by ID.
func (r *PgxDocumentRepository) FindDocumentsByIDs(ctx context.Context, documentIDs []string) (map[string]domain.Document, error) {
	result := make(map[string]domain.Document, len(documentIDs))
	if len(documentIDs) == 0 {
		return result, nil
	}

	rows, err := r.DB.Query(ctx, documentSelect+` WHERE d.document_id = ANY($1)`, documentIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents by IDs", err)
	}
	docs, err := collectDocuments(rows)
	if err != nil {
		return nil, err
	}
	for _, m := range docs {
		result[m.DocumentID] = mapping.ToDomainDocument(m)
	}
	return result, nil
}

// ListCandidateDocuments returns the open documents issued inside the query window.
func (r *PgxDocumentRepository) ListCandidateDocuments(ctx context.Context, q portsrepo.CandidateDocumentQuery) ([]domain.Document, error) {
	query := documentSelect + `
		WHERE d.company_id = $1
			AND d.status IN ($2, $3)
			AND COALESCE(d.pending_amount, d.total) > 0
			AND d.issue_date BETWEEN $4 AND $5
		ORDER BY d.issue_date, d.document_id`

	rows, err := r.DB.Query(ctx, query,
		q.CompanyID,
		string(domain.DocumentPending),
		string(domain.DocumentValidated),
		q.IssuedFrom,
		q.IssuedUntil,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query candidate documents for company "+q.CompanyID, err)
	}
	docs, err := collectDocuments(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainDocumentSlice(docs), nil
}

// ListDocuments retrieves a page of a company's documents, most recently issued first.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, companyID string, status *domain.DocumentStatus, limit int, nextToken *string) ([]domain.Document, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := documentSelect + ` WHERE d.company_id = $1`
	args := []any{companyID}
	if status != nil {
		args = append(args, string(*status))
		query += ` AND d.status = $` + strconv.Itoa(len(args))
	}
	query, args, err := keysetClause(query, args, "d.issue_date", "d.document_id", nextToken)
	if err != nil {
		return nil, nil, err
	}
	args = append(args, limit+1)
	query += ` ORDER BY d.issue_date DESC, d.document_id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query documents for company "+companyID, err)
	}
	docs, err := collectDocuments(rows)
	if err != nil {
		return nil, nil, err
	}

	page, next := pagination.Page(docs, limit, func(m models.Document) (time.Time, string) {
		return m.IssueDate, m.DocumentID
	})
	return mapping.ToDomainDocumentSlice(page), next, nil
}

// SaveDocument inserts a new document.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (
			document_id, company_id, supplier_id, document_type, series, number, full_number,
			issue_date, due_date, currency_code, description, total, retention_amount,
			net_payable_amount, conciliated_amount, pending_amount, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.DB.Exec(ctx, query,
		m.DocumentID,
		m.CompanyID,
		m.SupplierID,
		m.DocumentType,
		m.Series,
		m.Number,
		m.FullNumber,
		m.IssueDate,
		m.DueDate,
		m.CurrencyCode,
		m.Description,
		m.Total,
		m.RetentionAmount,
		m.NetPayableAmount,
		m.ConciliatedAmount,
		m.PendingAmount,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "document "+m.FullNumber)
	}
	return nil
}

// ApplyDocumentSettlement writes the balances computed when a conciliation completes.
func (r *PgxDocumentRepository) ApplyDocumentSettlement(ctx context.Context, settlement domain.DocumentSettlement, audit domain.AuditFields) error {
	query := `
		UPDATE documents
		SET conciliated_amount = $2, pending_amount = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE document_id = $1`

	tag, err := r.DB.Exec(ctx, query,
		settlement.DocumentID,
		settlement.ConciliatedAmount,
		settlement.PendingAmount,
		string(settlement.Status),
		audit.LastUpdatedAt,
		audit.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "document "+settlement.DocumentID)
	}
	return expectOneRow(tag, "document "+settlement.DocumentID)
}
