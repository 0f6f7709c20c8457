package pgsql

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/utils/pagination"
)

func TestLockClause(t *testing.T) {
	pooled := BaseRepository{}
	assert.Empty(t, pooled.lockClause())
	assert.Empty(t, pooled.lockClause("d"))

	atomic := BaseRepository{forUpdate: true}
	assert.Equal(t, " FOR UPDATE", atomic.lockClause())
	assert.Equal(t, " FOR UPDATE OF d", atomic.lockClause("d"))
}

func TestKeysetClause(t *testing.T) {
	base := "SELECT * FROM conciliations WHERE company_id = $1"

	query, args, err := keysetClause(base, []any{"company-1"}, "created_at", "conciliation_id", nil)
	require.NoError(t, err)
	assert.Equal(t, base, query)
	assert.Len(t, args, 1)

	empty := ""
	query, _, err = keysetClause(base, []any{"company-1"}, "created_at", "conciliation_id", &empty)
	require.NoError(t, err)
	assert.Equal(t, base, query)

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	token := pagination.EncodeToken(at, "conc-9")
	query, args, err = keysetClause(base, []any{"company-1"}, "created_at", "conciliation_id", &token)
	require.NoError(t, err)
	assert.Equal(t, base+" AND (created_at, conciliation_id) < ($2, $3)", query)
	require.Len(t, args, 3)
	assert.True(t, at.Equal(args[1].(time.Time)))
	assert.Equal(t, "conc-9", args[2])
}

func TestKeysetClauseRejectsBadToken(t *testing.T) {
	bad := "not-a-token!"
	_, _, err := keysetClause("SELECT 1", nil, "created_at", "id", &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestErrorMapping(t *testing.T) {
	assert.ErrorIs(t, readError(pgx.ErrNoRows, "document"), apperrors.ErrNotFound)
	assert.NotErrorIs(t, readError(errors.New("boom"), "document"), apperrors.ErrNotFound)

	dup := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "bank_transactions_hash_key"}
	err := writeError(dup, "transaction")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "bank_transactions_hash_key")

	assert.NotErrorIs(t, writeError(errors.New("boom"), "transaction"), apperrors.ErrDuplicate)

	assert.ErrorIs(t, expectOneRow(pgconn.NewCommandTag("UPDATE 0"), "item"), apperrors.ErrNotFound)
	assert.NoError(t, expectOneRow(pgconn.NewCommandTag("UPDATE 1"), "item"))
}
