package sqlite

import (
	"context"
	"database/sql"

	"sortable/internal/domain"
	"sortable/internal/ports"
)

// rankTx implements ports.RankTx
type rankTx struct {
	ctx   context.Context
	tx    *sql.Tx
	scope string
}

// Ensure rankTx implements RankTx
var _ ports.RankTx = (*rankTx)(nil)

// LockAtRank returns the entries holding rank. The transaction already owns
// the database write lock (BEGIN IMMEDIATE), which stands in for SELECT ... FOR UPDATE.
func (t *rankTx) LockAtRank(rank int) ([]domain.Entry, error) {
	rows, err := t.tx.QueryContext(t.ctx, `
		SELECT id, scope, sort_order, label, created_at
		FROM entries WHERE scope = ? AND sort_order = ?
		ORDER BY id
	`, t.scope, rank)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// MaxRank returns the largest rank in the scope
func (t *rankTx) MaxRank() (int, error) {
	var n int
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT COALESCE(MAX(sort_order), 0) FROM entries WHERE scope = ?`, t.scope,
	).Scan(&n)
	return n, err
}

// Between returns the entries ranked lo..hi in ascending order
func (t *rankTx) Between(lo, hi int) ([]domain.Entry, error) {
	rows, err := t.tx.QueryContext(t.ctx, `
		SELECT id, scope, sort_order, label, created_at
		FROM entries WHERE scope = ? AND sort_order BETWEEN ? AND ?
		ORDER BY sort_order ASC, id ASC
	`, t.scope, lo, hi)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// SetRank assigns a rank to one entry
func (t *rankTx) SetRank(id string, rank int) error {
	_, err := t.tx.ExecContext(t.ctx,
		`UPDATE entries SET sort_order = ? WHERE scope = ? AND id = ?`, rank, t.scope, id)
	return err
}

// ShiftRange moves every entry ranked lo..hi by delta
func (t *rankTx) ShiftRange(lo, hi, delta int) (int64, error) {
	res, err := t.tx.ExecContext(t.ctx, `
		UPDATE entries SET sort_order = sort_order + ?
		WHERE scope = ? AND sort_order BETWEEN ? AND ?
	`, delta, t.scope, lo, hi)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Commit commits the transaction
func (t *rankTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *rankTx) Rollback() error {
	return t.tx.Rollback()
}
