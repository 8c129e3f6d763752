package sqlite

import (
	"context"
	"database/sql"
	"time"

	"sortable/internal/ports"
)

// AuditLog persists committed rank changes into the rank_events table
type AuditLog struct {
	db      *sql.DB
	now     func() time.Time
	onError func(error)
}

// Ensure AuditLog implements RankObserver and AuditLog
var (
	_ ports.RankObserver = (*AuditLog)(nil)
	_ ports.AuditLog     = (*AuditLog)(nil)
)

// OnError sets a callback for failed writes; the move itself is already
// committed when they happen
func (a *AuditLog) OnError(fn func(error)) *AuditLog {
	a.onError = fn
	return a
}

// BeforeRankChange does nothing: pending changes are not recorded
func (a *AuditLog) BeforeRankChange(context.Context, ports.RankEvent) error {
	return nil
}

// AfterRankChange records one committed change. Cancelling ctx does not stop
// the write.
func (a *AuditLog) AfterRankChange(ctx context.Context, ev ports.RankEvent) {
	_, err := a.db.ExecContext(context.WithoutCancel(ctx), `
		INSERT INTO rank_events (scope, entry_id, old_rank, new_rank, moved, at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ev.Scope, ev.ID, ev.OldRank, ev.NewRank, ev.Moved, a.now().Unix())
	if err != nil && a.onError != nil {
		a.onError(err)
	}
}

// History returns the latest limit changes of a scope, newest first
func (a *AuditLog) History(ctx context.Context, scope string, limit int) ([]ports.AuditRecord, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT seq, scope, entry_id, old_rank, new_rank, moved, at
		FROM rank_events WHERE scope = ?
		ORDER BY seq DESC LIMIT ?
	`, scope, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ports.AuditRecord
	for rows.Next() {
		var r ports.AuditRecord
		var at int64
		if err := rows.Scan(&r.Seq, &r.Scope, &r.ID, &r.OldRank, &r.NewRank, &r.Moved, &at); err != nil {
			return nil, err
		}
		r.At = time.Unix(at, 0).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}
