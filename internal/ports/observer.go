package ports

import (
	"context"
	"time"
)

// RankEvent describes one entry whose rank a move changes
type RankEvent struct {
	Scope   string
	ID      string
	OldRank int
	NewRank int
	Moved   bool // True for the entry the move was requested for
	Seq     int  // Position of the event within its move, starting at 0
}

// RankObserver is notified around every rank change.
//
// BeforeRankChange runs inside the move's transaction, once per affected
// entry, before any rank is written; returning an error aborts the move.
// AfterRankChange runs once per affected entry after commit, in the same
// order.
type RankObserver interface {
	BeforeRankChange(ctx context.Context, ev RankEvent) error
	AfterRankChange(ctx context.Context, ev RankEvent)
}

// Authorizer decides whether a caller may reorder a scope
type Authorizer interface {
	// CanReorder returns nil when credential grants write access to scope
	CanReorder(ctx context.Context, scope, credential string) error
}

// AuditLog reads back persisted rank events
type AuditLog interface {
	History(ctx context.Context, scope string, limit int) ([]AuditRecord, error)
}

// AuditRecord is one persisted rank change
type AuditRecord struct {
	Seq     int64
	Scope   string
	ID      string
	OldRank int
	NewRank int
	Moved   bool
	At      time.Time
}
