package ports

import (
	"context"

	"sortable/internal/domain"
)

// RankStore provides transactional access to ranked collections.
// Reads outside a transaction see the latest committed state.
type RankStore interface {
	// Lifecycle
	Close() error

	// Queries
	Count(ctx context.Context, scope string) (int, error)
	ListRange(ctx context.Context, scope string, dir domain.Direction, offset, limit int) ([]domain.Entry, error)
	Get(ctx context.Context, scope, id string) (*domain.Entry, error)
	GetMany(ctx context.Context, scope string, ids []string) ([]domain.Entry, error)
	ListScopes(ctx context.Context) ([]domain.ScopeSummary, error)

	// Insert appends a new entry at max(rank)+1 of its scope and returns it
	Insert(ctx context.Context, scope, label string) (*domain.Entry, error)

	// Delete removes an entry without renumbering the rest of the scope.
	// It reports whether the entry existed.
	Delete(ctx context.Context, scope, id string) (bool, error)

	// BeginTx starts a write transaction holding the store's write lock
	BeginTx(ctx context.Context, scope string) (RankTx, error)
}

// RankTx is one atomic read-modify-write over a single scope
type RankTx interface {
	// LockAtRank returns every entry holding rank, locking them for update.
	// More than one result means the scope's ranking is corrupt.
	LockAtRank(rank int) ([]domain.Entry, error)

	// MaxRank returns the largest rank in the scope, 0 when empty
	MaxRank() (int, error)

	// Between returns the entries with lo <= rank <= hi in ascending rank
	Between(lo, hi int) ([]domain.Entry, error)

	// SetRank assigns a rank to one entry
	SetRank(id string, rank int) error

	// ShiftRange adds delta to the rank of every entry with lo <= rank <= hi
	ShiftRange(lo, hi, delta int) (int64, error)

	// Transaction control
	Commit() error
	Rollback() error
}
