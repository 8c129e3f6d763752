package commands

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"sortable/internal/domain"
	"sortable/internal/ports"
)

// memStore is an in-memory RankStore for command tests. Transactions work on
// a copy that replaces the committed state on Commit.
type memStore struct {
	entries  map[string]domain.Entry
	nextID   int
	shiftErr error
	commits  int
}

var _ ports.RankStore = (*memStore)(nil)

func newMemStore(scope string, n int) *memStore {
	s := &memStore{entries: make(map[string]domain.Entry)}
	for i := 0; i < n; i++ {
		if _, err := s.Insert(context.Background(), scope, ""); err != nil {
			panic(err)
		}
	}
	return s
}

// eid returns the ID of the entry inserted n-th (1-based)
func eid(n int) string {
	return "e" + strconv.Itoa(n)
}

func (s *memStore) rank(entryID string) int {
	return s.entries[entryID].Rank
}

func (s *memStore) sorted(scope string, dir domain.Direction) []domain.Entry {
	var out []domain.Entry
	for _, e := range s.entries {
		if e.Scope == scope {
			out = append(out, e)
		}
	}
	domain.SortEntries(out, dir)
	return out
}

func (s *memStore) Close() error { return nil }

func (s *memStore) Count(_ context.Context, scope string) (int, error) {
	return len(s.sorted(scope, domain.Ascending)), nil
}

func (s *memStore) ListRange(_ context.Context, scope string, dir domain.Direction, offset, limit int) ([]domain.Entry, error) {
	all := s.sorted(scope, dir)
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (s *memStore) Get(_ context.Context, scope, entryID string) (*domain.Entry, error) {
	e, ok := s.entries[entryID]
	if !ok || e.Scope != scope {
		return nil, nil
	}
	return &e, nil
}

func (s *memStore) GetMany(ctx context.Context, scope string, ids []string) ([]domain.Entry, error) {
	var out []domain.Entry
	for _, entryID := range ids {
		if e, _ := s.Get(ctx, scope, entryID); e != nil {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *memStore) ListScopes(context.Context) ([]domain.ScopeSummary, error) {
	return nil, nil
}

func (s *memStore) Insert(_ context.Context, scope, label string) (*domain.Entry, error) {
	maxRank := 0
	for _, e := range s.entries {
		if e.Scope == scope {
			maxRank = max(maxRank, e.Rank)
		}
	}
	s.nextID++
	e := domain.Entry{ID: eid(s.nextID), Scope: scope, Rank: maxRank + 1, Label: label}
	s.entries[e.ID] = e
	return &e, nil
}

func (s *memStore) Delete(_ context.Context, scope, entryID string) (bool, error) {
	e, ok := s.entries[entryID]
	if !ok || e.Scope != scope {
		return false, nil
	}
	delete(s.entries, entryID)
	return true, nil
}

func (s *memStore) BeginTx(_ context.Context, scope string) (ports.RankTx, error) {
	work := make(map[string]domain.Entry, len(s.entries))
	for k, v := range s.entries {
		work[k] = v
	}
	return &memTx{store: s, scope: scope, work: work}, nil
}

type memTx struct {
	store *memStore
	scope string
	work  map[string]domain.Entry
	done  bool
}

func (t *memTx) inScope() []domain.Entry {
	var out []domain.Entry
	for _, e := range t.work {
		if e.Scope == t.scope {
			out = append(out, e)
		}
	}
	domain.SortEntries(out, domain.Ascending)
	return out
}

func (t *memTx) LockAtRank(rank int) ([]domain.Entry, error) {
	var out []domain.Entry
	for _, e := range t.inScope() {
		if e.Rank == rank {
			out = append(out, e)
		}
	}
	return out, nil
}

func (t *memTx) MaxRank() (int, error) {
	maxRank := 0
	for _, e := range t.inScope() {
		maxRank = max(maxRank, e.Rank)
	}
	return maxRank, nil
}

func (t *memTx) Between(lo, hi int) ([]domain.Entry, error) {
	var out []domain.Entry
	for _, e := range t.inScope() {
		if e.Rank >= lo && e.Rank <= hi {
			out = append(out, e)
		}
	}
	return out, nil
}

func (t *memTx) SetRank(entryID string, rank int) error {
	e, ok := t.work[entryID]
	if !ok {
		return fmt.Errorf("no entry %s", entryID)
	}
	e.Rank = rank
	t.work[entryID] = e
	return t.checkUnique()
}

func (t *memTx) ShiftRange(lo, hi, delta int) (int64, error) {
	if t.store.shiftErr != nil {
		return 0, t.store.shiftErr
	}
	var n int64
	for k, e := range t.work {
		if e.Scope == t.scope && e.Rank >= lo && e.Rank <= hi {
			e.Rank += delta
			t.work[k] = e
			n++
		}
	}
	return n, t.checkUnique()
}

// checkUnique behaves like a unique index checked after every statement
func (t *memTx) checkUnique() error {
	ranks := make([]int, 0, len(t.work))
	for _, e := range t.inScope() {
		ranks = append(ranks, e.Rank)
	}
	for i := 1; i < len(ranks); i++ {
		if ranks[i] == ranks[i-1] {
			return fmt.Errorf("duplicate rank %d", ranks[i])
		}
	}
	return nil
}

func (t *memTx) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	t.done = true
	t.store.entries = t.work
	t.store.commits++
	return nil
}

func (t *memTx) Rollback() error {
	t.done = true
	return nil
}

// ranksByID returns the ranks of entries e1..en in insertion order
func (s *memStore) ranksByID(n int) []int {
	out := make([]int, n)
	for i := 1; i <= n; i++ {
		out[i-1] = s.rank(eid(i))
	}
	return out
}

func (s *memStore) dense(scope string) bool {
	all := s.sorted(scope, domain.Ascending)
	for i, e := range all {
		if e.Rank != i+1 {
			return false
		}
	}
	return true
}

// idsInRankOrder lists the scope's IDs from rank 1 upwards
func (s *memStore) idsInRankOrder(scope string) []string {
	var out []string
	for _, e := range s.sorted(scope, domain.Ascending) {
		out = append(out, e.ID)
	}
	return slices.Clip(out)
}
