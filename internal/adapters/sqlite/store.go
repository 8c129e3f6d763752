package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"sortable/internal/domain"
	"sortable/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.RankStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Ensure Store implements RankStore
var _ ports.RankStore = (*Store)(nil)

// NewStore creates a new, unopened SQLite store
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Open opens (creating if needed) the database at dbPath
func (s *Store) Open(dbPath string) error {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	s.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Every transaction starts with BEGIN IMMEDIATE: the write lock is taken
	// before the mover is read, not on the first write.
	dsn := "file:" + dbPath + "?_txlock=immediate&_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			scope TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL,
			label TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS rank_events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			scope TEXT NOT NULL,
			entry_id TEXT NOT NULL,
			old_rank INTEGER NOT NULL,
			new_rank INTEGER NOT NULL,
			moved INTEGER NOT NULL,
			at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_scope_order ON entries(scope, sort_order);
		CREATE INDEX IF NOT EXISTS idx_rank_events_scope ON rank_events(scope, seq);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// AuditLog returns the rank event log backed by this database
func (s *Store) AuditLog() *AuditLog {
	return &AuditLog{db: s.db, now: s.now}
}

// Count returns the number of entries in a scope
func (s *Store) Count(ctx context.Context, scope string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE scope = ?`, scope).Scan(&n)
	return n, err
}

// ListRange returns limit entries starting at offset, in rank order
func (s *Store) ListRange(ctx context.Context, scope string, dir domain.Direction, offset, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT id, scope, sort_order, label, created_at
		FROM entries WHERE scope = ?
		ORDER BY sort_order %s, id ASC
		LIMIT ? OFFSET ?
	`, dir.OrderBy())
	rows, err := s.db.QueryContext(ctx, query, scope, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// Get retrieves an entry by ID, nil if it does not exist
func (s *Store) Get(ctx context.Context, scope, id string) (*domain.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, scope, sort_order, label, created_at
		FROM entries WHERE scope = ? AND id = ?
	`, scope, id)

	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetMany retrieves the entries with the given IDs; missing IDs are skipped
func (s *Store) GetMany(ctx context.Context, scope string, ids []string) ([]domain.Entry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, scope)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scope, sort_order, label, created_at
		FROM entries WHERE scope = ? AND id IN (`+placeholders+`)
		ORDER BY sort_order ASC, id ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// ListScopes summarizes every scope holding at least one entry
func (s *Store) ListScopes(ctx context.Context) ([]domain.ScopeSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scope, COUNT(*), MIN(sort_order), MAX(sort_order)
		FROM entries GROUP BY scope ORDER BY scope
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scopes []domain.ScopeSummary
	for rows.Next() {
		var sc domain.ScopeSummary
		if err := rows.Scan(&sc.Key, &sc.Count, &sc.MinRank, &sc.MaxRank); err != nil {
			return nil, err
		}
		scopes = append(scopes, sc)
	}
	return scopes, rows.Err()
}

// Insert appends a new entry at the end of its scope
func (s *Store) Insert(ctx context.Context, scope, label string) (*domain.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var maxRank int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sort_order), 0) FROM entries WHERE scope = ?`, scope,
	).Scan(&maxRank); err != nil {
		return nil, err
	}

	e := domain.Entry{
		ID:        uuid.NewString(),
		Scope:     scope,
		Rank:      maxRank + 1,
		Label:     label,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO entries (id, scope, sort_order, label, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.ID, e.Scope, e.Rank, e.Label, e.CreatedAt.Unix()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an entry; ranks of the remaining entries are untouched
func (s *Store) Delete(ctx context.Context, scope, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE scope = ? AND id = ?`, scope, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BeginTx starts a write transaction over one scope
func (s *Store) BeginTx(ctx context.Context, scope string) (ports.RankTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &rankTx{ctx: ctx, tx: tx, scope: scope}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.Entry, error) {
	var e domain.Entry
	var created int64
	if err := row.Scan(&e.ID, &e.Scope, &e.Rank, &e.Label, &created); err != nil {
		return domain.Entry{}, err
	}
	e.CreatedAt = time.Unix(created, 0).UTC()
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
