package domain

import (
	"strings"
	"time"
)

// TableScope is the scope key of a collection ranked across the whole table.
const TableScope = ""

// Entry is one ranked row of a collection
type Entry struct {
	ID        string    // Opaque, immutable identifier
	Scope     string    // Ranking scope ("" for the whole table, parent key for inline rows)
	Rank      int       // Position within the scope, 1..N at quiescence
	Label     string    // Display text
	CreatedAt time.Time // Insertion time
}

// RankChange reports the new rank of an entry touched by a move
type RankChange struct {
	ID      string `json:"id"`
	OldRank int    `json:"old_rank"`
	NewRank int    `json:"rank"`
}

// ScopeSummary describes one ranking scope
type ScopeSummary struct {
	Key     string
	Count   int
	MinRank int
	MaxRank int
}

// Dense reports whether the summary describes a gap-free 1..N ranking.
// It cannot detect duplicates on its own; callers that care compare against
// a distinct count.
func (s ScopeSummary) Dense() bool {
	if s.Count == 0 {
		return true
	}
	return s.MinRank == 1 && s.MaxRank == s.Count
}

// Direction is the sort direction of a ranked list
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "-1"
	}
	return "1"
}

// Sign is +1 for ascending and -1 for descending lists: moving one display
// position later changes the rank by Sign.
func (d Direction) Sign() int {
	if d == Descending {
		return -1
	}
	return 1
}

// OrderBy returns the SQL ordering keyword matching the direction
func (d Direction) OrderBy() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// ParseDirection parses the list ordering parameter ("1", "-1", "-1.2", ...).
// Only the part before the first dot is significant. The second return value
// is false when raw does not name a direction.
func ParseDirection(raw string) (Direction, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(raw), ".")
	switch head {
	case "1", "+1", "asc":
		return Ascending, true
	case "-1", "desc":
		return Descending, true
	default:
		return Ascending, false
	}
}

// SortEntries orders entries by rank following the direction, breaking ties by ID
func SortEntries(entries []Entry, dir Direction) {
	sortEntries(entries, dir)
}
