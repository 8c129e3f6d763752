package application

import "sortable/internal/domain"

// Re-export domain types for use by adapters
type (
	Entry        = domain.Entry
	RankChange   = domain.RankChange
	ScopeSummary = domain.ScopeSummary
	Direction    = domain.Direction
	Destination  = domain.Destination
)

const (
	Ascending  = domain.Ascending
	Descending = domain.Descending
)

// ParseDirection parses a list ordering parameter, falling back to def
func ParseDirection(raw string, def Direction) Direction {
	if dir, ok := domain.ParseDirection(raw); ok {
		return dir
	}
	return def
}
