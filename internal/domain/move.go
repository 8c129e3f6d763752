package domain

import (
	"cmp"
	"slices"
)

// MovePlan describes the rank updates needed to move one entry
type MovePlan struct {
	Start int // Current rank of the moved entry
	End   int // Final rank of the moved entry

	// ShiftLo..ShiftHi is the inclusive range of other ranks shifted by Delta.
	ShiftLo int
	ShiftHi int
	Delta   int
}

// PlanMove computes the shift range for moving the entry at start to end.
// The second return value is false when start == end and nothing moves.
func PlanMove(start, end int) (MovePlan, bool) {
	switch {
	case end < start:
		return MovePlan{Start: start, End: end, ShiftLo: end, ShiftHi: start - 1, Delta: +1}, true
	case end > start:
		return MovePlan{Start: start, End: end, ShiftLo: start + 1, ShiftHi: end, Delta: -1}, true
	default:
		return MovePlan{Start: start, End: end}, false
	}
}

// Lo returns the smallest rank touched by the plan
func (p MovePlan) Lo() int {
	return min(p.Start, p.End)
}

// Hi returns the largest rank touched by the plan
func (p MovePlan) Hi() int {
	return max(p.Start, p.End)
}

// Affected returns how many entries change rank, the mover included
func (p MovePlan) Affected() int {
	if p.Delta == 0 {
		return 0
	}
	return p.Hi() - p.Lo() + 1
}

// UpdateOrder sorts the shifted entries of a plan in the order they are
// notified about: starting next to the mover's vacated slot and walking
// towards its destination. Moving up that is descending rank, moving down
// ascending rank. The mover itself is not part of entries.
func (p MovePlan) UpdateOrder(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if p.Delta > 0 {
			return cmp.Compare(b.Rank, a.Rank)
		}
		return cmp.Compare(a.Rank, b.Rank)
	})
}

// ClampEnd bounds a requested destination rank to the occupied range
// [1, maxRank]. A zero destination means "first".
func ClampEnd(end, maxRank int) int {
	if end < 1 {
		end = 1
	}
	if maxRank > 0 && end > maxRank {
		end = maxRank
	}
	return end
}

func sortEntries(entries []Entry, dir Direction) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		c := cmp.Compare(a.Rank, b.Rank)
		if dir == Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
