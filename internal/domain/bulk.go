package domain

// BulkStep is one single move of a bulk move: the entry and the rank it must
// end up at. The entry's starting rank is read when the step runs, since
// earlier steps of the same batch shift it.
type BulkStep struct {
	ID       string
	EndOrder int
}

// PageSpan is the rank of the first and last entry displayed on a page
type PageSpan struct {
	FirstRank int
	LastRank  int
}

// PlanBulk computes the steps moving selection onto a target page.
//
// selection must be in display order. Moving backward places the block at
// the start of the page and processes the selection front to back; moving
// forward places it at the end of the page and processes it back to front,
// so every step shifts only entries that have not been placed yet.
func PlanBulk(selection []Entry, span PageSpan, dir Direction, forward bool) []BulkStep {
	k := len(selection)
	if k == 0 {
		return nil
	}
	sign := dir.Sign()
	steps := make([]BulkStep, 0, k)
	if forward {
		for i := k - 1; i >= 0; i-- {
			steps = append(steps, BulkStep{
				ID:       selection[i].ID,
				EndOrder: span.LastRank - sign*(k-1-i),
			})
		}
		return steps
	}
	for i, e := range selection {
		steps = append(steps, BulkStep{
			ID:       e.ID,
			EndOrder: span.FirstRank + sign*i,
		})
	}
	return steps
}
