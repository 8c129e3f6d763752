package commands

import (
	"context"
	"fmt"

	"sortable/internal/application"
	"sortable/internal/domain"
	"sortable/internal/ports"
)

// BulkMoveResult contains the result of moving a selection to another page
type BulkMoveResult struct {
	TargetPage int
	Moved      int                 // Number of selected entries placed
	Changes    []domain.RankChange // Changes of every sub-move, in execution order
	Skipped    bool                // True when the target is the current page
	Message    string
}

// BulkMoveCommand moves a selection of entries onto another page of the
// ranked list, one single move per entry. Each single move is atomic on its
// own; the batch as a whole is not.
type BulkMoveCommand struct {
	store       ports.RankStore
	observer    ports.RankObserver
	Scope       string
	SelectedIDs []string
	CurrentPage int
	Destination domain.Destination
	Direction   domain.Direction
	PageSize    int
}

// NewBulkMoveCommand creates a new BulkMoveCommand. observer may be nil.
func NewBulkMoveCommand(
	store ports.RankStore,
	observer ports.RankObserver,
	scope string,
	selectedIDs []string,
	currentPage int,
	dest domain.Destination,
	dir domain.Direction,
	pageSize int,
) *BulkMoveCommand {
	return &BulkMoveCommand{
		store:       store,
		observer:    observer,
		Scope:       scope,
		SelectedIDs: selectedIDs,
		CurrentPage: currentPage,
		Destination: dest,
		Direction:   dir,
		PageSize:    pageSize,
	}
}

// Validate checks the request shape; page ranges are checked against the
// store in Execute
func (c *BulkMoveCommand) Validate() error {
	if len(c.SelectedIDs) == 0 {
		return &application.ValidationError{
			Field:   "selectedIDs",
			Message: "select at least one entry to move",
		}
	}
	for _, id := range c.SelectedIDs {
		if err := application.ValidateRequired("id", id); err != nil {
			return err
		}
	}
	if c.PageSize <= 0 {
		return &application.ValidationError{
			Field:   "pageSize",
			Message: fmt.Sprintf("page size must be positive, got: %d", c.PageSize),
		}
	}
	if c.CurrentPage < 1 {
		return &application.ValidationError{
			Field:   "currentPage",
			Message: fmt.Sprintf("current page must be at least 1, got: %d", c.CurrentPage),
		}
	}
	switch c.Destination.Kind {
	case domain.DestinationBack, domain.DestinationForward:
		if c.Destination.Steps < 1 {
			return &application.ValidationError{
				Field:   "step",
				Message: fmt.Sprintf("step must be at least 1, got: %d", c.Destination.Steps),
			}
		}
	}
	return nil
}

// Execute validates the destination, then applies the moves. Nothing is
// written unless the target page exists, differs from the current page and
// can hold the whole selection.
func (c *BulkMoveCommand) Execute(ctx context.Context) (*BulkMoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	count, err := c.store.Count(ctx, c.Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}
	pager := domain.NewPaginator(count, c.PageSize)
	if !pager.Valid(c.CurrentPage) {
		return nil, &application.PageError{Page: c.CurrentPage, Pages: pager.NumPages()}
	}

	target := c.Destination.Resolve(c.CurrentPage, pager.NumPages())
	if target == c.CurrentPage {
		return &BulkMoveResult{
			TargetPage: target,
			Skipped:    true,
			Message:    fmt.Sprintf("Selection is already on page %d", target),
		}, nil
	}
	if !pager.Valid(target) {
		return nil, &application.PageError{Page: target, Pages: pager.NumPages()}
	}

	ids := uniqueIDs(c.SelectedIDs)
	offset, limit := pager.Bounds(target)
	if len(ids) > limit {
		return nil, &application.CapacityError{Page: target, Capacity: limit, Selected: len(ids)}
	}

	onPage, err := c.store.ListRange(ctx, c.Scope, c.Direction, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load page %d: %w", target, err)
	}
	if len(onPage) == 0 {
		return nil, &application.PageError{Page: target, Pages: pager.NumPages()}
	}
	span := domain.PageSpan{
		FirstRank: onPage[0].Rank,
		LastRank:  onPage[len(onPage)-1].Rank,
	}

	selection, err := c.store.GetMany(ctx, c.Scope, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}
	if missing := missingID(ids, selection); missing != "" {
		return nil, &application.NotFoundError{Scope: c.Scope, ID: missing}
	}
	domain.SortEntries(selection, c.Direction)

	steps := domain.PlanBulk(selection, span, c.Direction, target > c.CurrentPage)
	result := &BulkMoveResult{TargetPage: target}
	for i, step := range steps {
		entry, err := c.store.Get(ctx, c.Scope, step.ID)
		if err != nil {
			return result, fmt.Errorf("bulk move stopped after %d of %d entries: %w", i, len(steps), err)
		}
		if entry == nil {
			return result, fmt.Errorf("bulk move stopped after %d of %d entries: %w",
				i, len(steps), &application.NotFoundError{Scope: c.Scope, ID: step.ID})
		}

		move := NewMoveCommand(c.store, c.observer, c.Scope, entry.Rank, step.EndOrder)
		moved, err := move.Execute(ctx)
		if err != nil {
			return result, fmt.Errorf("bulk move stopped after %d of %d entries: %w", i, len(steps), err)
		}
		result.Moved++
		result.Changes = append(result.Changes, moved.Changes...)
	}

	result.Message = fmt.Sprintf("Moved %d entries to page %d", result.Moved, target)
	return result, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func missingID(ids []string, found []domain.Entry) string {
	have := make(map[string]bool, len(found))
	for _, e := range found {
		have[e.ID] = true
	}
	for _, id := range ids {
		if !have[id] {
			return id
		}
	}
	return ""
}
