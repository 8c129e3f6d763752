package commands

import (
	"context"
	"fmt"

	"sortable/internal/application"
	"sortable/internal/domain"
	"sortable/internal/ports"
)

// MoveResult contains the result of moving one entry
type MoveResult struct {
	Changes []domain.RankChange // Every entry whose rank changed, ascending by new rank
	Message string
}

// MoveCommand moves the entry at StartOrder to EndOrder, shifting the entries
// in between by one rank. It is the only way ranks are rewritten.
type MoveCommand struct {
	store      ports.RankStore
	observer   ports.RankObserver
	Scope      string
	StartOrder int
	EndOrder   int
}

// NewMoveCommand creates a new MoveCommand. observer may be nil.
func NewMoveCommand(store ports.RankStore, observer ports.RankObserver, scope string, startOrder, endOrder int) *MoveCommand {
	return &MoveCommand{
		store:      store,
		observer:   observer,
		Scope:      scope,
		StartOrder: startOrder,
		EndOrder:   endOrder,
	}
}

// Validate checks if the move operation is valid
func (c *MoveCommand) Validate() error {
	if c.StartOrder < 1 {
		return &application.ValidationError{
			Field:   "startorder",
			Message: fmt.Sprintf("start order must be at least 1, got: %d", c.StartOrder),
		}
	}
	return application.ValidateRank("endorder", c.EndOrder)
}

// Execute runs the move inside one transaction.
//
// The mover is parked on max(rank)+1 before the range is shifted and gets its
// final rank last, so no two entries hold the same rank at any point.
func (c *MoveCommand) Execute(ctx context.Context) (*MoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.StartOrder == c.EndOrder {
		return &MoveResult{Message: "Nothing to move"}, nil
	}

	tx, err := c.store.BeginTx(ctx, c.Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to begin move: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	movers, err := tx.LockAtRank(c.StartOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry at rank %d: %w", c.StartOrder, err)
	}
	switch len(movers) {
	case 0:
		return nil, &application.NotFoundError{Scope: c.Scope, Rank: c.StartOrder}
	case 1:
	default:
		return nil, &application.ConsistencyError{Scope: c.Scope, Rank: c.StartOrder, Count: len(movers)}
	}
	mover := movers[0]

	maxRank, err := tx.MaxRank()
	if err != nil {
		return nil, fmt.Errorf("failed to read max rank: %w", err)
	}

	plan, ok := domain.PlanMove(c.StartOrder, domain.ClampEnd(c.EndOrder, maxRank))
	if !ok {
		return &MoveResult{Message: "Nothing to move"}, nil
	}

	shifted, err := tx.Between(plan.ShiftLo, plan.ShiftHi)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranks %d-%d: %w", plan.ShiftLo, plan.ShiftHi, err)
	}
	plan.UpdateOrder(shifted)
	events := rankEvents(c.Scope, mover, shifted, plan)

	obs := c.observer
	if obs == nil {
		obs = application.Observers(nil)
	}
	for _, ev := range events {
		if err := obs.BeforeRankChange(ctx, ev); err != nil {
			return nil, fmt.Errorf("rank change of %s rejected: %w", ev.ID, err)
		}
	}

	if err := tx.SetRank(mover.ID, maxRank+1); err != nil {
		return nil, fmt.Errorf("failed to park entry %s: %w", mover.ID, err)
	}
	if _, err := tx.ShiftRange(plan.ShiftLo, plan.ShiftHi, plan.Delta); err != nil {
		return nil, fmt.Errorf("failed to shift ranks %d-%d: %w", plan.ShiftLo, plan.ShiftHi, err)
	}
	if err := tx.SetRank(mover.ID, plan.End); err != nil {
		return nil, fmt.Errorf("failed to place entry %s: %w", mover.ID, err)
	}

	rows, err := tx.Between(plan.Lo(), plan.Hi())
	if err != nil {
		return nil, fmt.Errorf("failed to read back ranks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit move: %w", err)
	}
	committed = true

	for _, ev := range events {
		obs.AfterRankChange(ctx, ev)
	}

	oldRanks := make(map[string]int, len(events))
	for _, ev := range events {
		oldRanks[ev.ID] = ev.OldRank
	}
	changes := make([]domain.RankChange, 0, len(rows))
	for _, e := range rows {
		old, ok := oldRanks[e.ID]
		if !ok {
			continue
		}
		changes = append(changes, domain.RankChange{ID: e.ID, OldRank: old, NewRank: e.Rank})
	}

	return &MoveResult{
		Changes: changes,
		Message: fmt.Sprintf("Moved %s from %d to %d (%d entries renumbered)", mover.ID, plan.Start, plan.End, len(changes)),
	}, nil
}

// rankEvents lists the notifications of a move: the mover first, then the
// shifted entries in update order.
func rankEvents(scope string, mover domain.Entry, shifted []domain.Entry, plan domain.MovePlan) []ports.RankEvent {
	events := make([]ports.RankEvent, 0, len(shifted)+1)
	events = append(events, ports.RankEvent{
		Scope:   scope,
		ID:      mover.ID,
		OldRank: plan.Start,
		NewRank: plan.End,
		Moved:   true,
	})
	for _, e := range shifted {
		events = append(events, ports.RankEvent{
			Scope:   scope,
			ID:      e.ID,
			OldRank: e.Rank,
			NewRank: e.Rank + plan.Delta,
		})
	}
	for i := range events {
		events[i].Seq = i
	}
	return events
}
