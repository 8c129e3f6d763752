package commands

import (
	"context"
	"fmt"

	"sortable/internal/application"
	"sortable/internal/domain"
	"sortable/internal/ports"
)

// ListResult is one page of a ranked list
type ListResult struct {
	Entries   []domain.Entry
	Page      int
	NumPages  int
	Count     int
	PageSize  int
	Direction domain.Direction
	Actions   []string // Bulk move actions offered on this page
}

// ListCommand lists one page of a scope in rank order
type ListCommand struct {
	store     ports.RankStore
	Scope     string
	Page      int
	PageSize  int
	Direction domain.Direction
}

// NewListCommand creates a new ListCommand
func NewListCommand(store ports.RankStore, scope string, page, pageSize int, dir domain.Direction) *ListCommand {
	return &ListCommand{
		store:     store,
		Scope:     scope,
		Page:      page,
		PageSize:  pageSize,
		Direction: dir,
	}
}

// Execute runs the list command. An out-of-range page is a PageError.
func (c *ListCommand) Execute(ctx context.Context) (*ListResult, error) {
	count, err := c.store.Count(ctx, c.Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	pager := domain.NewPaginator(count, c.PageSize)
	page := c.Page
	if page == 0 {
		page = 1
	}
	if !pager.Valid(page) {
		return nil, &application.PageError{Page: page, Pages: pager.NumPages()}
	}

	offset, limit := pager.Bounds(page)
	entries, err := c.store.ListRange(ctx, c.Scope, c.Direction, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list page %d: %w", page, err)
	}

	return &ListResult{
		Entries:   entries,
		Page:      page,
		NumPages:  pager.NumPages(),
		Count:     count,
		PageSize:  pager.PageSize(),
		Direction: c.Direction,
		Actions:   domain.AvailableActions(page, pager.NumPages()),
	}, nil
}

// ScopesCommand lists every scope with its entry count
type ScopesCommand struct {
	store ports.RankStore
}

// NewScopesCommand creates a new ScopesCommand
func NewScopesCommand(store ports.RankStore) *ScopesCommand {
	return &ScopesCommand{store: store}
}

// Execute runs the scopes command
func (c *ScopesCommand) Execute(ctx context.Context) ([]domain.ScopeSummary, error) {
	return c.store.ListScopes(ctx)
}

// HistoryCommand reads the most recent rank changes of a scope
type HistoryCommand struct {
	log   ports.AuditLog
	Scope string
	Limit int
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(log ports.AuditLog, scope string, limit int) *HistoryCommand {
	return &HistoryCommand{
		log:   log,
		Scope: scope,
		Limit: limit,
	}
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) ([]ports.AuditRecord, error) {
	limit := c.Limit
	if limit <= 0 {
		limit = 50
	}
	return c.log.History(ctx, c.Scope, limit)
}
