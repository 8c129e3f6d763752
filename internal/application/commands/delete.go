package commands

import (
	"context"
	"fmt"

	"sortable/internal/application"
	"sortable/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Message   string
}

// DeleteCommand deletes an entry by ID. The remaining ranks are left as they
// are; the gap stays until the scope is renumbered.
type DeleteCommand struct {
	store ports.RankStore
	Scope string
	ID    string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(store ports.RankStore, scope, id string) *DeleteCommand {
	return &DeleteCommand{
		store: store,
		Scope: scope,
		ID:    id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	return application.ValidateRequired("id", c.ID)
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	deleted, err := c.store.Delete(ctx, c.Scope, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.ID, err)
	}
	if !deleted {
		return nil, &application.NotFoundError{Scope: c.Scope, ID: c.ID}
	}

	return &DeleteResult{
		DeletedID: c.ID,
		Message:   fmt.Sprintf("Deleted %s", c.ID),
	}, nil
}
