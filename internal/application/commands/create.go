package commands

import (
	"context"
	"fmt"
	"strings"

	"sortable/internal/application"
	"sortable/internal/domain"
	"sortable/internal/ports"
)

// CreateResult contains the result of creating an entry
type CreateResult struct {
	Entry   *domain.Entry
	Message string
}

// CreateCommand appends a new entry to the end of its scope
type CreateCommand struct {
	store ports.RankStore
	Scope string
	Label string
}

// NewCreateCommand creates a new CreateCommand
func NewCreateCommand(store ports.RankStore, scope, label string) *CreateCommand {
	return &CreateCommand{
		store: store,
		Scope: scope,
		Label: label,
	}
}

// Validate checks if the create operation is valid
func (c *CreateCommand) Validate() error {
	return application.ValidateRequired("label", c.Label)
}

// Execute runs the create command
func (c *CreateCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entry, err := c.store.Insert(ctx, c.Scope, strings.TrimSpace(c.Label))
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	return &CreateResult{
		Entry:   entry,
		Message: fmt.Sprintf("Created %s at rank %d", entry.ID, entry.Rank),
	}, nil
}
