package commands

import (
	"context"

	"mdvault/internal/application"
	"mdvault/internal/domain"
	"mdvault/internal/ports"
)

// ListCommand scans the whole vault
type ListCommand struct {
	repo ports.VaultRepository
	Root string
	Sort domain.SortMode
}

// NewListCommand creates a new ListCommand
func NewListCommand(repo ports.VaultRepository, root string, sort domain.SortMode) *ListCommand {
	return &ListCommand{
		repo: repo,
		Root: root,
		Sort: sort,
	}
}

// Validate checks if the list operation is valid
func (c *ListCommand) Validate() error {
	return application.ValidateRequired("root", c.Root)
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*domain.Entry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	tree, err := c.repo.Scan(c.Root, c.Sort)
	if err != nil {
		return nil, application.Wrap("scan", c.Root, err)
	}
	return tree, nil
}
