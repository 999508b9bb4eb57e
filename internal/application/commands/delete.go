package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"mdvault/internal/application"
	"mdvault/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedPath string
	Message     string
}

// DeleteCommand deletes a note or a folder with its content
type DeleteCommand struct {
	repo ports.VaultRepository
	echo Echo
	Root string
	Path string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(repo ports.VaultRepository, echo Echo, root, path string) *DeleteCommand {
	return &DeleteCommand{
		repo: repo,
		echo: echo,
		Root: root,
		Path: path,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	if err := application.ValidateRequired("root", c.Root); err != nil {
		return err
	}
	if err := application.ValidateWithinVault("path", c.Root, c.Path); err != nil {
		return err
	}
	if application.SamePath(c.Root, c.Path) {
		return &application.ValidationError{
			Field:   "path",
			Message: "cannot delete the vault root",
		}
	}
	return nil
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.echo.guard(func() error { return c.repo.Delete(c.Path) }); err != nil {
		return nil, application.Wrap("delete", c.Path, err)
	}

	return &DeleteResult{
		DeletedPath: c.Path,
		Message:     fmt.Sprintf("Deleted %s", filepath.Base(c.Path)),
	}, nil
}
