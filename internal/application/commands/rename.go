package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"mdvault/internal/application"
	"mdvault/internal/domain"
	"mdvault/internal/ports"
)

// RenameResult contains the result of a rename operation
type RenameResult struct {
	OriginalPath string
	Entry        *domain.Entry
	Message      string
}

// RenameCommand renames a note or folder in place
type RenameCommand struct {
	repo    ports.VaultRepository
	echo    Echo
	Root    string
	Path    string
	NewName string
}

// NewRenameCommand creates a new RenameCommand
func NewRenameCommand(repo ports.VaultRepository, echo Echo, root, path, newName string) *RenameCommand {
	return &RenameCommand{
		repo:    repo,
		echo:    echo,
		Root:    root,
		Path:    path,
		NewName: newName,
	}
}

// Validate checks if the rename operation is valid
func (c *RenameCommand) Validate() error {
	if err := application.ValidateRequired("root", c.Root); err != nil {
		return err
	}
	if err := application.ValidateWithinVault("path", c.Root, c.Path); err != nil {
		return err
	}
	if application.SamePath(c.Root, c.Path) {
		return &application.ValidationError{
			Field:   "path",
			Message: "cannot rename the vault root",
		}
	}
	return application.ValidateName("newName", c.NewName)
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var entry *domain.Entry
	err := c.echo.guard(func() (err error) {
		entry, err = c.repo.Rename(c.Path, c.NewName)
		return err
	})
	if errors.Is(err, fs.ErrExist) {
		return nil, &application.ValidationError{
			Field:   "newName",
			Message: fmt.Sprintf("an entry named %s already exists", c.NewName),
		}
	}
	if err != nil {
		return nil, application.Wrap("rename", c.Path, err)
	}

	return &RenameResult{
		OriginalPath: c.Path,
		Entry:        entry,
		Message:      fmt.Sprintf("Renamed to %s", entry.Name),
	}, nil
}
