package commands

import (
	"context"
	"fmt"
	"strings"

	"mdvault/internal/application"
	"mdvault/internal/domain"
	"mdvault/internal/ports"
)

// CreateResult contains the result of creating a note or folder
type CreateResult struct {
	Entry   *domain.Entry
	Message string
}

// CreateNoteCommand creates an untitled note in a folder
type CreateNoteCommand struct {
	repo   ports.VaultRepository
	echo   Echo
	Root   string
	Parent string // defaults to Root
}

// NewCreateNoteCommand creates a new CreateNoteCommand
func NewCreateNoteCommand(repo ports.VaultRepository, echo Echo, root, parent string) *CreateNoteCommand {
	return &CreateNoteCommand{
		repo:   repo,
		echo:   echo,
		Root:   root,
		Parent: parent,
	}
}

func (c *CreateNoteCommand) parent() string {
	if strings.TrimSpace(c.Parent) == "" {
		return c.Root
	}
	return c.Parent
}

// Validate checks if the create operation is valid
func (c *CreateNoteCommand) Validate() error {
	if err := application.ValidateRequired("root", c.Root); err != nil {
		return err
	}
	return application.ValidateWithinVault("parent", c.Root, c.parent())
}

// Execute runs the create note command
func (c *CreateNoteCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var entry *domain.Entry
	err := c.echo.guard(func() (err error) {
		entry, err = c.repo.CreateNote(c.parent())
		return err
	})
	if err != nil {
		return nil, application.Wrap("create note in", c.parent(), err)
	}

	return &CreateResult{
		Entry:   entry,
		Message: fmt.Sprintf("Created note: %s", entry.Name),
	}, nil
}

// CreateFolderCommand creates a folder, numbering the name when it is taken
type CreateFolderCommand struct {
	repo   ports.VaultRepository
	echo   Echo
	Root   string
	Parent string // defaults to Root
	Name   string // defaults to "Untitled"
}

// NewCreateFolderCommand creates a new CreateFolderCommand
func NewCreateFolderCommand(repo ports.VaultRepository, echo Echo, root, parent, name string) *CreateFolderCommand {
	return &CreateFolderCommand{
		repo:   repo,
		echo:   echo,
		Root:   root,
		Parent: parent,
		Name:   name,
	}
}

func (c *CreateFolderCommand) parent() string {
	if strings.TrimSpace(c.Parent) == "" {
		return c.Root
	}
	return c.Parent
}

// Validate checks if the create operation is valid
func (c *CreateFolderCommand) Validate() error {
	if err := application.ValidateRequired("root", c.Root); err != nil {
		return err
	}
	if err := application.ValidateWithinVault("parent", c.Root, c.parent()); err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) != "" {
		return application.ValidateName("name", c.Name)
	}
	return nil
}

// Execute runs the create folder command
func (c *CreateFolderCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var entry *domain.Entry
	err := c.echo.guard(func() (err error) {
		entry, err = c.repo.CreateFolder(c.parent(), c.Name)
		return err
	})
	if err != nil {
		return nil, application.Wrap("create folder in", c.parent(), err)
	}

	return &CreateResult{
		Entry:   entry,
		Message: fmt.Sprintf("Created folder: %s", entry.Name),
	}, nil
}
