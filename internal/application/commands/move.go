package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"mdvault/internal/application"
	"mdvault/internal/domain"
	"mdvault/internal/ports"
)

// MoveResult contains the result of moving or copying an entry
type MoveResult struct {
	OriginalPath string
	Entry        *domain.Entry
	Message      string
}

// MoveCommand moves a note or folder into another folder
type MoveCommand struct {
	repo    ports.VaultRepository
	echo    Echo
	Root    string
	Path    string
	DestDir string // defaults to Root
}

// NewMoveCommand creates a new MoveCommand
func NewMoveCommand(repo ports.VaultRepository, echo Echo, root, path, destDir string) *MoveCommand {
	return &MoveCommand{
		repo:    repo,
		echo:    echo,
		Root:    root,
		Path:    path,
		DestDir: destDir,
	}
}

func (c *MoveCommand) dest() string {
	return destOrRoot(c.Root, c.DestDir)
}

// Validate checks if the move operation is valid
func (c *MoveCommand) Validate() error {
	if err := validateTransfer(c.Root, c.Path, c.dest()); err != nil {
		return err
	}
	return ValidateMoveDestination(c.Path, c.dest())
}

// Execute runs the move command
func (c *MoveCommand) Execute(ctx context.Context) (*MoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var entry *domain.Entry
	err := c.echo.guard(func() (err error) {
		entry, err = c.repo.Move(c.Path, c.dest())
		return err
	})
	if errors.Is(err, fs.ErrExist) {
		return nil, &application.MoveError{
			Source: c.Path,
			Dest:   c.dest(),
			Reason: "an entry with the same name already exists there",
		}
	}
	if err != nil {
		return nil, application.Wrap("move", c.Path, err)
	}

	return &MoveResult{
		OriginalPath: c.Path,
		Entry:        entry,
		Message:      fmt.Sprintf("Moved %s to %s", entry.Name, filepath.Base(c.dest())),
	}, nil
}

// ValidateMoveDestination checks if a move is meaningful without executing it
func ValidateMoveDestination(path, destDir string) error {
	if application.SamePath(filepath.Dir(path), destDir) {
		return &application.MoveError{
			Source: path,
			Dest:   destDir,
			Reason: "already in that folder",
		}
	}
	if application.IsWithin(path, destDir) {
		return &application.MoveError{
			Source: path,
			Dest:   destDir,
			Reason: "cannot move a folder into itself",
		}
	}
	return nil
}

// CopyCommand copies a note or folder into another folder
type CopyCommand struct {
	repo    ports.VaultRepository
	echo    Echo
	Root    string
	Path    string
	DestDir string // defaults to Root
}

// NewCopyCommand creates a new CopyCommand
func NewCopyCommand(repo ports.VaultRepository, echo Echo, root, path, destDir string) *CopyCommand {
	return &CopyCommand{
		repo:    repo,
		echo:    echo,
		Root:    root,
		Path:    path,
		DestDir: destDir,
	}
}

func (c *CopyCommand) dest() string {
	return destOrRoot(c.Root, c.DestDir)
}

// Validate checks if the copy operation is valid
func (c *CopyCommand) Validate() error {
	if err := validateTransfer(c.Root, c.Path, c.dest()); err != nil {
		return err
	}
	if application.IsWithin(c.Path, c.dest()) {
		return &application.ValidationError{
			Field:   "destDir",
			Message: "cannot copy a folder into itself",
		}
	}
	return nil
}

// Execute runs the copy command
func (c *CopyCommand) Execute(ctx context.Context) (*MoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	echo := c.echo
	echo.Count = c.expectedEvents(echo.Count)

	var entry *domain.Entry
	err := echo.guard(func() (err error) {
		entry, err = c.repo.Copy(c.Path, c.dest())
		return err
	})
	if err != nil {
		return nil, application.Wrap("copy", c.Path, err)
	}

	return &MoveResult{
		OriginalPath: c.Path,
		Entry:        entry,
		Message:      fmt.Sprintf("Copied %s to %s", entry.Name, filepath.Base(c.dest())),
	}, nil
}

// expectedEvents caps n at the events the copy is sure to raise. An empty
// note is created without a write, and a folder's content may land before
// the watcher has registered the new folder, so both count as one create.
func (c *CopyCommand) expectedEvents(n int) int {
	entry, err := c.repo.Info(c.Path)
	if err != nil {
		return n
	}
	if entry.IsDir {
		return min(n, 1)
	}
	content, err := c.repo.ReadNote(c.Path)
	if err == nil && content == "" {
		return min(n, 1)
	}
	return n
}

func destOrRoot(root, dest string) string {
	if strings.TrimSpace(dest) == "" {
		return root
	}
	return dest
}

// validateTransfer holds the checks shared by move and copy
func validateTransfer(root, path, dest string) error {
	if err := application.ValidateRequired("root", root); err != nil {
		return err
	}
	if err := application.ValidateWithinVault("path", root, path); err != nil {
		return err
	}
	if application.SamePath(root, path) {
		return &application.ValidationError{
			Field:   "path",
			Message: "the vault root cannot be moved or copied",
		}
	}
	return application.ValidateWithinVault("destDir", root, dest)
}
