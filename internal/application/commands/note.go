package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"mdvault/internal/application"
	"mdvault/internal/codec"
	"mdvault/internal/domain"
	"mdvault/internal/ports"
)

// OpenNoteResult contains the opened note and its parsed document
type OpenNoteResult struct {
	Path     string
	Name     string
	Content  string
	Document *domain.Root
	Message  string
}

// OpenNoteCommand reads a note and makes it the opened note of the session
type OpenNoteCommand struct {
	repo    ports.VaultRepository
	session *application.Session
	Path    string
}

// NewOpenNoteCommand creates a new OpenNoteCommand
func NewOpenNoteCommand(repo ports.VaultRepository, session *application.Session, path string) *OpenNoteCommand {
	return &OpenNoteCommand{
		repo:    repo,
		session: session,
		Path:    path,
	}
}

// Validate checks if the open operation is valid
func (c *OpenNoteCommand) Validate() error {
	root, err := c.session.Root()
	if err != nil {
		return err
	}
	return application.ValidateWithinVault("path", root, c.Path)
}

// Execute runs the open note command
func (c *OpenNoteCommand) Execute(ctx context.Context) (*OpenNoteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	content, err := c.repo.ReadNote(c.Path)
	if err != nil {
		return nil, application.Wrap("open", c.Path, err)
	}
	c.session.Open(c.Path, content)

	name := domain.DisplayName(filepath.Base(c.Path), false)
	return &OpenNoteResult{
		Path:     c.Path,
		Name:     name,
		Content:  content,
		Document: codec.MarkdownToTree(content),
		Message:  fmt.Sprintf("Opened %s", name),
	}, nil
}

// SaveNoteResult contains the result of saving the opened note
type SaveNoteResult struct {
	Path    string
	Content string
	Message string
}

// SaveNoteCommand writes an editor document to the opened note as Markdown
type SaveNoteCommand struct {
	repo     ports.VaultRepository
	echo     Echo
	session  *application.Session
	Document []byte // transport JSON form
}

// NewSaveNoteCommand creates a new SaveNoteCommand
func NewSaveNoteCommand(repo ports.VaultRepository, echo Echo, session *application.Session, document []byte) *SaveNoteCommand {
	return &SaveNoteCommand{
		repo:     repo,
		echo:     echo,
		session:  session,
		Document: document,
	}
}

// Validate checks if the save operation is valid
func (c *SaveNoteCommand) Validate() error {
	if _, err := c.session.Opened(); err != nil {
		return err
	}
	if len(c.Document) == 0 {
		return &application.ValidationError{
			Field:   "document",
			Message: "document is required",
		}
	}
	return nil
}

// Execute runs the save note command
func (c *SaveNoteCommand) Execute(ctx context.Context) (*SaveNoteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opened, err := c.session.Opened()
	if err != nil {
		return nil, err
	}

	root, err := codec.DecodeDocument(c.Document)
	if err != nil {
		return nil, application.Wrap("save", opened.Path, err)
	}
	content := codec.TreeToMarkdown(root)

	if err := c.echo.guard(func() error { return c.repo.WriteNote(opened.Path, content) }); err != nil {
		return nil, application.Wrap("save", opened.Path, err)
	}
	c.session.UpdateOpened(content)

	return &SaveNoteResult{
		Path:    opened.Path,
		Content: content,
		Message: fmt.Sprintf("Saved %s", domain.DisplayName(filepath.Base(opened.Path), false)),
	}, nil
}

// CloseNoteCommand forgets the opened note
type CloseNoteCommand struct {
	session *application.Session
}

// NewCloseNoteCommand creates a new CloseNoteCommand
func NewCloseNoteCommand(session *application.Session) *CloseNoteCommand {
	return &CloseNoteCommand{session: session}
}

// Execute runs the close note command
func (c *CloseNoteCommand) Execute(ctx context.Context) error {
	c.session.CloseNote()
	return nil
}
