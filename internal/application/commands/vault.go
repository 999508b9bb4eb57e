package commands

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"mdvault/internal/application"
	"mdvault/internal/config"
	"mdvault/internal/domain"
	"mdvault/internal/logger"
	"mdvault/internal/ports"
)

// VaultOptions holds the optional collaborators of a Vault
type VaultOptions struct {
	Echoes     ports.EchoRecorder // nil disables echo bookkeeping
	Counts     config.Echoes // zero value selects config.DefaultEchoes
	Reconciler ports.Reconciler // nil runs without live change detection
	Index      ports.VaultIndex // nil makes search scan the vault
	Sort       domain.SortMode
	Log        *logger.Logger
}

// Vault is the entry point the presentation layers talk to. It runs the
// commands against the session's vault and reports outcomes through the
// notifier. Granular notifications for mutations arrive via the reconciler
// once their watcher events are seen, so mutations do not notify directly.
type Vault struct {
	repo     ports.VaultRepository
	session  *application.Session
	notifier ports.Notifier
	opts     VaultOptions

	mu   sync.RWMutex
	sort domain.SortMode
}

// NewVault creates a Vault facade
func NewVault(repo ports.VaultRepository, session *application.Session, notifier ports.Notifier, opts VaultOptions) *Vault {
	if opts.Log == nil {
		opts.Log = logger.Discard()
	}
	if opts.Counts == (config.Echoes{}) {
		opts.Counts = config.DefaultEchoes()
	}
	return &Vault{
		repo:     repo,
		session:  session,
		notifier: notifier,
		opts:     opts,
		sort:     opts.Sort,
	}
}

// Session returns the vault session
func (v *Vault) Session() *application.Session {
	return v.session
}

// Sort returns the ordering applied to folder listings
func (v *Vault) Sort() domain.SortMode {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sort
}

// SetSort changes the ordering applied to folder listings
func (v *Vault) SetSort(mode domain.SortMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = mode
}

func (v *Vault) echo(n int) Echo {
	return Echo{Recorder: v.opts.Echoes, Count: n}
}

// OpenVault scans root, makes it the session's vault and points the watcher
// at it. A watcher failure is returned together with the tree: the vault is
// usable, only external changes go unnoticed.
func (v *Vault) OpenVault(ctx context.Context, root string) (*domain.Entry, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, application.Wrap("open vault", root, err)
	}

	tree, err := NewListCommand(v.repo, abs, v.Sort()).Execute(ctx)
	if err != nil {
		return nil, v.fail("open vault", abs, err)
	}

	v.session.SetRoot(abs)
	v.opts.Log.VaultOpened(abs, len(tree.Flatten())-1)
	v.notifier.FolderContent(tree)

	if v.opts.Reconciler != nil {
		if err := v.opts.Reconciler.SetRoot(ctx, abs); err != nil {
			return tree, err
		}
	}
	return tree, nil
}

// FolderContent rescans the open vault and sends the full tree
func (v *Vault) FolderContent(ctx context.Context) (*domain.Entry, error) {
	root, err := v.session.Root()
	if err != nil {
		return nil, err
	}
	tree, err := NewListCommand(v.repo, root, v.Sort()).Execute(ctx)
	if err != nil {
		return nil, err
	}
	v.notifier.FolderContent(tree)
	return tree, nil
}

// CreateNote creates an untitled note in parent (the vault root when empty)
func (v *Vault) CreateNote(ctx context.Context, parent string) (*CreateResult, error) {
	root, err := v.session.Root()
	if err != nil {
		return nil, err
	}
	res, err := NewCreateNoteCommand(v.repo, v.echo(v.opts.Counts.Create), root, parent).Execute(ctx)
	if err != nil {
		return nil, v.fail("create note", parent, err)
	}
	return res, nil
}

// CreateFolder creates a folder in parent (the vault root when empty)
func (v *Vault) CreateFolder(ctx context.Context, parent, name string) (*CreateResult, error) {
	root, err := v.session.Root()
	if err != nil {
		return nil, err
	}
	res, err := NewCreateFolderCommand(v.repo, v.echo(v.opts.Counts.Create), root, parent, name).Execute(ctx)
	if err != nil {
		return nil, v.fail("create folder", parent, err)
	}
	return res, nil
}

// Delete removes a note or folder, closing the opened note if it was inside
func (v *Vault) Delete(ctx context.Context, path string) (*DeleteResult, error) {
	root, err := v.session.Root()
	if err != nil {
		return nil, err
	}
	res, err := NewDeleteCommand(v.repo, v.echo(v.opts.Counts.Delete), root, path).Execute(ctx)
	if err != nil {
		return nil, v.fail("delete", path, err)
	}
	v.session.CloseIfWithin(path)
	return res, nil
}

// Rename renames a note or folder. On failure the source entry is sent
// again so the presentation can revert an optimistic edit.
func (v *Vault) Rename(ctx context.Context, path, newName string) (*RenameResult, error) {
	root, err := v.session.Root()
	if err != nil {
		return nil, err
	}
	res, err := NewRenameCommand(v.repo, v.echo(v.opts.Counts.Rename), root, path, newName).Execute(ctx)
	if err != nil {
		v.fail("rename", path, err)
		if entry, infoErr := v.repo.Info(path); infoErr == nil {
			v.notifier.EntryUpdated(entry)
		}
		return nil, err
	}
	v.session.Relocate(path, res.Entry.Path)
	return res, nil
}

// Move moves a note or folder into destDir (the vault root when empty)
func (v *Vault) Move(ctx context.Context, path, destDir string) (*MoveResult, error) {
	root, err := v.session.Root()
	if err != nil {
		return nil, err
	}
	res, err := NewMoveCommand(v.repo, v.echo(v.opts.Counts.Move), root, path, destDir).Execute(ctx)
	if err != nil {
		return nil, v.fail("move", path, err)
	}
	v.session.Relocate(path, res.Entry.Path)
	return res, nil
}

// Copy copies a note or folder into destDir (the vault root when empty)
func (v *Vault) Copy(ctx context.Context, path, destDir string) (*MoveResult, error) {
	root, err := v.session.Root()
	if err != nil {
		return nil, err
	}
	res, err := NewCopyCommand(v.repo, v.echo(v.opts.Counts.Copy), root, path, destDir).Execute(ctx)
	if err != nil {
		return nil, v.fail("copy", path, err)
	}
	return res, nil
}

// OpenNote reads a note, makes it the opened note and sends its document
func (v *Vault) OpenNote(ctx context.Context, path string) (*OpenNoteResult, error) {
	res, err := NewOpenNoteCommand(v.repo, v.session, path).Execute(ctx)
	if err != nil {
		return nil, v.fail("open", path, err)
	}
	v.notifier.NoteOpened(res.Name, res.Document)
	return res, nil
}

// SaveNote writes a transport-form document to the opened note
func (v *Vault) SaveNote(ctx context.Context, document []byte) (*SaveNoteResult, error) {
	res, err := NewSaveNoteCommand(v.repo, v.echo(v.opts.Counts.Save), v.session, document).Execute(ctx)
	if err != nil {
		return nil, v.fail("save", "opened note", err)
	}
	return res, nil
}

// CloseNote forgets the opened note
func (v *Vault) CloseNote(ctx context.Context) error {
	return NewCloseNoteCommand(v.session).Execute(ctx)
}

// Search finds entries whose name fuzzily matches query
func (v *Vault) Search(ctx context.Context, query string) ([]SearchResult, error) {
	root, err := v.session.Root()
	if err != nil {
		return nil, err
	}
	return NewSearchCommand(v.opts.Index, v.repo, root, query).Execute(ctx)
}

// fail records a failed operation in the log and returns err
func (v *Vault) fail(op, path string, err error) error {
	if !errors.Is(err, application.ErrNoVault) {
		v.opts.Log.OperationFailed(op, path, err)
	}
	return err
}
