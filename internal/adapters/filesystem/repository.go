package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/djherbis/times"

	"mdvault/internal/domain"
	"mdvault/internal/ports"
)

const (
	untitledNote   = "Untitled"
	untitledFolder = "Untitled"
)

// Repository implements ports.VaultRepository using the filesystem
type Repository struct{}

var _ ports.VaultRepository = (*Repository)(nil)

// NewRepository creates a new filesystem repository
func NewRepository() *Repository {
	return &Repository{}
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Scan builds the entry tree rooted at root, skipping hidden entries.
// Unreadable subfolders are kept without children.
func (r *Repository) Scan(root string, mode domain.SortMode) (*domain.Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root is not a directory: %s", root)
	}

	entry := newEntry(root, info)
	if err := r.loadChildren(entry); err != nil {
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}
	domain.SortEntries(entry, mode)
	return entry, nil
}

// Info returns the entry at path. Folders carry their full subtree.
func (r *Repository) Info(path string) (*domain.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	entry := newEntry(path, info)
	if entry.IsDir {
		// best effort, the entry itself is what was asked for
		_ = r.loadChildren(entry)
	}
	return entry, nil
}

func (r *Repository) loadChildren(dir *domain.Entry) error {
	dirEntries, err := os.ReadDir(dir.Path)
	if err != nil {
		return err
	}

	dir.Children = make([]*domain.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if domain.IsHidden(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue // removed while reading
		}

		child := newEntry(filepath.Join(dir.Path, de.Name()), info)
		if child.IsDir {
			_ = r.loadChildren(child)
		}
		dir.Children = append(dir.Children, child)
	}
	return nil
}

func newEntry(path string, info fs.FileInfo) *domain.Entry {
	created, modified := timestamps(path, info)
	e := &domain.Entry{
		Name:     domain.DisplayName(info.Name(), info.IsDir()),
		Path:     path,
		IsDir:    info.IsDir(),
		Created:  created,
		Modified: modified,
	}
	if e.IsDir {
		e.Children = []*domain.Entry{}
	}
	return e
}

// timestamps prefers the birth time for Created, then the change time
func timestamps(path string, info fs.FileInfo) (created, modified time.Time) {
	modified = info.ModTime()
	ts, err := times.Stat(path)
	if err != nil {
		return modified, modified
	}
	switch {
	case ts.HasBirthTime():
		return ts.BirthTime(), modified
	case ts.HasChangeTime():
		return ts.ChangeTime(), modified
	default:
		return modified, modified
	}
}

// CreateNote creates an empty "Untitled.md" (or "Untitled N.md") in parent
func (r *Repository) CreateNote(parent string) (*domain.Entry, error) {
	if err := requireDir(parent); err != nil {
		return nil, err
	}

	for i := 0; ; i++ {
		path := filepath.Join(parent, numbered(untitledNote, i)+domain.NoteExt)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create note: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("failed to create note: %w", err)
		}
		return r.Info(path)
	}
}

// CreateFolder creates a folder named name in parent, numbering it when taken
func (r *Repository) CreateFolder(parent, name string) (*domain.Entry, error) {
	if err := requireDir(parent); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = untitledFolder
	}

	for i := 0; ; i++ {
		path := filepath.Join(parent, numbered(name, i))
		err := os.Mkdir(path, 0755)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create folder: %w", err)
		}
		return r.Info(path)
	}
}

func numbered(base string, i int) string {
	if i == 0 {
		return base
	}
	return base + " " + strconv.Itoa(i)
}

// Delete removes a note or a folder with everything below it
func (r *Repository) Delete(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return fmt.Errorf("not found: %w", err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}

// Rename renames path within its folder.
// A note keeps its extension when newName has none.
func (r *Repository) Rename(path, newName string) (*domain.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("source not found: %w", err)
	}

	newName = strings.TrimSpace(newName)
	if !info.IsDir() && strings.EqualFold(filepath.Ext(path), domain.NoteExt) && filepath.Ext(newName) == "" {
		newName += domain.NoteExt
	}

	dst := filepath.Join(filepath.Dir(path), newName)
	if err := checkFree(path, dst); err != nil {
		return nil, err
	}
	if err := os.Rename(path, dst); err != nil {
		return nil, fmt.Errorf("failed to rename: %w", err)
	}
	return r.Info(dst)
}

// Move moves path into destDir, keeping its name
func (r *Repository) Move(path, destDir string) (*domain.Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("source not found: %w", err)
	}
	if err := requireDir(destDir); err != nil {
		return nil, err
	}

	dst := filepath.Join(destDir, filepath.Base(path))
	if err := checkFree(path, dst); err != nil {
		return nil, err
	}

	err := os.Rename(path, dst)
	if errors.Is(err, syscall.EXDEV) {
		// Different device: copy then remove. When only the removal fails the
		// copy's create events have already fired; the caller withdraws its
		// echoes, so they are taken as external and end in a rescan.
		if err = copyTree(path, dst); err == nil {
			err = os.RemoveAll(path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to move: %w", err)
	}
	return r.Info(dst)
}

// Copy copies a note or a folder tree into destDir
func (r *Repository) Copy(path, destDir string) (*domain.Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("source not found: %w", err)
	}
	if err := requireDir(destDir); err != nil {
		return nil, err
	}

	dst := filepath.Join(destDir, filepath.Base(path))
	if _, err := os.Lstat(dst); err == nil {
		return nil, fmt.Errorf("%s already exists: %w", dst, fs.ErrExist)
	}
	if err := copyTree(path, dst); err != nil {
		return nil, fmt.Errorf("failed to copy: %w", err)
	}
	return r.Info(dst)
}

// ReadNote returns the text of a note
func (r *Repository) ReadNote(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read note: %w", err)
	}
	return string(data), nil
}

// WriteNote replaces the text of a note
func (r *Repository) WriteNote(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}
	return nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("folder not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a folder: %s", path)
	}
	return nil
}

// checkFree fails when dst is taken by anything other than src itself.
// The exception allows case-only renames on case-insensitive file systems.
func checkFree(src, dst string) error {
	dstInfo, err := os.Lstat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if srcInfo, err := os.Lstat(src); err == nil && src != dst && os.SameFile(srcInfo, dstInfo) {
		return nil
	}
	return fmt.Errorf("%s already exists: %w", dst, fs.ErrExist)
}

func copyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.CopyFS(dst, os.DirFS(src))
	}
	return copyFile(src, dst, info.Mode().Perm())
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
