package ports

import "mdvault/internal/domain"

// VaultRepository defines the interface for vault storage operations.
// Paths are absolute; a parent or destination of "" is not accepted here,
// callers resolve defaults against the vault root first.
type VaultRepository interface {
	// Scanning
	Scan(root string, mode domain.SortMode) (*domain.Entry, error)
	Info(path string) (*domain.Entry, error)

	// Create operations
	CreateNote(parent string) (*domain.Entry, error)
	CreateFolder(parent, name string) (*domain.Entry, error)

	// Mutations
	Delete(path string) error
	Rename(path, newName string) (*domain.Entry, error)
	Move(path, destDir string) (*domain.Entry, error)
	Copy(path, destDir string) (*domain.Entry, error)

	// Note content
	ReadNote(path string) (string, error)
	WriteNote(path, content string) error
}
