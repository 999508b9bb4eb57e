package ports

import "mdvault/internal/domain"

// VaultIndex provides cached access to the vault structure.
// Lookups go through database indexes instead of walking the tree.
type VaultIndex interface {
	// Lifecycle
	Open(vaultPath string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	SyncFull(root *domain.Entry) (*domain.SyncStats, error)

	// Node queries
	GetNode(path string) (*domain.IndexNode, error)
	Children(parent string) ([]domain.IndexNode, error)
	Search(query string) ([]domain.IndexNode, error)
	Count() (int, error)

	// Batch updates
	BeginTx() (IndexTx, error)
}

// IndexTx represents a transaction for atomic cache updates
type IndexTx interface {
	UpsertNode(node *domain.IndexNode) error
	// DeleteNode removes the node and everything below it
	DeleteNode(path string) error

	Commit() error
	Rollback() error
}
