package sqlite

import (
	"database/sql"
	"path/filepath"

	"mdvault/internal/domain"
	"mdvault/internal/ports"
)

// indexTx implements ports.IndexTx
type indexTx struct {
	tx *sql.Tx
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// UpsertNode inserts or updates a node
func (t *indexTx) UpsertNode(node *domain.IndexNode) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO nodes (`+nodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, node.Path, node.Parent, node.Name, node.IsDir, node.Created, node.Modified)
	return err
}

// DeleteNode removes a node and every node below it
func (t *indexTx) DeleteNode(path string) error {
	prefix := escapeLike(path+string(filepath.Separator)) + "%"
	_, err := t.tx.Exec(`DELETE FROM nodes WHERE path = ? OR path LIKE ? ESCAPE '\'`, path, prefix)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
