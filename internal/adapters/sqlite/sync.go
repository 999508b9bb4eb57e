package sqlite

import (
	"fmt"
	"path/filepath"
	"time"

	"mdvault/internal/domain"
)

// SyncFull replaces the whole index with the given scan
func (idx *Index) SyncFull(root *domain.Entry) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	if root == nil {
		return nil, fmt.Errorf("sync: no tree to index")
	}

	before, err := idx.Count()
	if err != nil {
		return nil, err
	}

	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM nodes`); err != nil {
		return nil, err
	}
	stats.NodesDeleted = before

	t := &indexTx{tx: tx}
	for _, n := range flattenNodes(root, filepath.Dir(root.Path)) {
		if err := t.UpsertNode(n); err != nil {
			return nil, fmt.Errorf("sync %s: %w", n.Path, err)
		}
		stats.NodesAdded++
	}

	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('vault_path_hash', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?);
	`, schemaVersion, hashVaultPath(idx.vaultPath), fmt.Sprint(time.Now().Unix())); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// UpsertEntry indexes an entry and its subtree
func (idx *Index) UpsertEntry(e *domain.Entry) error {
	tx, err := idx.BeginTx()
	if err != nil {
		return err
	}
	for _, n := range flattenNodes(e, filepath.Dir(e.Path)) {
		if err := tx.UpsertNode(n); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// DeleteEntry removes an entry and its subtree
func (idx *Index) DeleteEntry(path string) error {
	tx, err := idx.BeginTx()
	if err != nil {
		return err
	}
	if err := tx.DeleteNode(path); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func flattenNodes(e *domain.Entry, parent string) []*domain.IndexNode {
	nodes := []*domain.IndexNode{domain.NewIndexNode(e, parent)}
	for _, child := range e.Children {
		nodes = append(nodes, flattenNodes(child, e.Path)...)
	}
	return nodes
}
