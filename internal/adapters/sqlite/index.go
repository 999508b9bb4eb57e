package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"

	"mdvault/internal/domain"
	"mdvault/internal/ports"
)

const schemaVersion = "2"

// Index implements ports.VaultIndex using SQLite
type Index struct {
	db        *sql.DB
	vaultPath string
	dbPath    string
}

// Ensure Index implements VaultIndex
var _ ports.VaultIndex = (*Index)(nil)

// NewIndex creates a new SQLite index. An empty dbPath stores the database
// under the XDG data directory, one file per vault.
func NewIndex(dbPath string) *Index {
	return &Index{dbPath: dbPath}
}

// Open initializes the index for the given vault path
func (idx *Index) Open(vaultPath string) error {
	idx.vaultPath = vaultPath
	if idx.dbPath == "" {
		idx.dbPath = DatabasePath(vaultPath)
	}

	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+idx.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// the old layout is simply dropped, the index is a cache
	var version string
	_ = db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	if version != "" && version != schemaVersion {
		if _, err := db.Exec(`DROP TABLE IF EXISTS nodes; DROP TABLE IF EXISTS meta;`); err != nil {
			db.Close()
			return fmt.Errorf("failed to reset database: %w", err)
		}
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS nodes (
			path TEXT PRIMARY KEY,
			parent TEXT NOT NULL,
			name TEXT NOT NULL,
			is_dir INTEGER NOT NULL,
			created INTEGER NOT NULL,
			modified INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent);
		CREATE INDEX IF NOT EXISTS idx_nodes_name ON nodes(name);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Path returns the database file location
func (idx *Index) Path() string {
	return idx.dbPath
}

// NeedsFullRebuild returns true if the index was built by another schema
// or for another vault
func (idx *Index) NeedsFullRebuild() bool {
	var version, vaultHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'vault_path_hash'").Scan(&vaultHash)

	return version != schemaVersion || vaultHash != hashVaultPath(idx.vaultPath)
}

// DatabasePath returns the default database location for a vault
func DatabasePath(vaultPath string) string {
	return filepath.Join(xdg.DataHome, "mdvault", hashVaultPath(vaultPath)+".db")
}

// hashVaultPath returns a short hash of the vault path
func hashVaultPath(vaultPath string) string {
	h := sha256.Sum256([]byte(vaultPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

const nodeColumns = `path, parent, name, is_dir, created, modified`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (*domain.IndexNode, error) {
	var node domain.IndexNode
	if err := row.Scan(&node.Path, &node.Parent, &node.Name, &node.IsDir, &node.Created, &node.Modified); err != nil {
		return nil, err
	}
	return &node, nil
}

// GetNode retrieves a node by path, or nil when it is not indexed
func (idx *Index) GetNode(path string) (*domain.IndexNode, error) {
	node, err := scanNode(idx.db.QueryRow(`SELECT `+nodeColumns+` FROM nodes WHERE path = ?`, path))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return node, err
}

// Children returns the direct children of a folder ordered by name
func (idx *Index) Children(parent string) ([]domain.IndexNode, error) {
	return idx.query(`SELECT `+nodeColumns+` FROM nodes WHERE parent = ? ORDER BY name`, parent)
}

// Search returns nodes whose name contains the query's characters in order.
// Ranking is left to the caller.
func (idx *Index) Search(query string) ([]domain.IndexNode, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return idx.query(`SELECT `+nodeColumns+` FROM nodes WHERE name LIKE ? ESCAPE '\' ORDER BY name`, subsequencePattern(query))
}

// Count returns the number of indexed nodes
func (idx *Index) Count() (int, error) {
	var n int
	err := idx.db.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&n)
	return n, err
}

func (idx *Index) query(q string, args ...any) ([]domain.IndexNode, error) {
	rows, err := idx.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []domain.IndexNode
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *node)
	}
	return nodes, rows.Err()
}

// subsequencePattern turns "abc" into "%a%b%c%"
func subsequencePattern(query string) string {
	var b strings.Builder
	b.WriteByte('%')
	for _, r := range query {
		switch r {
		case '%', '_', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
		b.WriteByte('%')
	}
	return b.String()
}

// escapeLike escapes LIKE wildcards in a literal prefix
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// BeginTx starts a new transaction
func (idx *Index) BeginTx() (ports.IndexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}
