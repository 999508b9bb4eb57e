package domain

import "time"

// IndexNode represents a cached vault entry
type IndexNode struct {
	Path     string // Absolute path (primary key)
	Parent   string // Absolute path of the containing folder
	Name     string // Display name
	IsDir    bool
	Created  int64 // Unix timestamps
	Modified int64
}

// NewIndexNode flattens an entry into its cached form
func NewIndexNode(e *Entry, parent string) *IndexNode {
	return &IndexNode{
		Path:     e.Path,
		Parent:   parent,
		Name:     e.Name,
		IsDir:    e.IsDir,
		Created:  e.Created.Unix(),
		Modified: e.Modified.Unix(),
	}
}

// SyncStats holds statistics from a sync operation
type SyncStats struct {
	NodesAdded   int
	NodesDeleted int
	Duration     time.Duration
}
