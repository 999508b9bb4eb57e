package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// NoteExt is the extension of note files inside a vault
const NoteExt = ".md"

// Entry represents a note or folder in the vault
type Entry struct {
	Name     string    `json:"name" yaml:"name"`
	Path     string    `json:"path" yaml:"path"` // Absolute path
	IsDir    bool      `json:"isDirectory" yaml:"isDirectory"`
	Created  time.Time `json:"created" yaml:"created"`
	Modified time.Time `json:"modified" yaml:"modified"`
	Children []*Entry  `json:"children,omitempty" yaml:"children,omitempty"` // Only populated for directories
}

// IsNote reports whether the entry is a markdown note
func (e *Entry) IsNote() bool {
	return !e.IsDir && strings.HasSuffix(strings.ToLower(e.Path), NoteExt)
}

// Flatten returns the entry and all of its descendants in depth-first order
func (e *Entry) Flatten() []*Entry {
	var result []*Entry
	e.flattenRecursive(&result)
	return result
}

func (e *Entry) flattenRecursive(result *[]*Entry) {
	*result = append(*result, e)
	for _, child := range e.Children {
		child.flattenRecursive(result)
	}
}

// Find returns the entry with the given path, or nil
func (e *Entry) Find(path string) *Entry {
	if e.Path == path {
		return e
	}
	for _, child := range e.Children {
		if found := child.Find(path); found != nil {
			return found
		}
	}
	return nil
}

// DisplayName strips the note extension from a file name
func DisplayName(fileName string, isDir bool) string {
	if isDir {
		return fileName
	}
	if strings.HasSuffix(strings.ToLower(fileName), NoteExt) {
		return fileName[:len(fileName)-len(NoteExt)]
	}
	return fileName
}

// IsHidden reports whether a file name is hidden (dot-prefixed)
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// SortMode selects the ordering applied to every directory level of a scan
type SortMode string

const (
	SortNone         SortMode = ""
	SortNameAsc      SortMode = "name-asc"
	SortNameDesc     SortMode = "name-desc"
	SortCreatedAsc   SortMode = "created-asc"
	SortCreatedDesc  SortMode = "created-desc"
	SortModifiedAsc  SortMode = "modified-asc"
	SortModifiedDesc SortMode = "modified-desc"
)

// SortModes lists every ordering in display order
var SortModes = []SortMode{
	SortNameAsc, SortNameDesc,
	SortCreatedAsc, SortCreatedDesc,
	SortModifiedAsc, SortModifiedDesc,
}

// ParseSortMode converts a configuration string into a SortMode
func ParseSortMode(s string) (SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return SortNone, nil
	}
	for _, m := range SortModes {
		if string(m) == s {
			return m, nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort mode: %s", s)
}

func (m SortMode) descending() bool {
	return strings.HasSuffix(string(m), "-desc")
}

// compareAsc orders two siblings ascending by the mode's key.
// Ties fall back to name then path so that descending is an exact reverse.
func (m SortMode) compareAsc(a, b *Entry) int {
	var c int
	switch m {
	case SortCreatedAsc, SortCreatedDesc:
		c = a.Created.Compare(b.Created)
	case SortModifiedAsc, SortModifiedDesc:
		c = a.Modified.Compare(b.Modified)
	}
	if c != 0 {
		return c
	}
	if c = strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.Path, b.Path)
}

// SortEntries orders the children of every directory level under root
func SortEntries(root *Entry, mode SortMode) {
	if root == nil || mode == SortNone {
		return
	}
	slices.SortFunc(root.Children, func(a, b *Entry) int {
		c := mode.compareAsc(a, b)
		if mode.descending() {
			return -c
		}
		return c
	})
	for _, child := range root.Children {
		if child.IsDir {
			SortEntries(child, mode)
		}
	}
}

// OpenedFile is the note currently open in the editor
type OpenedFile struct {
	Path    string
	Content string
}
