package views

import (
	"path/filepath"
	"slices"

	"mdvault/internal/domain"
)

// Row is one visible line of the tree
type Row struct {
	Entry *domain.Entry
	Depth int
}

// TreeState is the browser's mirror of the vault: the entry tree, which
// folders are expanded and where the cursor is. Full folder listings
// replace the tree; granular notifications patch single entries.
type TreeState struct {
	root     *domain.Entry
	sort     domain.SortMode
	expanded map[string]bool
	rows     []Row
	cursor   int
}

// NewTreeState creates an empty tree
func NewTreeState(sort domain.SortMode) *TreeState {
	return &TreeState{
		sort:     sort,
		expanded: make(map[string]bool),
	}
}

// Root returns the vault entry, or nil before the first listing
func (t *TreeState) Root() *domain.Entry {
	return t.root
}

// Rows returns the visible rows
func (t *TreeState) Rows() []Row {
	return t.rows
}

// Cursor returns the index of the selected row
func (t *TreeState) Cursor() int {
	return t.cursor
}

// Selected returns the entry under the cursor, or nil
func (t *TreeState) Selected() *domain.Entry {
	if t.cursor >= 0 && t.cursor < len(t.rows) {
		return t.rows[t.cursor].Entry
	}
	return nil
}

// SelectedFolder returns the folder new entries go into: the selected
// folder itself, the folder holding the selected note, or the root.
func (t *TreeState) SelectedFolder() string {
	sel := t.Selected()
	switch {
	case sel == nil && t.root != nil:
		return t.root.Path
	case sel == nil:
		return ""
	case sel.IsDir:
		return sel.Path
	default:
		return filepath.Dir(sel.Path)
	}
}

// SetRoot replaces the whole tree, keeping expansion and selection by path.
// The tree is put in the browser's order whatever order it arrived in.
func (t *TreeState) SetRoot(root *domain.Entry) {
	if t.root != nil && root != nil && t.root.Path != root.Path {
		t.expanded = make(map[string]bool)
	}
	t.root = root
	domain.SortEntries(t.root, t.sort)
	t.refresh()
}

// SetSort reorders the tree
func (t *TreeState) SetSort(mode domain.SortMode) {
	t.sort = mode
	domain.SortEntries(t.root, mode)
	t.refresh()
}

// Upsert inserts entry, or replaces the entry with the same path.
// Entries whose folder is not in the tree are ignored; the next full
// listing brings them in.
func (t *TreeState) Upsert(entry *domain.Entry) {
	parent := t.find(filepath.Dir(entry.Path))
	if parent == nil || !parent.IsDir {
		return
	}

	if entry.IsDir {
		domain.SortEntries(entry, t.sort)
	}
	i := slices.IndexFunc(parent.Children, func(c *domain.Entry) bool { return c.Path == entry.Path })
	if i >= 0 {
		parent.Children[i] = entry
	} else {
		parent.Children = append(parent.Children, entry)
	}
	domain.SortEntries(parent, t.sort)
	t.refresh()
}

// Remove drops the entry at path with everything below it
func (t *TreeState) Remove(path string) {
	parent := t.find(filepath.Dir(path))
	if parent == nil {
		return
	}
	parent.Children = slices.DeleteFunc(parent.Children, func(c *domain.Entry) bool { return c.Path == path })
	for p := range t.expanded {
		if p == path || isBelow(path, p) {
			delete(t.expanded, p)
		}
	}
	t.refresh()
}

// Reveal expands the ancestors of path and selects it
func (t *TreeState) Reveal(path string) bool {
	if t.root == nil || t.root.Find(path) == nil {
		return false
	}
	for dir := filepath.Dir(path); isBelow(t.root.Path, dir); dir = filepath.Dir(dir) {
		t.expanded[dir] = true
	}
	t.rebuild()
	for i, row := range t.rows {
		if row.Entry.Path == path {
			t.cursor = i
			return true
		}
	}
	return false
}

// Up moves the cursor up
func (t *TreeState) Up() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// Down moves the cursor down
func (t *TreeState) Down() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
	}
}

// Expand opens the selected folder
func (t *TreeState) Expand() {
	if sel := t.Selected(); sel != nil && sel.IsDir && !t.expanded[sel.Path] {
		t.expanded[sel.Path] = true
		t.refresh()
	}
}

// Collapse closes the selected folder, or moves to the parent folder
func (t *TreeState) Collapse() {
	sel := t.Selected()
	if sel == nil {
		return
	}
	if sel.IsDir && t.expanded[sel.Path] {
		delete(t.expanded, sel.Path)
		t.refresh()
		return
	}
	parent := filepath.Dir(sel.Path)
	for i, row := range t.rows {
		if row.Entry.Path == parent {
			t.cursor = i
			return
		}
	}
}

// Toggle expands or collapses the selected folder
func (t *TreeState) Toggle() {
	sel := t.Selected()
	if sel == nil || !sel.IsDir {
		return
	}
	if t.expanded[sel.Path] {
		delete(t.expanded, sel.Path)
	} else {
		t.expanded[sel.Path] = true
	}
	t.refresh()
}

// IsExpanded reports whether the folder at path is open
func (t *TreeState) IsExpanded(path string) bool {
	return t.expanded[path]
}

func (t *TreeState) find(path string) *domain.Entry {
	if t.root == nil {
		return nil
	}
	return t.root.Find(path)
}

// refresh rebuilds the rows and keeps the cursor on the same entry
func (t *TreeState) refresh() {
	var selected string
	if sel := t.Selected(); sel != nil {
		selected = sel.Path
	}

	t.rebuild()

	if selected != "" {
		for i, row := range t.rows {
			if row.Entry.Path == selected {
				t.cursor = i
				return
			}
		}
	}
	// Clamp cursor
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *TreeState) rebuild() {
	t.rows = t.rows[:0]
	if t.root == nil {
		return
	}
	t.appendRows(t.root, 0)
}

func (t *TreeState) appendRows(dir *domain.Entry, depth int) {
	for _, child := range dir.Children {
		t.rows = append(t.rows, Row{Entry: child, Depth: depth})
		if child.IsDir && t.expanded[child.Path] {
			t.appendRows(child, depth+1)
		}
	}
}

// isBelow reports whether path lies strictly below dir
func isBelow(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != "." && rel != ".." && !filepath.IsAbs(rel) &&
		!(len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator))
}
