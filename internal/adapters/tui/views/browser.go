package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mdvault/internal/adapters/notify"
	"mdvault/internal/adapters/tui/styles"
	"mdvault/internal/application/commands"
	"mdvault/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	NewNote   key.Binding
	NewFolder key.Binding
	Rename    key.Binding
	Move      key.Binding
	Copy      key.Binding
	Delete    key.Binding
	Edit      key.Binding
	External  key.Binding
	Yank      key.Binding
	Sort      key.Binding
	Search    key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "collapse")),
	Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "expand")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle/preview")),
	NewNote:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
	NewFolder: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new folder")),
	Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
	Move:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
	Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	External:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open externally")),
	Yank:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
	Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Reload:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rescan")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.NewNote, k.NewFolder, k.Rename, k.Move, k.Delete, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Enter},
		{k.NewNote, k.NewFolder, k.Rename, k.Move, k.Copy, k.Delete},
		{k.Edit, k.External, k.Yank, k.Sort, k.Search, k.Reload},
		{k.Help, k.Quit},
	}
}

// BrowserModel is the model for the tree browser view
type BrowserModel struct {
	ViewState
	vault *commands.Vault
	tree  *TreeState
	help  help.Model

	reveal    string // entry to select once it shows up
	clipboard func(string) error
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(vault *commands.Vault) *BrowserModel {
	return &BrowserModel{
		vault:     vault,
		tree:      NewTreeState(vault.Sort()),
		help:      newHelp(),
		clipboard: clipboard.WriteAll,
	}
}

// Tree returns the browser's view of the vault
func (m *BrowserModel) Tree() *TreeState {
	return m.tree
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Apply updates the tree from a vault notification
func (m *BrowserModel) Apply(n notify.Message) {
	switch n.Kind {
	case notify.KindFolderContent:
		m.tree.SetRoot(n.Entry)
	case notify.KindEntryCreated, notify.KindEntryUpdated:
		m.tree.Upsert(n.Entry)
	case notify.KindEntryDeleted:
		m.tree.Remove(n.Path)
	default:
		return
	}
	if m.reveal != "" && m.tree.Reveal(m.reveal) {
		m.reveal = ""
	}
}

// Reveal selects path, or remembers it until a notification brings it in
func (m *BrowserModel) Reveal(path string) {
	if path != "" && !m.tree.Reveal(path) {
		m.reveal = path
	}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case OpDoneMsg:
		if msg.Err != nil {
			m.SetError(msg.Err)
			return m, nil
		}
		m.SetMessage(msg.Message, false)
		m.Reveal(msg.Reveal)
		return m, nil

	case StatusMsg:
		if msg.Err != nil {
			m.SetError(msg.Err)
		} else {
			m.SetMessage(msg.Message, false)
		}
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	sel := m.tree.Selected()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.tree.Up()

	case key.Matches(msg, BrowserKeys.Down):
		m.tree.Down()

	case key.Matches(msg, BrowserKeys.Left):
		m.tree.Collapse()

	case key.Matches(msg, BrowserKeys.Right):
		m.tree.Expand()

	case key.Matches(msg, BrowserKeys.Enter):
		if sel == nil {
			return nil
		}
		if sel.IsDir {
			m.tree.Toggle()
			return nil
		}
		return m.openPreview(sel.Path)

	case key.Matches(msg, BrowserKeys.NewNote):
		parent := m.tree.SelectedFolder()
		return runOp(func(ctx context.Context) (string, string, error) {
			res, err := m.vault.CreateNote(ctx, parent)
			if err != nil {
				return "", "", err
			}
			return res.Message, res.Entry.Path, nil
		})

	case key.Matches(msg, BrowserKeys.NewFolder):
		parent := m.tree.SelectedFolder()
		return func() tea.Msg { return SwitchToCreateMsg{Parent: parent} }

	case key.Matches(msg, BrowserKeys.Rename):
		if sel != nil {
			return func() tea.Msg { return SwitchToRenameMsg{Target: sel} }
		}

	case key.Matches(msg, BrowserKeys.Move):
		if sel != nil {
			return func() tea.Msg { return SwitchToMoveMsg{Target: sel, Mode: MoveModeMove} }
		}

	case key.Matches(msg, BrowserKeys.Copy):
		if sel != nil {
			return func() tea.Msg { return SwitchToMoveMsg{Target: sel, Mode: MoveModeCopy} }
		}

	case key.Matches(msg, BrowserKeys.Delete):
		if sel != nil {
			return func() tea.Msg { return SwitchToDeleteMsg{Target: sel} }
		}

	case key.Matches(msg, BrowserKeys.Edit):
		if sel != nil && !sel.IsDir {
			path := sel.Path
			return func() tea.Msg { return OpenEditorMsg{Path: path} }
		}

	case key.Matches(msg, BrowserKeys.External):
		if sel != nil {
			path := sel.Path
			return func() tea.Msg { return OpenExternalMsg{Path: path} }
		}

	case key.Matches(msg, BrowserKeys.Yank):
		if sel != nil {
			if err := m.clipboard(sel.Path); err != nil {
				m.SetError(err)
			} else {
				m.SetMessage("Copied "+sel.Path, false)
			}
		}

	case key.Matches(msg, BrowserKeys.Sort):
		mode := nextSortMode(m.vault.Sort())
		m.vault.SetSort(mode)
		m.tree.SetSort(mode)
		m.SetMessage("Sorted by "+sortLabel(mode), false)

	case key.Matches(msg, BrowserKeys.Search):
		return func() tea.Msg { return SwitchToSearchMsg{} }

	case key.Matches(msg, BrowserKeys.Reload):
		return m.Reload()

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return nil
}

func (m *BrowserModel) openPreview(path string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.vault.OpenNote(context.Background(), path)
		if err != nil {
			return OpDoneMsg{Err: err}
		}
		return OpenPreviewMsg{Path: res.Path, Name: res.Name, Content: res.Content}
	}
}

// Reload rescans the vault; the tree is replaced by the resulting notification
func (m *BrowserModel) Reload() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.vault.FolderContent(context.Background()); err != nil {
			return OpDoneMsg{Err: err}
		}
		return OpDoneMsg{Message: "Rescanned"}
	}
}

func nextSortMode(current domain.SortMode) domain.SortMode {
	i := slices.Index(domain.SortModes, current)
	return domain.SortModes[(i+1)%len(domain.SortModes)]
}

// View renders the browser
func (m *BrowserModel) View() string {
	root := m.tree.Root()
	if root == nil {
		return styles.App.Render("Loading...")
	}

	var b strings.Builder

	// Title
	b.WriteString(styles.Title.Render("mdvault"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s  (%s)", root.Path, sortLabel(m.vault.Sort()))))
	b.WriteString("\n\n")

	b.WriteString(m.renderTree())

	// Message
	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(BrowserKeys.ShortHelp()))

	return styles.App.Render(b.String())
}

func sortLabel(mode domain.SortMode) string {
	if mode == domain.SortNone {
		return "unsorted"
	}
	return string(mode)
}

// visibleRange returns the window of rows that fits the screen around the cursor
func (m *BrowserModel) visibleRange(total int) (int, int) {
	height := m.Height - 12
	if m.Height == 0 || height <= 0 || total <= height {
		return 0, total
	}
	start := max(m.tree.Cursor()-height/2, 0)
	end := min(start+height, total)
	return end - height, end
}

func (m *BrowserModel) renderTree() string {
	rows := m.tree.Rows()
	if len(rows) == 0 {
		return styles.MutedText.Render("Empty vault. Press n to create a note.") + "\n"
	}

	var b strings.Builder
	start, end := m.visibleRange(len(rows))
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.tree.Cursor()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *BrowserModel) renderRow(row Row, selected bool) string {
	indent := strings.Repeat("  ", row.Depth)
	e := row.Entry

	// Prefix (expand indicator)
	var prefix string
	var style lipgloss.Style
	switch {
	case e.IsDir && m.tree.IsExpanded(e.Path):
		prefix, style = styles.TreeExpanded, styles.NodeFolder
	case e.IsDir:
		prefix, style = styles.TreeCollapsed, styles.NodeFolder
	case e.IsNote():
		prefix, style = styles.TreeLeaf, styles.NodeNote
	default:
		prefix, style = styles.TreeLeaf, styles.NodeOther
	}

	text := style.Render(e.Name)
	if selected {
		text = styles.NodeSelected.Render(e.Name)
	}

	return fmt.Sprintf("%s%s%s", indent, styles.TreeBranch.Render(prefix), text)
}
