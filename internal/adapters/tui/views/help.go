package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mdvault/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// helpSection is one titled block of the key reference
type helpSection struct {
	title string
	keys  [][]key.Binding
}

// HelpModel lists every key binding, grouped by the view that owns it
type HelpModel struct {
	ViewState
	help     help.Model
	sections []helpSection
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	h := newHelp()
	h.ShowAll = true
	return &HelpModel{
		help: h,
		sections: []helpSection{
			{title: "Vault tree", keys: BrowserKeys.FullHelp()},
			{title: "Note preview", keys: [][]key.Binding{{
				PreviewKeys.Close, PreviewKeys.Edit, PreviewKeys.NextLink, PreviewKeys.OpenLink,
			}}},
			{title: "Move and copy", keys: MoveKeys.FullHelp()},
			{title: "Search", keys: SearchKeys.FullHelp()},
			{title: "Delete", keys: [][]key.Binding{{DefaultConfirmKeys.Confirm, DefaultConfirmKeys.Cancel}}},
		},
	}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		}
	}

	return m, nil
}

// View renders the key reference
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Keys"))
	b.WriteString("\n\n")

	for _, s := range m.sections {
		b.WriteString(styles.InputLabel.Render(s.title))
		b.WriteString("\n")
		b.WriteString(m.help.FullHelpView(s.keys))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.MutedText.Render("Edits made outside mdvault appear after a short pause."))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{HelpKeys.Close}))

	return styles.App.Render(b.String())
}
